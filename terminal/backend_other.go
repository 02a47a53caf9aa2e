//go:build !unix

package terminal

func stdinSource() (Source, error) {
	return nil, ErrNotTerminal
}
