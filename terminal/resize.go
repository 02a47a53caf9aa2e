package terminal

// ResizeEvent reports new terminal dimensions in cells
type ResizeEvent struct {
	Width  int
	Height int
}

// Sizer is implemented by sources that can query the terminal size
type Sizer interface {
	Size() (int, int)
}
