package shm

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransmitCommand(t *testing.T) {
	name := base64.StdEncoding.EncodeToString([]byte("/frame-1"))

	got := TransmitCommand("frame-1", Size{Width: 640, Height: 480}, 7)
	assert.Equal(t, "\x1b_Ga=T,f=32,t=s,s=640,v=480,S=1228800,i=7,q=2;"+name+"\x1b\\", got)

	// Leading slash is not doubled; id 0 lets the terminal assign one
	got = TransmitCommand("/frame-1", Size{Width: 1, Height: 1}, 0)
	assert.Equal(t, "\x1b_Ga=T,f=32,t=s,s=1,v=1,S=4,q=2;"+name+"\x1b\\", got)
}
