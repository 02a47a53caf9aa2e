package shm

import (
	"encoding/base64"
	"strconv"
)

// TransmitCommand builds the kitty graphics APC that displays an RGBA frame
// stored in the named segment. The terminal unlinks the segment after reading it
func TransmitCommand(name string, size Size, id int) string {
	n, err := segmentName(name)
	if err != nil {
		n = name
	}
	b := make([]byte, 0, 96)
	b = append(b, "\x1b_Ga=T,f=32,t=s,s="...)
	b = strconv.AppendInt(b, int64(size.Width), 10)
	b = append(b, ",v="...)
	b = strconv.AppendInt(b, int64(size.Height), 10)
	b = append(b, ",S="...)
	b = strconv.AppendInt(b, int64(size.Bytes()), 10)
	if id > 0 {
		b = append(b, ",i="...)
		b = strconv.AppendInt(b, int64(id), 10)
	}
	b = append(b, ",q=2;"...)
	b = base64.StdEncoding.AppendEncode(b, []byte("/"+n))
	b = append(b, "\x1b\\"...)
	return string(b)
}
