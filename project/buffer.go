package project

import (
	"io"

	"github.com/pkg/errors"
)

var errNegativePosition = errors.New("project: negative position")

// buffer is an in-memory io.WriteSeeker, writing past the end grows it.
type buffer struct {
	b   []byte
	pos int
}

func (b *buffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.b) {
		b.b = append(b.b, make([]byte, end-len(b.b))...)
	}
	n := copy(b.b[b.pos:], p)
	b.pos += n
	return n, nil
}

func (b *buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.pos) + offset
	case io.SeekEnd:
		abs = int64(len(b.b)) + offset
	default:
		return 0, errors.New("project: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	b.pos = int(abs)
	return abs, nil
}

func (b *buffer) Bytes() []byte {
	return b.b
}
