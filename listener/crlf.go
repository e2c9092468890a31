package listener

import (
	"io"
)

// lineConn translates line endings between the engine and a telnet client.
// Reads turn CR LF, bare CR and CR NUL into LF, even when the pair is split
// across two reads. Writes send every LF as CR LF.
type lineConn struct {
	rw     io.ReadWriter
	lastCR bool // previous byte read was CR
	buf    []byte
}

func newLineConn(rw io.ReadWriter) *lineConn {
	return &lineConn{rw: rw}
}

func (c *lineConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	out := p[:0]
	for _, b := range p[:n] {
		switch {
		case c.lastCR && (b == '\n' || b == 0):
			// The CR already produced the line break.
		case b == '\r':
			out = append(out, '\n')
		default:
			out = append(out, b)
		}
		c.lastCR = b == '\r'
	}
	return len(out), err
}

// Write reports len(p) on success; the added CRs are not counted.
func (c *lineConn) Write(p []byte) (int, error) {
	c.buf = c.buf[:0]
	for _, b := range p {
		if b == '\n' {
			c.buf = append(c.buf, '\r')
		}
		c.buf = append(c.buf, b)
	}
	if _, err := c.rw.Write(c.buf); err != nil {
		return 0, err
	}
	return len(p), nil
}
