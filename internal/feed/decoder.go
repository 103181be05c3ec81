package feed

import (
	"bytes"
	"io"
)

const chunkSize = 4096

// Decoder splits a byte stream into lines and parses each line as a frame.
// Lines may be split across reads; a trailing partial line is carried over
// and flushed as one final frame at end of stream.
type Decoder struct {
	r       io.Reader
	buf     []byte   // partial line carried between reads
	pending [][]byte // complete lines not yet delivered
	chunk   []byte
	eof     bool
	dropped int

	// Warnf, when set, receives one message per dropped line.
	Warnf func(format string, args ...any)
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:     r,
		chunk: make([]byte, chunkSize),
	}
}

// Next returns the next well-formed frame. Blank lines are skipped
// silently; malformed and unknown-type lines are counted, reported through
// Warnf, and skipped. Returns io.EOF when the stream is exhausted. Any
// other error is a transport failure and terminates the stream.
func (d *Decoder) Next() (Frame, error) {
	for {
		line, err := d.nextLine()
		if err != nil {
			return nil, err
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		frame, err := ParseFrame(line)
		if err != nil {
			// One bad line must not take down the stream.
			d.dropped++
			if d.Warnf != nil {
				d.Warnf("dropping frame: %v", err)
			}
			continue
		}
		return frame, nil
	}
}

// Dropped returns the number of lines skipped due to parse failures or
// unknown frame types.
func (d *Decoder) Dropped() int {
	return d.dropped
}

func (d *Decoder) nextLine() ([]byte, error) {
	for {
		if len(d.pending) > 0 {
			line := d.pending[0]
			d.pending = d.pending[1:]
			return line, nil
		}
		if d.eof {
			return nil, io.EOF
		}

		n, err := d.r.Read(d.chunk)
		if n > 0 {
			d.buf = append(d.buf, d.chunk[:n]...)
			d.splitBuffer()
		}
		if err == io.EOF {
			d.eof = true
			// Flush an unterminated final line.
			if len(d.buf) > 0 {
				line := d.buf
				d.buf = nil
				return line, nil
			}
			continue
		}
		if err != nil {
			return nil, err
		}
	}
}

// splitBuffer moves every complete line out of buf into pending, keeping
// the trailing partial segment as the new buf.
func (d *Decoder) splitBuffer() {
	for {
		idx := bytes.IndexByte(d.buf, '\n')
		if idx < 0 {
			return
		}
		line := make([]byte, idx)
		copy(line, d.buf[:idx])
		d.pending = append(d.pending, line)
		d.buf = d.buf[idx+1:]
	}
}
