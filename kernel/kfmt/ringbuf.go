package kfmt

import "io"

// earlyBufferSize defines the size of the ring buffer that captures Printf
// output generated before a console sink is registered. It is sized to hold
// the contents of a standard 80x25 text-mode screen and must be a power of 2.
const earlyBufferSize = 2048

// ringBuffer captures early boot output. Once the buffer fills up, the
// oldest bytes are overwritten: when something goes wrong before a console
// exists, the most recent output is the part worth keeping.
type ringBuffer struct {
	data [earlyBufferSize]byte
	next int
	used int
}

// Write appends p to the ring buffer, implementing io.Writer. It never
// fails; old data is dropped to make room.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.data[rb.next] = b
		rb.next = (rb.next + 1) & (earlyBufferSize - 1)
		if rb.used < earlyBufferSize {
			rb.used++
		}
	}

	return len(p), nil
}

// Read drains up to len(p) of the oldest buffered bytes into p,
// implementing io.Reader. It reports io.EOF once the buffer is empty.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.used == 0 {
		return 0, io.EOF
	}

	var n int
	for ; n < len(p) && rb.used > 0; n++ {
		p[n] = rb.data[(rb.next-rb.used)&(earlyBufferSize-1)]
		rb.used--
	}

	return n, nil
}
