//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package p2p implements the framed peer connection between the two
// parties of an aggregation run.
package p2p

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/markkurossi/xtabs/ot"
)

var (
	_ ot.IO = &Conn{}
)

const (
	numBuffers   = 3
	writeBufSize = 64 * 1024
	readBufSize  = 1024 * 1024
)

// Conn implements a framed peer connection. Writes are buffered and
// handed to a writer goroutine so the caller can fill the next buffer
// while the previous one is in transit. All multi-byte values are big
// endian and variable length data is prefixed with its uint32 length.
type Conn struct {
	conn  io.ReadWriter
	Stats IOStats

	wbuf []byte
	wpos int
	rbuf []byte
	rpos int
	rend int

	free    chan []byte
	pending chan []byte
	m       sync.Mutex
	werr    error
}

// IOStats implements I/O statistics.
type IOStats struct {
	Sent    *atomic.Uint64
	Recvd   *atomic.Uint64
	Flushed *atomic.Uint64
}

// NewIOStats creates a new I/O statistics object.
func NewIOStats() IOStats {
	return IOStats{
		Sent:    new(atomic.Uint64),
		Recvd:   new(atomic.Uint64),
		Flushed: new(atomic.Uint64),
	}
}

// Add adds the argument stats to this IOStats and returns the sum.
func (stats IOStats) Add(o IOStats) IOStats {
	result := NewIOStats()
	result.Sent.Store(stats.Sent.Load() + o.Sent.Load())
	result.Recvd.Store(stats.Recvd.Load() + o.Recvd.Load())
	result.Flushed.Store(stats.Flushed.Load() + o.Flushed.Load())
	return result
}

// Sub subtracts the argument stats from this IOStats and returns the
// difference.
func (stats IOStats) Sub(o IOStats) IOStats {
	result := NewIOStats()
	result.Sent.Store(stats.Sent.Load() - o.Sent.Load())
	result.Recvd.Store(stats.Recvd.Load() - o.Recvd.Load())
	result.Flushed.Store(stats.Flushed.Load() - o.Flushed.Load())
	return result
}

// Snapshot returns a copy of the current statistics values.
func (stats IOStats) Snapshot() IOStats {
	return stats.Add(NewIOStats())
}

// Sum returns sum of sent and received bytes.
func (stats IOStats) Sum() uint64 {
	return stats.Sent.Load() + stats.Recvd.Load()
}

// NewConn creates a new connection around the argument connection.
func NewConn(conn io.ReadWriter) *Conn {
	c := &Conn{
		conn:    conn,
		Stats:   NewIOStats(),
		rbuf:    make([]byte, readBufSize),
		free:    make(chan []byte, numBuffers),
		pending: make(chan []byte, numBuffers),
	}
	for i := 0; i < numBuffers; i++ {
		c.free <- make([]byte, writeBufSize)
	}
	go c.writer()

	c.wbuf = <-c.free

	return c
}

func (c *Conn) writer() {
	for buf := range c.pending {
		if c.err() == nil {
			if _, err := c.conn.Write(buf); err != nil {
				c.m.Lock()
				c.werr = err
				c.m.Unlock()
			}
		}
		c.free <- buf[:cap(buf)]
	}
	close(c.free)
}

func (c *Conn) err() error {
	c.m.Lock()
	defer c.m.Unlock()
	return c.werr
}

// Flush hands any buffered data to the writer. It returns the first
// write error of the connection.
func (c *Conn) Flush() error {
	if c.wpos == 0 {
		return c.err()
	}
	c.Stats.Sent.Add(uint64(c.wpos))
	c.Stats.Flushed.Add(1)
	c.pending <- c.wbuf[:c.wpos]

	c.wbuf = <-c.free
	c.wpos = 0

	return c.err()
}

// Close flushes any pending data and closes the connection.
func (c *Conn) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	close(c.pending)
	for range c.free {
	}
	if err := c.err(); err != nil {
		return err
	}
	if closer, ok := c.conn.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// reserve returns n bytes of write buffer space.
func (c *Conn) reserve(n int) ([]byte, error) {
	if c.wpos+n > len(c.wbuf) {
		if err := c.Flush(); err != nil {
			return nil, err
		}
	}
	buf := c.wbuf[c.wpos : c.wpos+n]
	c.wpos += n
	return buf, nil
}

// next returns the next n bytes of input. The returned slice is valid
// until the next receive.
func (c *Conn) next(n int) ([]byte, error) {
	if c.rpos+n > c.rend {
		if err := c.fill(n); err != nil {
			return nil, err
		}
	}
	buf := c.rbuf[c.rpos : c.rpos+n]
	c.rpos += n
	return buf, nil
}

// fill reads from the connection until the input buffer has at least
// n unread bytes. Unread data is moved to the beginning of the buffer.
func (c *Conn) fill(n int) error {
	c.rend = copy(c.rbuf, c.rbuf[c.rpos:c.rend])
	c.rpos = 0

	for c.rend < n {
		got, err := c.conn.Read(c.rbuf[c.rend:])
		c.Stats.Recvd.Add(uint64(got))
		c.rend += got
		if err != nil && c.rend < n {
			return err
		}
	}
	return nil
}

// SendByte sends a byte value.
func (c *Conn) SendByte(val byte) error {
	buf, err := c.reserve(1)
	if err != nil {
		return err
	}
	buf[0] = val
	return nil
}

// SendUint32 sends an uint32 value.
func (c *Conn) SendUint32(val int) error {
	buf, err := c.reserve(4)
	if err != nil {
		return err
	}
	bo.PutUint32(buf, uint32(val))
	return nil
}

// SendData sends length prefixed binary data. Data longer than the
// write buffer is sent in buffer sized chunks.
func (c *Conn) SendData(val []byte) error {
	if err := c.SendUint32(len(val)); err != nil {
		return err
	}
	for len(val) > 0 {
		if c.wpos == len(c.wbuf) {
			if err := c.Flush(); err != nil {
				return err
			}
		}
		n := copy(c.wbuf[c.wpos:], val)
		c.wpos += n
		val = val[n:]
	}
	return nil
}

// SendLabel sends a wire label. The data is the caller's scratch
// buffer.
func (c *Conn) SendLabel(val ot.Label, data *ot.LabelData) error {
	buf, err := c.reserve(len(data))
	if err != nil {
		return err
	}
	val.GetData(data)
	copy(buf, data[:])
	return nil
}

// ReceiveByte receives a byte value.
func (c *Conn) ReceiveByte() (byte, error) {
	buf, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReceiveUint32 receives an uint32 value.
func (c *Conn) ReceiveUint32() (int, error) {
	buf, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return int(bo.Uint32(buf)), nil
}

// ReceiveData receives length prefixed binary data.
func (c *Conn) ReceiveData() ([]byte, error) {
	l, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	result := make([]byte, l)
	for pos := 0; pos < l; {
		if c.rpos == c.rend {
			if err := c.fill(1); err != nil {
				return nil, err
			}
		}
		n := copy(result[pos:], c.rbuf[c.rpos:c.rend])
		c.rpos += n
		pos += n
	}
	return result, nil
}

// ReceiveLabel receives a wire label into val. The data is the
// caller's scratch buffer.
func (c *Conn) ReceiveLabel(val *ot.Label, data *ot.LabelData) error {
	buf, err := c.next(len(data))
	if err != nil {
		return err
	}
	copy(data[:], buf)
	val.SetData(data)
	return nil
}
