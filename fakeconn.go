package baucua

import (
	"encoding/json"
	"io"
	"sync"
)

// FakeConn is a Connector for tests. Messages sent to it land in Msgs, and anything pushed with
// Push is handed out by Recv in order.
type FakeConn struct {
	FakeIp string

	Msgs chan interface{}

	mu     sync.Mutex
	closed bool
	inbox  chan []byte
}

func NewFakeConn(ip string) *FakeConn {
	return &FakeConn{FakeIp: ip, Msgs: make(chan interface{}, 1000), inbox: make(chan []byte, 100)}
}

func (c *FakeConn) Send(v interface{}) {
	c.Msgs <- v
}

// Push queues a frame for Recv, v is encoded as JSON like a real client would send it.
func (c *FakeConn) Push(v interface{}) {
	b, _ := json.Marshal(v)
	c.inbox <- b
}

// PushRaw queues a frame exactly as given, for clients that send garbage.
func (c *FakeConn) PushRaw(frame string) {
	c.inbox <- []byte(frame)
}

// Hangup makes the next Recv fail as if the client went away.
func (c *FakeConn) Hangup() {
	close(c.inbox)
}

func (c *FakeConn) Recv(v interface{}) error {
	b, ok := <-c.inbox
	if !ok {
		return io.EOF
	}
	return json.Unmarshal(b, v)
}

func (c *FakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *FakeConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *FakeConn) Ip() string {
	return c.FakeIp
}
