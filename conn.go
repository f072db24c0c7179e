package baucua

import (
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"
)

const sendQueue = 64

// Connector wraps connections so tests are easier
type Connector interface {
	Send(v interface{})
	Recv(v interface{}) error
	Close() error
	Ip() string
}

// wsConn is a websocket connection that implements Connector. Sends are queued and written by
// a separate goroutine so a slow client never stalls the hub.
type wsConn struct {
	conn     *websocket.Conn
	sendChan chan interface{}
	done     chan struct{}
	finished chan struct{}
	once     sync.Once
	log      *slog.Logger
}

func NewWsConn(ws *websocket.Conn, logger *slog.Logger) *wsConn {
	conn := &wsConn{
		conn:     ws,
		sendChan: make(chan interface{}, sendQueue),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		log:      logger,
	}
	go conn.sender()
	return conn
}

func (c *wsConn) sender() {
	defer close(c.finished)
	defer c.conn.Close()
	for {
		select {
		case data := <-c.sendChan:
			if !c.write(data) {
				return
			}
		case <-c.done:
			// flush what is already queued before hanging up
			for {
				select {
				case data := <-c.sendChan:
					if !c.write(data) {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (c *wsConn) write(data interface{}) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
		return false
	}
	if err := websocket.JSON.Send(c.conn, data); err != nil {
		c.log.Debug("send failed", "ip", c.Ip(), "error", err)
		return false
	}
	return true
}

func (c *wsConn) Send(v interface{}) {
	select {
	case <-c.done:
	case c.sendChan <- v:
	default:
		c.log.Warn("send queue full, dropping message", "ip", c.Ip())
	}
}

func (c *wsConn) Recv(v interface{}) error {
	if err := c.conn.SetReadDeadline(time.Now().Add(10 * time.Minute)); err != nil {
		return err
	}
	return websocket.JSON.Receive(c.conn, v)
}

// Close stops accepting sends and waits for queued messages to be written.
func (c *wsConn) Close() error {
	c.once.Do(func() { close(c.done) })
	<-c.finished
	return nil
}

func (c *wsConn) Ip() string {
	req := c.conn.Request()
	if req == nil {
		return ""
	}
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}
