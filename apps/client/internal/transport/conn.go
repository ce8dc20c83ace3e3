package transport

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tenhou-lite/replay"
)

const (
	writeWait = 10 * time.Second
	readWait  = 60 * time.Second

	// keepAlivePeriod 天凤网关要求的保活间隔，心跳是一条 <Z/> 报文。
	keepAlivePeriod = 15 * time.Second
)

var ErrClosed = errors.New("connection closed")

// Conn 到天凤网关的 WebSocket 连接。
//
// 读泵把到达的帧拆成单标签报文、依次送进 Messages——状态机要求的
// 单消费者串行点就在这条通道上。写泵串行化出站报文并定时发心跳。
type Conn struct {
	ws       *websocket.Conn
	send     chan string
	messages chan string

	closeOnce sync.Once
	done      chan struct{}
}

// Dial 连上网关并启动读写泵。
func Dial(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	c := &Conn{
		ws:       ws,
		send:     make(chan string, 64),
		messages: make(chan string, 256),
		done:     make(chan struct{}),
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

// Messages 入站单标签报文。连接关闭后通道关闭。
func (c *Conn) Messages() <-chan string { return c.messages }

// Send 排队一条出站报文。
func (c *Conn) Send(msg string) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

func (c *Conn) readPump() {
	defer func() {
		c.Close()
		close(c.messages)
	}()

	c.ws.SetReadLimit(65536)
	_ = c.ws.SetReadDeadline(time.Now().Add(readWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[Transport] Read error: %v", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(readWait))
		for _, msg := range SplitFrame(data) {
			select {
			case c.messages <- msg:
			case <-c.done:
				return
			}
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(keepAlivePeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				log.Printf("[Transport] Write error: %v", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, []byte("<Z/>")); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// SplitFrame 一帧里可能连着多条报文，NUL 分隔或者首尾相接。
func SplitFrame(data []byte) []string {
	var out []string
	for _, chunk := range strings.Split(string(data), "\x00") {
		out = append(out, replay.Split(chunk)...)
	}
	return out
}
