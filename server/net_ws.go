package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"madpod/logging"
)

// ClientConn 负责发送（写）数据到观众的轻量包装
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

// Enqueue 将要发送的帧压入队列（非阻塞，满则丢弃）；只在 Hub 协程内调用
func (c *ClientConn) Enqueue(b []byte) bool {
	if c.send == nil {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		// 为了实时性，丢弃该帧（防止阻塞广播）
		return false
	}
}

// Close 关闭发送队列，写协程随后关闭底层连接
func (c *ClientConn) Close() {
	if c.send != nil {
		close(c.send)
		c.send = nil
	}
}

// writePump 独立协程，负责从 send 队列写出到 WS
func (c *ClientConn) writePump(send <-chan []byte) {
	defer c.ws.Close()
	for msg := range send {
		c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.ws.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
	}
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "race over"),
		time.Now().Add(time.Second))
}

// readPump 观众只读；读到错误（断开）时通知 Hub 在主循环中移除
func (c *ClientConn) readPump(h *Hub) {
	defer func() {
		select {
		case h.leaveChan <- c:
		case <-h.done:
		}
	}()
	c.ws.SetReadLimit(1 << 10)
	c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error { c.ws.SetReadDeadline(time.Now().Add(60 * time.Second)); return nil })

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 本地观战：允许所有来源
		return true
	},
}

// HandleWS WebSocket 接入：/ws
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Log.Warnf("upgrade error: %v", err)
		return
	}

	client := NewClientConn(ws)
	go client.writePump(client.send)
	go client.readPump(h)

	select {
	case h.joinChan <- client:
		logging.Log.Infof("spectator joined from %s", r.RemoteAddr)
	case <-h.done:
		// Hub 已停止：关闭发送队列，writePump 发出关闭帧后退出
		client.Close()
	}
}
