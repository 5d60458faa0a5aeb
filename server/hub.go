package server

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"madpod/arena"
	"madpod/logging"
)

// Hub 观战中心：连接集合只在 Run 协程内修改，单线程推进
type Hub struct {
	clients   map[*ClientConn]struct{}
	joinChan  chan *ClientConn
	leaveChan chan *ClientConn
	frameChan chan arena.Frame
	done      chan struct{} // Run 退出后关闭

	// 最近一帧的 msgpack 编码，新观众加入时立即下发
	latest []byte
	dirty  bool

	mu          sync.RWMutex
	latestFrame *arena.Frame

	metrics *RaceMetrics
}

// NewHub 创建观战中心，初始化数据结构
func NewHub(metrics *RaceMetrics) *Hub {
	if metrics == nil {
		metrics = &RaceMetrics{}
	}
	return &Hub{
		clients:   make(map[*ClientConn]struct{}),
		joinChan:  make(chan *ClientConn), // 无缓冲：加入要么被 Run 接收，要么看到 done
		leaveChan: make(chan *ClientConn, 16),
		frameChan: make(chan arena.Frame, 64), // 足够缓冲，避免观战拖慢比赛
		done:      make(chan struct{}),
		metrics:   metrics,
	}
}

// Publish 入站帧（不阻塞比赛循环）：通道满时丢弃
func (h *Hub) Publish(f arena.Frame) {
	h.mu.Lock()
	h.latestFrame = &f
	h.mu.Unlock()

	select {
	case h.frameChan <- f:
	default:
		h.metrics.IncFramesDropped()
	}
}

// Latest 最近一帧（供 /status 使用）
func (h *Hub) Latest() (arena.Frame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latestFrame == nil {
		return arena.Frame{}, false
	}
	return *h.latestFrame, true
}

func (h *Hub) join(c *ClientConn) {
	h.clients[c] = struct{}{}
	h.metrics.SetSpectators(len(h.clients))
	if h.latest != nil {
		c.Enqueue(h.latest)
	}
}

func (h *Hub) leave(c *ClientConn) {
	if _, ok := h.clients[c]; ok {
		c.Close()
		delete(h.clients, c)
		h.metrics.SetSpectators(len(h.clients))
	}
}

// encode 编码一帧并标记待广播
func (h *Hub) encode(f arena.Frame) {
	b, err := msgpack.Marshal(&f)
	if err != nil {
		logging.Log.Warnf("encode frame %d: %v", f.Turn, err)
		return
	}
	h.latest = b
	h.dirty = true
}

// broadcast 将最近一帧广播给所有观众（二进制 msgpack）
func (h *Hub) broadcast() {
	if !h.dirty {
		return
	}
	h.dirty = false
	for c := range h.clients {
		if !c.Enqueue(h.latest) {
			h.metrics.IncFramesDropped()
		}
	}
}

func (h *Hub) closeAll() {
	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
	h.metrics.SetSpectators(0)
}
