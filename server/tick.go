package server

import (
	"context"
	"time"
)

const (
	// BroadcastPerSecond 观战推送频率（20 次/秒），两次推送间的多帧只发最后一帧
	BroadcastPerSecond = 20
)

var broadcastInterval = time.Duration(1000/BroadcastPerSecond) * time.Millisecond // 50ms

// Run 观战中心主循环：处理加入/离开 → 编码新帧 → 定时广播；ctx 结束时关闭所有连接
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.drainFrames()
			h.broadcast()
			h.closeAll()
			return
		case c := <-h.joinChan:
			h.join(c)
		case c := <-h.leaveChan:
			h.leave(c)
		case f := <-h.frameChan:
			h.encode(f)
		case <-ticker.C:
			h.broadcast()
		}
	}
}

// drainFrames 非阻塞取完剩余帧，保证最后一帧被发出
func (h *Hub) drainFrames() {
	for {
		select {
		case f := <-h.frameChan:
			h.encode(f)
		default:
			return
		}
	}
}
