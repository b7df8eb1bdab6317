package fetch

import (
	"context"
	"time"
)

// Pacer 固定间隔节流：每次请求前都完整睡眠 delay，不做令牌桶或自适应退避
type Pacer struct {
	delay time.Duration
}

func NewPacer(delay time.Duration) *Pacer {
	if delay < 0 {
		delay = 0
	}
	return &Pacer{delay: delay}
}

func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Wait 阻塞 delay；ctx 取消时提前返回
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.delay == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
