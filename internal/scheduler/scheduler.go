package scheduler

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// 延迟执行首轮采集，避免与服务启动争抢资源
const defaultStartupDelay = 15 * time.Second

// Scheduler 按 cron 表达式周期性执行 RunAll
type Scheduler struct {
	cron    *cron.Cron
	runner  *Runner
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool

	startupDelay time.Duration
	startup      *time.Timer

	// 首轮与手动触发的采集不是 cron 任务，单独计数，Stop 时一并等待
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

func New(spec string, runner *Runner) (*Scheduler, error) {
	c := cron.New()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:         c,
		runner:       runner,
		ctx:          ctx,
		cancel:       cancel,
		startupDelay: defaultStartupDelay,
	}

	_, err := c.AddFunc(spec, s.runOnce)
	if err != nil {
		cancel()
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.startup = time.AfterFunc(s.startupDelay, func() {
		s.goTracked(s.runOnce)
	})
}

// Stop 停止调度并取消进行中的采集，等待 cron 任务、首轮与手动采集全部退出
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.startup != nil {
		s.startup.Stop()
	}
	s.mu.Unlock()

	s.cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发采集
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

// RunSource 异步触发单个来源，供 API 手动采集使用；Stop 之后的调用被忽略
func (s *Scheduler) RunSource(name string) {
	s.goTracked(func() {
		if _, _, err := s.runner.Run(s.ctx, name); err != nil {
			log.Printf("collect %s error: %v", name, err)
		}
	})
}

// goTracked 登记并异步执行 f，Stop 之后不再接受新任务
func (s *Scheduler) goTracked(f func()) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		f()
	}()
}

func (s *Scheduler) runOnce() {
	// 一轮采集可能超过 cron 间隔，未结束时跳过本次
	if !s.running.CompareAndSwap(false, true) {
		log.Println("previous collect job still running, skip")
		return
	}
	defer s.running.Store(false)

	log.Println("start collect job...")
	all, report := s.runner.RunAll(s.ctx)
	log.Printf("collect job done (all sources), collected=%d saved=%d skipped=%d",
		len(all), report.Total.Saved, report.Total.Skipped)
}
