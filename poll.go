package sandbox

import (
	"context"
	"math"
	"time"
)

// PollOption 轮询选项，作用于 WaitForReady 和 WaitForBuild。
type PollOption func(*pollConfig)

// pollConfig 描述一条轮询曲线：起始间隔，可选的指数增长因子与上限。
type pollConfig struct {
	interval time.Duration
	factor   float64
	cap      time.Duration
	observe  func(attempt int)
}

func newPollConfig(interval time.Duration, options []PollOption) *pollConfig {
	cfg := &pollConfig{interval: interval, factor: 1}
	for _, option := range options {
		option(cfg)
	}
	if cfg.interval <= 0 {
		cfg.interval = time.Second
	}
	return cfg
}

// WithPollInterval 设置起始轮询间隔。
func WithPollInterval(d time.Duration) PollOption {
	return func(cfg *pollConfig) { cfg.interval = d }
}

// WithBackoff 让轮询间隔按 multiplier 指数增长，maxInterval 为增长上限，
// 0 表示不设上限。multiplier 不大于 1 时间隔保持恒定。
func WithBackoff(multiplier float64, maxInterval time.Duration) PollOption {
	return func(cfg *pollConfig) {
		cfg.factor = multiplier
		cfg.cap = maxInterval
	}
}

// WithOnPoll 注册观察回调，在每次轮询前以从 1 起的次数调用，
// 可用于打印进度。
func WithOnPoll(fn func(attempt int)) PollOption {
	return func(cfg *pollConfig) { cfg.observe = fn }
}

// wait 返回第 attempt 次轮询未命中后应等待的时长。
func (cfg *pollConfig) wait(attempt int) time.Duration {
	if cfg.factor <= 1 {
		return cfg.interval
	}
	d := time.Duration(float64(cfg.interval) * math.Pow(cfg.factor, float64(attempt-1)))
	if cfg.cap > 0 && d > cfg.cap {
		return cfg.cap
	}
	return d
}

// pollLoop 反复调用 poll 直到其报告完成或出错，两次调用之间按
// 轮询曲线等待，等待期间响应 ctx 取消。
func pollLoop[T any](ctx context.Context, cfg *pollConfig, poll func(ctx context.Context) (T, bool, error)) (T, error) {
	for attempt := 1; ; attempt++ {
		if cfg.observe != nil {
			cfg.observe(attempt)
		}

		result, done, err := poll(ctx)
		if done || err != nil {
			return result, err
		}

		timer := time.NewTimer(cfg.wait(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
