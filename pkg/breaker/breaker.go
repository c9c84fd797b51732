// Package breaker 实现简单的熔断器，用于保护对外部依赖（如Redis缓存）的调用。
//
// 三种状态：
// - Closed：正常放行，统计连续失败次数
// - Open：快速失败，不再调用依赖，等待冷却时间
// - HalfOpen：冷却结束后放行一次探测请求，成功则关闭，失败则重新打开
package breaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen 熔断器处于打开状态，调用被拒绝
var ErrOpen = errors.New("breaker: circuit open")

// Breaker 熔断器
type Breaker struct {
	mu sync.Mutex

	failureThreshold int           // 连续失败多少次后打开
	cooldown         time.Duration // 打开后多久进入半开

	state    State
	failures int
	openedAt time.Time
}

// New 创建熔断器
func New(failureThreshold int, cooldown time.Duration) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		state:            StateClosed,
	}
}

// State 返回当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState(time.Now())
}

// Do 执行受保护的调用
// 打开状态直接返回ErrOpen，不调用fn
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	now := time.Now()
	state := b.currentState(now)
	if state == StateOpen {
		b.mu.Unlock()
		return ErrOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failures++
		// 半开期探测失败立即重新打开
		if b.state == StateHalfOpen || b.failures >= b.failureThreshold {
			b.state = StateOpen
			b.openedAt = time.Now()
		}
		return err
	}

	b.failures = 0
	b.state = StateClosed
	return nil
}

// currentState 计算当前状态（带冷却超时判断），调用方须持锁
func (b *Breaker) currentState(now time.Time) State {
	if b.state == StateOpen && now.Sub(b.openedAt) >= b.cooldown {
		b.state = StateHalfOpen
	}
	return b.state
}
