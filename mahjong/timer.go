package mahjong

import (
	"time"
)

// Timer 行牌/应答限时。到点只投递回调,真正的动作仍走正常入口,
// 晚到的触发会被阶段校验挡掉。
type Timer struct {
	triggerTime time.Time
	callback    func()
}

func NewTimer() *Timer {
	return &Timer{}
}

// Schedule 安排定时任务
func (t *Timer) Schedule(delay time.Duration, callback func()) {
	t.triggerTime = time.Now().Add(delay)
	t.callback = callback
}

// Cancel 取消定时任务
func (t *Timer) Cancel() {
	t.callback = nil
}

// OnTick 由外部驱动,到点触发一次后自动解除
func (t *Timer) OnTick() {
	if t.callback == nil {
		return
	}
	if time.Now().After(t.triggerTime) {
		cb := t.callback
		t.callback = nil
		cb()
	}
}
