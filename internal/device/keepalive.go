package device

import (
	"time"

	"go.uber.org/zap"
)

// RunKeepalive 周期性发送时间同步查询，保持设备会话活跃。
// 与主流程共享同一编码器（流水号）与会话锁，交互不会穿插进行。
// 传输错误仅记录并跳过本轮，从不影响主流程；stop 关闭后返回。
func (s *Session) RunKeepalive(stop <-chan struct{}, interval, timeout time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// 设备侧时间戳：毫秒累计值，32 位回绕
	var ts uint32
	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			ts += uint32(now.Sub(last).Milliseconds())
			last = now
			if _, err := s.exchangeTimeout("time_sync", s.enc.TimeQuery(ts), timeout); err != nil {
				s.log.Warn("keepalive exchange failed", zap.Error(err))
			}
		}
	}
}
