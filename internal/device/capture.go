package device

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/itegrab/it9910cap/internal/usb"
)

// Capture 持续读取码流端点并把收到的字节原样转发到 w。
// 超时属正常背压，记录后重试同一读取；其余传输错误与下游写失败均终止循环。
// 终止即结束采集会话：此设计不做重连或重新启动序列。
// 每次读取在会话锁内进行，避免与保活协程的命令交互穿插。
func (s *Session) Capture(w io.Writer) error {
	buf := make([]byte, s.cfg.BufferSize)
	for {
		s.mu.Lock()
		n, err := s.tr.ReadBulk(usb.EndpointStreamIn, buf, s.cfg.StreamTimeout)
		s.mu.Unlock()
		if err != nil {
			if usb.IsTimeout(err) {
				s.log.Info("stream read timeout")
				if s.met != nil {
					s.met.StreamTimeouts.Inc()
				}
				continue
			}
			s.log.Error("stream read failed", zap.Error(err))
			return fmt.Errorf("read stream: %w", err)
		}
		if n == 0 {
			continue
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return fmt.Errorf("write sink: %w", err)
		}
		if s.met != nil {
			s.met.StreamChunks.Inc()
			s.met.StreamBytes.Add(float64(n))
		}
	}
}
