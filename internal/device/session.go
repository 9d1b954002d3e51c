package device

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/itegrab/it9910cap/internal/metrics"
	"github.com/itegrab/it9910cap/internal/protocol/it9910"
	"github.com/itegrab/it9910cap/internal/usb"
)

// ErrGrabberNotReady 就绪轮询达到配置的最大次数仍未就绪。
// 仅在 PollMaxAttempts > 0 时可能返回；默认无限轮询，与设备契约一致。
var ErrGrabberNotReady = errors.New("device: pc grabber not ready after max poll attempts")

// 命令响应缓冲区大小（设备响应不超过 512 字节）
const respBufSize = 0x200

// PictureSettings 启动序列中下发的画质参数
type PictureSettings struct {
	Brightness uint32
	Contrast   uint32
	Hue        uint32
	Saturation uint32
}

// CompressionSettings 启动序列中下发的压缩参数
type CompressionSettings struct {
	StreamIndex  uint32
	KeyframeRate uint32
	Quality      uint32
}

// Config 会话运行参数
type Config struct {
	CommandTimeout  time.Duration        // 启动序列每次写/读的超时
	StreamTimeout   time.Duration        // 采集循环单次读超时
	PollInterval    time.Duration        // 就绪轮询间隔
	PollMaxAttempts int                  // 0 表示无限轮询
	BufferSize      int                  // 采集读缓冲区大小
	Picture         *PictureSettings     // nil 表示不下发
	Compression     *CompressionSettings // nil 表示不下发
}

func (c *Config) applyDefaults() {
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = 2 * time.Second
	}
	if c.StreamTimeout <= 0 {
		c.StreamTimeout = time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 0x4000
	}
}

// Session 将一个编码器（一条流水号序列）绑定到一个已打开的设备句柄。
// 协议为严格半双工：互斥锁覆盖完整的写/读交互，响应 N 必然对应请求 N，
// 主流程与保活协程共享锁与编码器。
type Session struct {
	id  string
	cfg Config
	tr  usb.Transport
	enc *it9910.Encoder
	log *zap.Logger
	met *metrics.AppMetrics

	mu    sync.Mutex
	armed atomic.Bool
}

// New 创建设备会话
func New(tr usb.Transport, cfg Config, logger *zap.Logger, met *metrics.AppMetrics) *Session {
	cfg.applyDefaults()
	id := uuid.NewString()
	return &Session{
		id:  id,
		cfg: cfg,
		tr:  tr,
		enc: it9910.NewEncoder(),
		log: logger.With(zap.String("session", id)),
		met: met,
	}
}

// Armed 报告启动序列是否已完成、采集是否开启
func (s *Session) Armed() bool {
	return s.armed.Load()
}

// BringUp 执行设备启动序列。
// 命令顺序为固件契约，不可调整；任何传输错误立即中止，无部分成功状态。
func (s *Session) BringUp() error {
	s.log.Info("resetting device")
	if err := s.tr.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := s.tr.ClaimInterface(usb.ControlInterface); err != nil {
		return fmt.Errorf("claim interface: %w", err)
	}
	if err := s.tr.SetAltSetting(usb.ControlInterface, usb.DefaultAltSetting); err != nil {
		return fmt.Errorf("set alt setting: %w", err)
	}
	if err := s.tr.ClearHalt(usb.EndpointStatusIn); err != nil {
		return fmt.Errorf("clear halt status endpoint: %w", err)
	}
	if err := s.tr.ClearHalt(usb.EndpointStreamIn); err != nil {
		return fmt.Errorf("clear halt stream endpoint: %w", err)
	}

	// 信息性查询：结果仅记录，不影响后续步骤
	if _, err := s.exchange("profile", s.enc.GetProfile()); err != nil {
		return err
	}
	if _, err := s.exchange("source", s.enc.GetSource()); err != nil {
		return err
	}

	// 先关闭 grabber，保证从干净状态开始重新配置
	if _, err := s.exchange("pc_grabber_disable", s.enc.SetPCGrabberEnable(false)); err != nil {
		return err
	}

	// 画质/压缩参数必须在采集开启前下发
	if p := s.cfg.Picture; p != nil {
		s.log.Info("applying picture settings",
			zap.Uint32("brightness", p.Brightness), zap.Uint32("contrast", p.Contrast),
			zap.Uint32("hue", p.Hue), zap.Uint32("saturation", p.Saturation))
		if _, err := s.exchange("brightness", s.enc.SetBrightness(p.Brightness)); err != nil {
			return err
		}
		if _, err := s.exchange("contrast", s.enc.SetContrast(p.Contrast)); err != nil {
			return err
		}
		if _, err := s.exchange("hue", s.enc.SetHue(p.Hue)); err != nil {
			return err
		}
		if _, err := s.exchange("saturation", s.enc.SetSaturation(p.Saturation)); err != nil {
			return err
		}
	}
	if c := s.cfg.Compression; c != nil {
		s.log.Info("applying compression settings",
			zap.Uint32("stream", c.StreamIndex), zap.Uint32("keyframeRate", c.KeyframeRate),
			zap.Uint32("quality", c.Quality))
		if _, err := s.exchange("keyframe_rate", s.enc.SetKeyframeRate(c.StreamIndex, c.KeyframeRate)); err != nil {
			return err
		}
		if _, err := s.exchange("quality", s.enc.SetQuality(c.StreamIndex, c.Quality)); err != nil {
			return err
		}
	}

	if _, err := s.exchange("pc_grabber_enable", s.enc.SetPCGrabberEnable(true)); err != nil {
		return err
	}

	s.log.Info("waiting for pc grabber")
	if err := s.waitGrabberReady(); err != nil {
		return err
	}

	// 22 步索引配置：按升序逐步下发，不可跳步、不可重复
	s.log.Info("pushing grabber configuration")
	for i := uint32(0); i < it9910.GrabberConfigSteps; i++ {
		if _, err := s.exchange("pc_grabber_config", s.enc.SetPCGrabberConfig(i)); err != nil {
			return err
		}
	}

	s.log.Info("starting capture")
	if _, err := s.exchange("state", s.enc.SetState(it9910.StateStartCapture)); err != nil {
		return err
	}
	// 最后一条命令；此后状态机不再下发任何命令
	if _, err := s.exchange("pc_grabber_final", s.enc.SetPCGrabberLarge()); err != nil {
		return err
	}

	s.armed.Store(true)
	if s.met != nil {
		s.met.CaptureArmed.Set(1)
	}
	return nil
}

// waitGrabberReady 轮询 grabber 状态直到就绪。
// 未响应的设备会使该步骤永久等待，属设备契约的已接受限制；
// PollMaxAttempts > 0 时提供显式逃生通道。传输错误照常致命。
func (s *Session) waitGrabberReady() error {
	attempts := 0
	for {
		attempts++
		if s.met != nil {
			s.met.PollAttempts.Inc()
		}
		raw, err := s.exchange("pc_grabber_status", s.enc.GetPCGrabberStatus())
		if err != nil {
			return err
		}
		if it9910.GrabberReady(raw) {
			return nil
		}
		if s.cfg.PollMaxAttempts > 0 && attempts >= s.cfg.PollMaxAttempts {
			return ErrGrabberNotReady
		}
		time.Sleep(s.cfg.PollInterval)
	}
}

// exchange 以启动序列超时完成一次命令交互
func (s *Session) exchange(name string, frame []byte) ([]byte, error) {
	return s.exchangeTimeout(name, frame, s.cfg.CommandTimeout)
}

// exchangeTimeout 在锁内完成一次完整的写/读交互，分类并记录响应。
// 锁必须覆盖写与读两步，保证半双工请求/响应不被并发方打断。
func (s *Session) exchangeTimeout(name string, frame []byte, timeout time.Duration) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.met != nil {
		s.met.CommandsTotal.WithLabelValues(name).Inc()
	}
	if err := s.tr.WriteBulk(usb.EndpointCmdOut, frame, timeout); err != nil {
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	buf := make([]byte, respBufSize)
	n, err := s.tr.ReadBulk(usb.EndpointStatusIn, buf, timeout)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", name, err)
	}
	raw := buf[:n]
	s.observe(name, raw)
	return raw, nil
}

// observe 分类响应并输出诊断日志（带 payload 时附十六进制转储）
func (s *Session) observe(name string, raw []byte) {
	resp := it9910.Classify(raw)
	if s.met != nil {
		s.met.ResponsesTotal.WithLabelValues(resp.Kind.String()).Inc()
	}
	switch resp.Kind {
	case it9910.RespTooShort:
		s.log.Warn("short response", zap.String("cmd", name), zap.Int("len", len(raw)))
	case it9910.RespEmpty:
		s.log.Info("command acknowledged", zap.String("cmd", name))
	default:
		s.log.Info("response payload", zap.String("cmd", name), zap.String("hex", resp.HexPayload()))
	}
}
