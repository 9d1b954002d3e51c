package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	cfgpkg "github.com/itegrab/it9910cap/internal/config"
	"github.com/itegrab/it9910cap/internal/device"
	"github.com/itegrab/it9910cap/internal/httpserver"
	"github.com/itegrab/it9910cap/internal/logging"
	"github.com/itegrab/it9910cap/internal/metrics"
	"github.com/itegrab/it9910cap/internal/usb"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "配置文件路径（留空则使用默认查找顺序）")
	flag.Parse()

	// 1) 加载配置
	cfg, err := cfgpkg.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	// 2) 初始化日志（stderr；stdout 保留给 TS 码流）
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, zap.L()); err != nil {
		zap.L().Error("fatal", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// openDevice 设备打开入口；测试中替换为假实现
var openDevice = usb.Open

func run(cfg *cfgpkg.Config, log *zap.Logger) error {
	// 3) 指标注册
	reg := metrics.NewRegistry()
	appMet := metrics.NewAppMetrics(reg)

	// 4) 打开设备
	tr, err := openDevice(cfg.Device.VendorID, cfg.Device.ProductID)
	if errors.Is(err, usb.ErrNotFound) {
		return fmt.Errorf("no device found (%04x:%04x): %w", cfg.Device.VendorID, cfg.Device.ProductID, err)
	}
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	sess := device.New(tr, sessionConfig(cfg), log, appMet)

	// 5) 可选诊断 HTTP 服务（健康检查 + 指标）
	if cfg.HTTP.Enable {
		srv := httpserver.New(cfg.HTTP, cfg.Metrics.Path, metrics.Handler(reg), sess.Armed)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server error", zap.Error(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	// 6) 启动序列：固定命令顺序，失败即终止，无部分成功
	if err := sess.BringUp(); err != nil {
		return fmt.Errorf("bring-up: %w", err)
	}

	// 7) 可选保活协程（共享会话锁与流水号）
	if cfg.Keepalive.Enable {
		stop := make(chan struct{})
		defer close(stop)
		go sess.RunKeepalive(stop, cfg.Keepalive.Interval, cfg.Keepalive.Timeout)
	}

	// 8) 码流转发，直到致命传输错误
	sink, closeSink, err := openSink(cfg.Capture.Output)
	if err != nil {
		return err
	}
	defer closeSink()

	if err := sess.Capture(sink); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return nil
}

func sessionConfig(cfg *cfgpkg.Config) device.Config {
	dc := device.Config{
		CommandTimeout:  cfg.Device.CommandTimeout,
		StreamTimeout:   cfg.Device.StreamTimeout,
		PollInterval:    cfg.Device.PollInterval,
		PollMaxAttempts: cfg.Device.PollMaxAttempts,
		BufferSize:      cfg.Capture.BufferSize,
	}
	if cfg.Picture.Enable {
		dc.Picture = &device.PictureSettings{
			Brightness: cfg.Picture.Brightness,
			Contrast:   cfg.Picture.Contrast,
			Hue:        cfg.Picture.Hue,
			Saturation: cfg.Picture.Saturation,
		}
	}
	if cfg.Compression.Enable {
		dc.Compression = &device.CompressionSettings{
			StreamIndex:  cfg.Compression.StreamIndex,
			KeyframeRate: cfg.Compression.KeyframeRate,
			Quality:      cfg.Compression.Quality,
		}
	}
	return dc
}

// openSink 打开码流输出；"-" 表示标准输出
func openSink(output string) (*os.File, func(), error) {
	if output == "" || output == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("open output %s: %w", output, err)
	}
	return f, func() { _ = f.Close() }, nil
}
