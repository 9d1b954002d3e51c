package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig 应用基础信息
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// DeviceConfig 采集设备与命令交互配置
type DeviceConfig struct {
	VendorID        uint16        `mapstructure:"vendorId"`
	ProductID       uint16        `mapstructure:"productId"`
	CommandTimeout  time.Duration `mapstructure:"commandTimeout"`  // 启动序列每次写/读的超时
	StreamTimeout   time.Duration `mapstructure:"streamTimeout"`   // 采集循环单次读超时
	PollInterval    time.Duration `mapstructure:"pollInterval"`    // 就绪轮询间隔
	PollMaxAttempts int           `mapstructure:"pollMaxAttempts"` // 0 表示无限轮询（默认，与设备契约一致）
}

// PictureConfig 画质参数；enable 时在启动序列中下发
type PictureConfig struct {
	Enable     bool   `mapstructure:"enable"`
	Brightness uint32 `mapstructure:"brightness"`
	Contrast   uint32 `mapstructure:"contrast"`
	Hue        uint32 `mapstructure:"hue"`
	Saturation uint32 `mapstructure:"saturation"`
}

// CompressionConfig 压缩参数；enable 时在启动序列中下发
type CompressionConfig struct {
	Enable       bool   `mapstructure:"enable"`
	StreamIndex  uint32 `mapstructure:"streamIndex"`
	KeyframeRate uint32 `mapstructure:"keyframeRate"`
	Quality      uint32 `mapstructure:"quality"`
}

// KeepaliveConfig 可选的周期性时间同步保活
type KeepaliveConfig struct {
	Enable   bool          `mapstructure:"enable"`
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CaptureConfig 码流输出配置
type CaptureConfig struct {
	Output     string `mapstructure:"output"` // "-" 表示标准输出
	BufferSize int    `mapstructure:"bufferSize"`
}

// HTTPConfig 诊断 HTTP 服务配置（健康检查与指标）
type HTTPConfig struct {
	Enable       bool          `mapstructure:"enable"`
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

// MetricsConfig Prometheus 指标暴露配置
type MetricsConfig struct {
	Path string `mapstructure:"path"`
}

// LumberjackConfig 日志滚动（lumberjack）配置
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig 日志级别与输出配置
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`
}

// Config 顶层配置结构
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Device      DeviceConfig      `mapstructure:"device"`
	Picture     PictureConfig     `mapstructure:"picture"`
	Compression CompressionConfig `mapstructure:"compression"`
	Keepalive   KeepaliveConfig   `mapstructure:"keepalive"`
	Capture     CaptureConfig     `mapstructure:"capture"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// Load 从 YAML/TOML/JSON 文件与环境变量加载配置。
// 若 path 为空，依次尝试环境变量 IT9910CAP_CONFIG 与 configs/it9910cap.yaml；
// 找不到配置文件时退回默认值，工具可零配置运行。
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = os.Getenv("IT9910CAP_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("it9910cap")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	// 环境变量覆盖：前缀 IT9910，点号替换为下划线
	v.SetEnvPrefix("IT9910")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if fmt.Sprintf("%T", err) != fmt.Sprintf("%T", notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "it9910cap")
	v.SetDefault("app.env", "dev")

	v.SetDefault("device.vendorId", 0x048D)
	v.SetDefault("device.productId", 0x9910)
	v.SetDefault("device.commandTimeout", "2s")
	v.SetDefault("device.streamTimeout", "1s")
	v.SetDefault("device.pollInterval", "1s")
	v.SetDefault("device.pollMaxAttempts", 0)

	v.SetDefault("picture.enable", false)
	v.SetDefault("picture.brightness", 0)
	v.SetDefault("picture.contrast", 100)
	v.SetDefault("picture.hue", 0)
	v.SetDefault("picture.saturation", 100)

	v.SetDefault("compression.enable", false)
	v.SetDefault("compression.streamIndex", 0)
	v.SetDefault("compression.keyframeRate", 30)
	v.SetDefault("compression.quality", 80)

	v.SetDefault("keepalive.enable", false)
	v.SetDefault("keepalive.interval", "10s")
	v.SetDefault("keepalive.timeout", "5s")

	v.SetDefault("capture.output", "-")
	v.SetDefault("capture.bufferSize", 0x4000)

	v.SetDefault("http.enable", false)
	v.SetDefault("http.addr", ":9110")
	v.SetDefault("http.readTimeout", "5s")
	v.SetDefault("http.writeTimeout", "10s")
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 100)
	v.SetDefault("logging.file.maxBackups", 7)
	v.SetDefault("logging.file.maxAge", 30)
	v.SetDefault("logging.file.compress", true)
}
