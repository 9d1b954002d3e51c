package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry 创建自定义 Prometheus Registry，并注册常用采集器
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler 返回 Prometheus 指标 HTTP 处理器
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// AppMetrics 采集会话业务指标
type AppMetrics struct {
	CommandsTotal  *prometheus.CounterVec // labels: command
	ResponsesTotal *prometheus.CounterVec // labels: result=empty|payload|too_short
	PollAttempts   prometheus.Counter     // 就绪轮询次数
	StreamChunks   prometheus.Counter     // 转发的码流分片数
	StreamBytes    prometheus.Counter     // 转发的码流字节数
	StreamTimeouts prometheus.Counter     // 采集循环读超时次数
	CaptureArmed   prometheus.Gauge       // 1=启动序列已完成、采集已开启
}

// NewAppMetrics 注册并返回业务指标
func NewAppMetrics(reg *prometheus.Registry) *AppMetrics {
	m := &AppMetrics{
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "it9910_commands_total",
			Help: "Command frames written to the device by command.",
		}, []string{"command"}),
		ResponsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "it9910_responses_total",
			Help: "Device responses by classification.",
		}, []string{"result"}),
		PollAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "it9910_grabber_poll_attempts_total",
			Help: "Readiness poll attempts during bring-up.",
		}),
		StreamChunks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "it9910_stream_chunks_total",
			Help: "Transport-stream chunks forwarded to the sink.",
		}),
		StreamBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "it9910_stream_bytes_total",
			Help: "Transport-stream bytes forwarded to the sink.",
		}),
		StreamTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "it9910_stream_timeouts_total",
			Help: "Transient read timeouts in the capture loop.",
		}),
		CaptureArmed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "it9910_capture_armed",
			Help: "Whether bring-up completed and capture is armed.",
		}),
	}
	reg.MustRegister(m.CommandsTotal, m.ResponsesTotal, m.PollAttempts, m.StreamChunks, m.StreamBytes, m.StreamTimeouts, m.CaptureArmed)
	return m
}
