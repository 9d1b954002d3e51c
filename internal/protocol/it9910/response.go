package it9910

import "encoding/hex"

// RespKind 响应分类结果
type RespKind int

const (
	// RespTooShort 响应不足 16 字节帧头（畸形/截断，仅记录日志，不触发重试）
	RespTooShort RespKind = iota
	// RespEmpty 恰好 16 字节：命令已确认，无返回数据
	RespEmpty
	// RespWithPayload 超过 16 字节：帧头之后为响应数据
	RespWithPayload
)

// String 返回分类的可读名称（用于日志与指标 label）
func (k RespKind) String() string {
	switch k {
	case RespTooShort:
		return "too_short"
	case RespEmpty:
		return "empty"
	case RespWithPayload:
		return "payload"
	default:
		return "unknown"
	}
}

// Response 一条已分类的上行响应
type Response struct {
	Kind    RespKind
	Payload []byte // 仅 RespWithPayload 时非空，为偏移 16 起的原始字节
}

// Classify 按长度对上行响应分类并提取 payload。
// 帧头内部结构不在此处解码；就绪判定见 GrabberReady。
func Classify(raw []byte) Response {
	switch {
	case len(raw) < HeaderLen:
		return Response{Kind: RespTooShort}
	case len(raw) == HeaderLen:
		return Response{Kind: RespEmpty}
	default:
		return Response{Kind: RespWithPayload, Payload: raw[HeaderLen:]}
	}
}

// HexPayload 返回 payload 的十六进制串（诊断输出用）
func (r Response) HexPayload() string {
	if len(r.Payload) == 0 {
		return ""
	}
	return hex.EncodeToString(r.Payload)
}

// PC grabber 状态响应的就绪判定常量
const (
	grabberReadyRespLen = 0x1C // 就绪响应总长固定 28 字节
	grabberReadyFlagOff = 0x18 // 就绪标志字节偏移
)

// GrabberReady 判定 PC grabber 状态响应是否就绪：
// 总长恰为 28 字节且偏移 24 的字节为 1；其余长度一律视为未就绪。
func GrabberReady(raw []byte) bool {
	return len(raw) == grabberReadyRespLen && raw[grabberReadyFlagOff] == 0x01
}
