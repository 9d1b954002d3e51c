package it9910

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"
)

// Encoder 构造下行命令帧，内部维护会话级 16 位流水号。
// 流水号从 0 开始，每构造一帧递增 1，溢出时静默回绕。
// 计数器为原子递增：主控制流与可选的保活协程可共享同一实例。
type Encoder struct {
	seq atomic.Uint32 // 仅低 16 位写入帧；2^16 整除 2^32，回绕语义一致
}

// NewEncoder 创建编码器（流水号从 0 开始）
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Build 构造一帧命令。
// payload 超过 MaxPayloadLen 属于调用方编程错误，直接 panic：
// 实际使用的 payload 均为固定大小的设备配置块，正常路径不会触发。
func (e *Encoder) Build(opcode uint16, op Operation, payload []byte) []byte {
	if len(payload) > MaxPayloadLen {
		panic(fmt.Sprintf("it9910: payload %d exceeds frame length field", len(payload)))
	}
	seq := uint16(e.seq.Add(1) - 1)

	buf := make([]byte, HeaderLen+len(payload))
	binary.LittleEndian.PutUint16(buf[offLen:], uint16(len(buf)))
	binary.LittleEndian.PutUint16(buf[offOpcode:], opcode)
	buf[offMagicA1] = magicA
	buf[offMagicB1] = magicB
	binary.LittleEndian.PutUint32(buf[offOperation:], uint32(op))
	binary.LittleEndian.PutUint16(buf[offSeq:], seq)
	buf[offMagicA2] = magicA
	buf[offMagicB2] = magicB
	copy(buf[HeaderLen:], payload)
	return buf
}

// Reboot 重启设备
func (e *Encoder) Reboot() []byte {
	return e.Build(OpcodeReboot, OpSet, nil)
}

// SetState 设置采集状态（StateStartCapture 启动采集）
func (e *Encoder) SetState(v uint32) []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, v)
	return e.Build(OpcodeState, OpSet, data)
}

// GetSource 查询当前音/视频输入源
func (e *Encoder) GetSource() []byte {
	return e.Build(OpcodeSource, OpGet, make([]byte, 8))
}

// SetSource 设置音频与视频输入源
func (e *Encoder) SetSource(audioSrc, videoSrc uint32) []byte {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[0:], audioSrc)
	binary.LittleEndian.PutUint32(data[4:], videoSrc)
	return e.Build(OpcodeSource, OpSet, data)
}

// 画质类设置统一布局：4 字节零 + 4 字节取值（均小端）
func (e *Encoder) setPicture(opcode uint16, v uint32) []byte {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[4:], v)
	return e.Build(opcode, OpSet, data)
}

// SetBrightness 设置亮度
func (e *Encoder) SetBrightness(v uint32) []byte { return e.setPicture(OpcodeBrightness, v) }

// SetContrast 设置对比度
func (e *Encoder) SetContrast(v uint32) []byte { return e.setPicture(OpcodeContrast, v) }

// SetHue 设置色调
func (e *Encoder) SetHue(v uint32) []byte { return e.setPicture(OpcodeHue, v) }

// SetSaturation 设置饱和度
func (e *Encoder) SetSaturation(v uint32) []byte { return e.setPicture(OpcodeSaturation, v) }

// SetKeyframeRate 设置指定码流的关键帧间隔
func (e *Encoder) SetKeyframeRate(streamIdx, rate uint32) []byte {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[0:], streamIdx)
	binary.LittleEndian.PutUint32(data[4:], rate)
	return e.Build(OpcodeKeyframeRate, OpSet, data)
}

// SetQuality 设置指定码流的压缩质量
func (e *Encoder) SetQuality(streamIdx, quality uint32) []byte {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[0:], streamIdx)
	binary.LittleEndian.PutUint32(data[4:], quality)
	return e.Build(OpcodeQuality, OpSet, data)
}

// GetFirmwareStatus 查询固件状态
func (e *Encoder) GetFirmwareStatus() []byte {
	return e.Build(OpcodeFirmwareStatus, OpGet, nil)
}

// GetProfile 查询设备档位信息
func (e *Encoder) GetProfile() []byte {
	return e.Build(OpcodeProfile, OpGet, nil)
}

// GetPCGrabberStatus 查询 PC grabber 状态（payload 为固定探测块）
func (e *Encoder) GetPCGrabberStatus() []byte {
	data := make([]byte, len(grabberStatusProbe))
	copy(data, grabberStatusProbe[:])
	return e.Build(OpcodePCGrabber, OpGet, data)
}

// SetPCGrabberEnable 开/关 PC grabber 小模式（使能标志位于固定块偏移 8）
func (e *Encoder) SetPCGrabberEnable(enable bool) []byte {
	data := make([]byte, len(grabberEnableTemplate))
	copy(data, grabberEnableTemplate[:])
	if enable {
		data[grabberEnableFlagOff] = 0x01
	}
	return e.Build(OpcodePCGrabber, OpSet, data)
}

// SetPCGrabberConfig 下发第 index 步配置：固定模板在偏移 0x0C 处打入小端序号
func (e *Encoder) SetPCGrabberConfig(index uint32) []byte {
	data := make([]byte, len(grabberConfigTemplate))
	copy(data, grabberConfigTemplate[:])
	binary.LittleEndian.PutUint32(data[grabberConfigIndexOff:], index)
	return e.Build(OpcodePCGrabber, OpSet, data)
}

// SetPCGrabberLarge 下发 512 字节最终配置块（采集启动前的最后一条命令）
func (e *Encoder) SetPCGrabberLarge() []byte {
	data := make([]byte, len(grabberFinalBlob))
	copy(data, grabberFinalBlob[:])
	return e.Build(OpcodePCGrabber, OpSet, data)
}

// TimeQuery 时间同步查询（保活用，ts 为毫秒累计值，32 位回绕）
func (e *Encoder) TimeQuery(ts uint32) []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, ts)
	return e.Build(OpcodeTimeSync, OpGet, data)
}

// GetHWGrabber 查询硬件 grabber 信息
func (e *Encoder) GetHWGrabber() []byte {
	return e.Build(OpcodeHWGrabber, OpGet, nil)
}
