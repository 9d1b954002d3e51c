package it9910

// IT9910 命令帧结构
// 布局：lenLE[2] | pad[2] | opcodeLE[2] | 0x10 | 0x99 | operationLE[4] | seqLE[2] | 0x10 | 0x99 | payload[..]
// len 字段为整帧总长度（16 字节头 + payload）。
const (
	// HeaderLen 固定帧头长度
	HeaderLen = 0x10
	// MaxPayloadLen payload 上限：总长必须能放进 16 位 len 字段
	MaxPayloadLen = 0xFFFF - HeaderLen
)

// 帧头固定魔数（0x06/0x07 与 0x0E/0x0F 两处各出现一次）
const (
	magicA = 0x10
	magicB = 0x99
)

// 帧头各字段偏移
const (
	offLen       = 0x00
	offOpcode    = 0x04
	offMagicA1   = 0x06
	offMagicB1   = 0x07
	offOperation = 0x08
	offSeq       = 0x0C
	offMagicA2   = 0x0E
	offMagicB2   = 0x0F
)

// Operation 命令操作类型
type Operation uint32

const (
	// OpGet 查询当前值
	OpGet Operation = 1
	// OpSet 下发新值
	OpSet Operation = 2
)

// 命令码：标识命令作用的设备功能/寄存器
const (
	OpcodeReboot         uint16 = 0x0001
	OpcodeState          uint16 = 0x0002
	OpcodeSource         uint16 = 0x0003
	OpcodeFirmwareStatus uint16 = 0x0008
	OpcodeProfile        uint16 = 0x000A
	OpcodeBrightness     uint16 = 0x0101
	OpcodeContrast       uint16 = 0x0102
	OpcodeHue            uint16 = 0x0103
	OpcodeSaturation     uint16 = 0x0104
	OpcodeKeyframeRate   uint16 = 0x0202
	OpcodeQuality        uint16 = 0x0203
	OpcodePCGrabber      uint16 = 0xE001
	OpcodeTimeSync       uint16 = 0xF001
	OpcodeHWGrabber      uint16 = 0xF002
)

// StateStartCapture SET state 命令取值：启动采集
const StateStartCapture uint32 = 0x02
