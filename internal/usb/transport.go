package usb

import (
	"errors"
	"time"
)

// IT9910 系列设备的固定地址常量
const (
	// VendorID / ProductID 设备厂商与产品标识
	VendorID  uint16 = 0x048D
	ProductID uint16 = 0x9910

	// ControlInterface 控制接口号与默认备用设置
	ControlInterface  = 0
	DefaultAltSetting = 0

	// EndpointStatusIn 命令响应上行端点
	EndpointStatusIn uint8 = 0x81
	// EndpointCmdOut 命令下行端点
	EndpointCmdOut uint8 = 0x02
	// EndpointStreamIn TS 码流上行端点
	EndpointStreamIn uint8 = 0x83
)

var (
	// ErrNotFound 未找到匹配 VID/PID 的设备
	ErrNotFound = errors.New("usb: device not found")
	// ErrTimeout 批量传输超时；采集循环中属预期瞬态错误，其余场景为致命错误
	ErrTimeout = errors.New("usb: transfer timeout")
)

// IsTimeout 判断传输错误是否为超时
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Transport 抽象设备的批量传输通道。
// 实现方负责把底层超时归一化为 ErrTimeout，使上层能区分瞬态与致命失败。
type Transport interface {
	// Reset 复位设备
	Reset() error
	// ClaimInterface 认领指定接口
	ClaimInterface(num int) error
	// SetAltSetting 选择接口的备用设置
	SetAltSetting(num, alt int) error
	// ClearHalt 清除端点的 halt 状态
	ClearHalt(endpoint uint8) error
	// WriteBulk 向端点写入全部字节，超时返回 ErrTimeout
	WriteBulk(endpoint uint8, data []byte, timeout time.Duration) error
	// ReadBulk 从端点读取至多 len(buf) 字节，返回实际读取数
	ReadBulk(endpoint uint8, buf []byte, timeout time.Duration) (int, error)
	// Close 释放接口与设备句柄
	Close() error
}
