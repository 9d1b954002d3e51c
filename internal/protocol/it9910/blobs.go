package it9910

// 本文件中的常量块为 IT9910 固件契约的不透明配置数据，
// 由设备实际行为逆向得到，内部结构未知，必须逐字节原样下发。
// 唯一例外：grabberConfigTemplate 在偏移 0x0C 处写入 4 字节步骤序号。

const (
	// grabberEnableFlagOff 使能标志在 grabberEnableTemplate 中的偏移
	grabberEnableFlagOff = 0x08
	// grabberConfigIndexOff 步骤序号在 grabberConfigTemplate 中的偏移
	grabberConfigIndexOff = 0x0C

	// GrabberConfigSteps 索引配置推送的步数：0..21 共 22 步，顺序固定、不可跳步
	GrabberConfigSteps = 22
)

// grabberStatusProbe GET pc_grabber 状态查询携带的固定探测块
var grabberStatusProbe = [12]byte{
	0x01, 0x40, 0x38, 0x38, 0x3c, 0xc6, 0xb0, 0x93, 0xba, 0xc1, 0xb0, 0x93,
}

// grabberEnableTemplate SET pc_grabber 开/关命令的固定块（使能标志默认 0）
var grabberEnableTemplate = [12]byte{
	0x01, 0x40, 0x38, 0x38, 0x51, 0xd3, 0xcf, 0x77, 0x00, 0x00, 0x00, 0x00,
}

// grabberConfigTemplate 索引配置推送的 60 字节模板
var grabberConfigTemplate = [0x3C]byte{
	0x08, 0x20, 0x38, 0x38, 0x00, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x0f, 0x00, 0x00, 0x00, 0x80, 0x07, 0x00, 0x00,
	0x38, 0x04, 0x00, 0x00, 0x10, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x1e, 0x00, 0x00, 0x00, 0x1e, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// grabberFinalBlob 采集启动前最后下发的 512 字节配置块
var grabberFinalBlob = [0x200]byte{
	0x00, 0x02, 0x00, 0x00, 0x01, 0xe0, 0x10, 0x99, 0x01, 0x00, 0x00, 0x00,
	0x36, 0x00, 0x10, 0x99, 0x02, 0x00, 0x38, 0x38, 0x3c, 0xc6, 0xb0, 0x93,
	0xba, 0xc1, 0xb0, 0x93, 0x00, 0x00, 0x00, 0x00, 0x28, 0x8b, 0x5d, 0x8a,
	0x5d, 0x6b, 0xb0, 0x93, 0x74, 0xd0, 0xcc, 0x84, 0xb8, 0x63, 0xdf, 0x84,
	0xb8, 0x65, 0xdf, 0x84, 0x48, 0xce, 0xd8, 0x84, 0x07, 0x00, 0x00, 0x00,
	0x3c, 0xc6, 0xb0, 0x93, 0xae, 0xba, 0xb0, 0x93, 0x24, 0x8b, 0x5d, 0x8a,
	0x98, 0xc6, 0xb0, 0x93, 0xc0, 0xa8, 0x98, 0x84, 0x01, 0x00, 0x00, 0xc0,
	0x78, 0x8b, 0x5d, 0x8a, 0x21, 0x61, 0x22, 0x8d, 0x74, 0xd0, 0xcc, 0x84,
	0xb8, 0x65, 0xdf, 0x84, 0xb8, 0x63, 0xdf, 0x84, 0xac, 0xaa, 0x7f, 0x07,
	0xd0, 0x12, 0x22, 0x8d, 0x28, 0x00, 0x00, 0x00, 0x05, 0xce, 0xd8, 0x84,
	0x00, 0x00, 0x00, 0x00, 0x20, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x3c, 0x8b, 0x5d, 0x8a,
	0x00, 0x00, 0x00, 0x00, 0xc0, 0x8c, 0x5d, 0x8a, 0xea, 0x0a, 0x22, 0x8d,
	0xd4, 0x3b, 0x00, 0x00, 0xfe, 0xff, 0xff, 0xff, 0xac, 0x8b, 0x5d, 0x8a,
	0x85, 0x5a, 0x22, 0x8d, 0x48, 0xce, 0xd8, 0x84, 0x05, 0x00, 0x00, 0x00,
	0xb0, 0x38, 0xcb, 0x95, 0xb8, 0x63, 0xdf, 0x84, 0x28, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xe8, 0xe2, 0xd8, 0x84,
	0x48, 0xce, 0xd8, 0x84, 0x48, 0xce, 0xd8, 0x84, 0x25, 0x02, 0x00, 0xc0,
	0xd4, 0x8b, 0x5d, 0x8a, 0x43, 0x6c, 0x22, 0x8d, 0x48, 0xce, 0xd8, 0x84,
	0x60, 0x38, 0xcb, 0x95, 0x30, 0x52, 0xd8, 0x84, 0x38, 0x52, 0xd8, 0x84,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xe8, 0xe2, 0xd8, 0x84,
	0x08, 0xd0, 0xcc, 0x84, 0xe4, 0x8b, 0x5d, 0x8a, 0x8f, 0x54, 0x22, 0x8d,
	0x70, 0x5c, 0x3e, 0x84, 0x48, 0xce, 0xd8, 0x84, 0xfc, 0x8b, 0x5d, 0x8a,
	0xba, 0x50, 0x21, 0x8d, 0x70, 0x5c, 0x3e, 0x84, 0x48, 0xce, 0xd8, 0x84,
	0x70, 0x5c, 0x3e, 0x84, 0x00, 0x00, 0x00, 0x00, 0x14, 0x8c, 0x5d, 0x8a,
	0x47, 0x20, 0x83, 0x82, 0x70, 0x5c, 0x3e, 0x84, 0x48, 0xce, 0xd8, 0x84,
	0x48, 0xce, 0xd8, 0x84, 0x70, 0x5c, 0x3e, 0x84, 0x34, 0x8c, 0x5d, 0x8a,
	0xd5, 0x89, 0xa0, 0x82, 0xe8, 0xe2, 0xd8, 0x84, 0x48, 0xce, 0xd8, 0x84,
	0x48, 0xcf, 0xd8, 0x84, 0xb4, 0x01, 0x00, 0x00, 0x8c, 0x8c, 0x5d, 0x04,
	0x44, 0x8c, 0x5d, 0x8a, 0xd0, 0x8c, 0x5d, 0x8a, 0xc8, 0xad, 0xa0, 0x82,
	0x70, 0x5c, 0x3e, 0x84, 0xe8, 0xe2, 0xd8, 0x84, 0x00, 0x00, 0x00, 0x00,
	0x01, 0xf1, 0xa4, 0x82, 0x00, 0x7a, 0x6b, 0x20, 0x02, 0x00, 0x00, 0x00,
	0xf4, 0x7d, 0x6b, 0x20, 0x44, 0x04, 0x00, 0x00, 0xc8, 0xfb, 0x25, 0x09,
	0x73, 0x1d, 0xa1, 0x82, 0x00, 0x00, 0x00, 0x00, 0x9f, 0x01, 0x12, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0xe8, 0xe2, 0xd8, 0x84,
	0x00, 0x00, 0x00, 0x00, 0xd5, 0x74, 0xa5, 0x08, 0xc0, 0x0a, 0xd8, 0x84,
	0x84, 0x75, 0xa5, 0x82, 0x01, 0x8e, 0x8b, 0x82, 0xc8, 0xf5, 0x42, 0x84,
	0x10, 0x00, 0x00, 0x00, 0xa4, 0x8c, 0x5d, 0x8a, 0x30, 0xfc, 0x25, 0x09,
	0x00, 0x7a, 0x6b, 0x20, 0x03, 0x00, 0x00, 0x00, 0x01, 0xf1, 0xa4, 0x82,
	0xc8, 0xf5, 0x42, 0x84, 0xe8, 0xe2, 0xd8, 0x84, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x54, 0x8c, 0x5d, 0x8a, 0x18, 0x8d, 0x5d, 0x8a,
	0xff, 0xff, 0xff, 0xff, 0x0b, 0x8e, 0x8b, 0x82, 0x7c, 0xf2, 0xb3, 0x28,
	0xfe, 0xff, 0xff, 0xff, 0x04, 0x8d, 0x5d, 0x8a,
}
