package it9910

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestBuild_FrameLayout(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		op      Operation
		payload []byte
	}{
		{"空payload", OpcodeProfile, OpGet, nil},
		{"4字节payload", OpcodeState, OpSet, []byte{0x02, 0x00, 0x00, 0x00}},
		{"8字节payload", OpcodeSource, OpSet, []byte{1, 0, 0, 0, 2, 0, 0, 0}},
		{"较大payload", OpcodePCGrabber, OpSet, bytes.Repeat([]byte{0xAB}, 0x200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder()
			frame := e.Build(tt.opcode, tt.op, tt.payload)

			if len(frame) != HeaderLen+len(tt.payload) {
				t.Fatalf("frame len = %d, want %d", len(frame), HeaderLen+len(tt.payload))
			}
			if got := binary.LittleEndian.Uint16(frame[offLen:]); int(got) != len(frame) {
				t.Fatalf("len field = %d, want %d", got, len(frame))
			}
			if got := binary.LittleEndian.Uint16(frame[offOpcode:]); got != tt.opcode {
				t.Fatalf("opcode field = 0x%04x, want 0x%04x", got, tt.opcode)
			}
			if frame[offMagicA1] != magicA || frame[offMagicB1] != magicB ||
				frame[offMagicA2] != magicA || frame[offMagicB2] != magicB {
				t.Fatalf("magic bytes corrupted: % x", frame[:HeaderLen])
			}
			if got := binary.LittleEndian.Uint32(frame[offOperation:]); got != uint32(tt.op) {
				t.Fatalf("operation field = %d, want %d", got, tt.op)
			}
			if !bytes.Equal(frame[HeaderLen:], tt.payload) {
				t.Fatalf("payload not copied verbatim")
			}
		})
	}
}

func TestBuild_SequenceIncrements(t *testing.T) {
	e := NewEncoder()
	for i := 0; i < 5; i++ {
		frame := e.Build(OpcodeProfile, OpGet, nil)
		if got := binary.LittleEndian.Uint16(frame[offSeq:]); got != uint16(i) {
			t.Fatalf("frame %d: seq = %d, want %d", i, got, i)
		}
	}
}

func TestBuild_SequenceWraps(t *testing.T) {
	e := NewEncoder()
	e.seq.Store(0xFFFF)
	want := []uint16{0xFFFF, 0x0000, 0x0001}
	for i, w := range want {
		frame := e.Build(OpcodeProfile, OpGet, nil)
		if got := binary.LittleEndian.Uint16(frame[offSeq:]); got != w {
			t.Fatalf("frame %d: seq = 0x%04x, want 0x%04x", i, got, w)
		}
	}
}

func TestBuild_OversizePayloadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for oversize payload")
		}
	}()
	e := NewEncoder()
	e.Build(OpcodePCGrabber, OpSet, make([]byte, MaxPayloadLen+1))
}

func TestRecipes_PayloadLayout(t *testing.T) {
	tests := []struct {
		name       string
		build      func(e *Encoder) []byte
		opcode     uint16
		op         Operation
		payloadLen int
		check      func(t *testing.T, p []byte)
	}{
		{
			name:   "重启命令无payload",
			build:  func(e *Encoder) []byte { return e.Reboot() },
			opcode: OpcodeReboot, op: OpSet, payloadLen: 0,
		},
		{
			name:   "启动采集状态值",
			build:  func(e *Encoder) []byte { return e.SetState(StateStartCapture) },
			opcode: OpcodeState, op: OpSet, payloadLen: 4,
			check: func(t *testing.T, p []byte) {
				if binary.LittleEndian.Uint32(p) != 0x02 {
					t.Fatalf("state value = % x", p)
				}
			},
		},
		{
			name:   "源查询payload为8字节零",
			build:  func(e *Encoder) []byte { return e.GetSource() },
			opcode: OpcodeSource, op: OpGet, payloadLen: 8,
			check: func(t *testing.T, p []byte) {
				if !bytes.Equal(p, make([]byte, 8)) {
					t.Fatalf("probe payload = % x", p)
				}
			},
		},
		{
			name:   "源设置音视频字段",
			build:  func(e *Encoder) []byte { return e.SetSource(3, 7) },
			opcode: OpcodeSource, op: OpSet, payloadLen: 8,
			check: func(t *testing.T, p []byte) {
				if binary.LittleEndian.Uint32(p[0:]) != 3 || binary.LittleEndian.Uint32(p[4:]) != 7 {
					t.Fatalf("source payload = % x", p)
				}
			},
		},
		{
			name:   "亮度为零前缀加取值",
			build:  func(e *Encoder) []byte { return e.SetBrightness(0x64) },
			opcode: OpcodeBrightness, op: OpSet, payloadLen: 8,
			check: func(t *testing.T, p []byte) {
				if binary.LittleEndian.Uint32(p[0:]) != 0 || binary.LittleEndian.Uint32(p[4:]) != 0x64 {
					t.Fatalf("brightness payload = % x", p)
				}
			},
		},
		{
			name:   "关键帧间隔为码流序号加取值",
			build:  func(e *Encoder) []byte { return e.SetKeyframeRate(1, 30) },
			opcode: OpcodeKeyframeRate, op: OpSet, payloadLen: 8,
			check: func(t *testing.T, p []byte) {
				if binary.LittleEndian.Uint32(p[0:]) != 1 || binary.LittleEndian.Uint32(p[4:]) != 30 {
					t.Fatalf("keyframe payload = % x", p)
				}
			},
		},
		{
			name:   "状态查询携带固定探测块",
			build:  func(e *Encoder) []byte { return e.GetPCGrabberStatus() },
			opcode: OpcodePCGrabber, op: OpGet, payloadLen: 12,
			check: func(t *testing.T, p []byte) {
				if !bytes.Equal(p, grabberStatusProbe[:]) {
					t.Fatalf("probe payload = % x", p)
				}
			},
		},
		{
			name:   "保活时间戳",
			build:  func(e *Encoder) []byte { return e.TimeQuery(0xDEADBEEF) },
			opcode: OpcodeTimeSync, op: OpGet, payloadLen: 4,
			check: func(t *testing.T, p []byte) {
				if binary.LittleEndian.Uint32(p) != 0xDEADBEEF {
					t.Fatalf("ts payload = % x", p)
				}
			},
		},
		{
			name:   "最终配置块原样下发",
			build:  func(e *Encoder) []byte { return e.SetPCGrabberLarge() },
			opcode: OpcodePCGrabber, op: OpSet, payloadLen: 0x200,
			check: func(t *testing.T, p []byte) {
				if !bytes.Equal(p, grabberFinalBlob[:]) {
					t.Fatalf("final blob modified")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder()
			frame := tt.build(e)
			if got := binary.LittleEndian.Uint16(frame[offOpcode:]); got != tt.opcode {
				t.Fatalf("opcode = 0x%04x, want 0x%04x", got, tt.opcode)
			}
			if got := binary.LittleEndian.Uint32(frame[offOperation:]); got != uint32(tt.op) {
				t.Fatalf("operation = %d, want %d", got, tt.op)
			}
			payload := frame[HeaderLen:]
			if len(payload) != tt.payloadLen {
				t.Fatalf("payload len = %d, want %d", len(payload), tt.payloadLen)
			}
			if tt.check != nil {
				tt.check(t, payload)
			}
		})
	}
}

func TestSetPCGrabberEnable_Flag(t *testing.T) {
	e := NewEncoder()

	on := e.SetPCGrabberEnable(true)[HeaderLen:]
	off := e.SetPCGrabberEnable(false)[HeaderLen:]

	if off[grabberEnableFlagOff] != 0x00 || on[grabberEnableFlagOff] != 0x01 {
		t.Fatalf("enable flag: off=%02x on=%02x", off[grabberEnableFlagOff], on[grabberEnableFlagOff])
	}
	// 使能标志以外的字节必须与模板一致
	for i := range off {
		if i == grabberEnableFlagOff {
			continue
		}
		if off[i] != grabberEnableTemplate[i] || on[i] != grabberEnableTemplate[i] {
			t.Fatalf("byte %d deviates from template", i)
		}
	}
}

func TestSetPCGrabberConfig_IndexPatch(t *testing.T) {
	e := NewEncoder()
	for idx := uint32(0); idx < GrabberConfigSteps; idx++ {
		p := e.SetPCGrabberConfig(idx)[HeaderLen:]
		if got := binary.LittleEndian.Uint32(p[grabberConfigIndexOff:]); got != idx {
			t.Fatalf("index field = %d, want %d", got, idx)
		}
		// 序号字段以外必须与模板逐字节一致
		for i := range p {
			if i >= grabberConfigIndexOff && i < grabberConfigIndexOff+4 {
				continue
			}
			if p[i] != grabberConfigTemplate[i] {
				t.Fatalf("index %d: byte %d deviates from template", idx, i)
			}
		}
	}
	// 模板自身不得被打序号污染
	if binary.LittleEndian.Uint32(grabberConfigTemplate[grabberConfigIndexOff:]) != 0 {
		t.Fatalf("template mutated by index patching")
	}
}
