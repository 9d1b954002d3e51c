package usb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"
)

// deviceTransport 基于 gousb/libusb 的 Transport 实现。
// 端点在首次使用时打开并缓存；同一端点的并发访问由上层会话锁保证串行。
type deviceTransport struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	in   map[uint8]*gousb.InEndpoint
	out  map[uint8]*gousb.OutEndpoint
}

// Open 按 VID/PID 打开设备；未找到时返回 ErrNotFound。
func Open(vid, pid uint16) (Transport, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("open device %04x:%04x: %w", vid, pid, err)
	}
	if dev == nil {
		_ = ctx.Close()
		return nil, ErrNotFound
	}
	// 内核可能已绑定 uvc 等驱动，认领前自动解绑
	if err := dev.SetAutoDetach(true); err != nil {
		_ = dev.Close()
		_ = ctx.Close()
		return nil, fmt.Errorf("set auto detach: %w", err)
	}
	return &deviceTransport{
		ctx: ctx,
		dev: dev,
		in:  make(map[uint8]*gousb.InEndpoint),
		out: make(map[uint8]*gousb.OutEndpoint),
	}, nil
}

func (t *deviceTransport) Reset() error {
	return t.dev.Reset()
}

func (t *deviceTransport) ClaimInterface(num int) error {
	cfg, err := t.dev.Config(1)
	if err != nil {
		return fmt.Errorf("select config: %w", err)
	}
	intf, err := cfg.Interface(num, DefaultAltSetting)
	if err != nil {
		_ = cfg.Close()
		return fmt.Errorf("claim interface %d: %w", num, err)
	}
	t.cfg = cfg
	t.intf = intf
	return nil
}

func (t *deviceTransport) SetAltSetting(num, alt int) error {
	if t.cfg == nil {
		return errors.New("usb: interface not claimed")
	}
	if t.intf != nil && t.intf.Setting.Number == num && t.intf.Setting.Alternate == alt {
		return nil
	}
	// gousb 在 Interface() 调用中选择备用设置，切换需重新认领
	if t.intf != nil {
		t.intf.Close()
		clear(t.in)
		clear(t.out)
	}
	intf, err := t.cfg.Interface(num, alt)
	if err != nil {
		return fmt.Errorf("set alt setting %d/%d: %w", num, alt, err)
	}
	t.intf = intf
	return nil
}

func (t *deviceTransport) ClearHalt(endpoint uint8) error {
	// 标准请求 CLEAR_FEATURE(ENDPOINT_HALT)，receiver 为端点
	const (
		reqTypeEndpointOut = 0x02
		reqClearFeature    = 0x01
		featureHalt        = 0x00
	)
	_, err := t.dev.Control(reqTypeEndpointOut, reqClearFeature, featureHalt, uint16(endpoint), nil)
	if err != nil {
		return fmt.Errorf("clear halt 0x%02x: %w", endpoint, mapTransferErr(err))
	}
	return nil
}

func (t *deviceTransport) WriteBulk(endpoint uint8, data []byte, timeout time.Duration) error {
	ep, err := t.outEndpoint(endpoint)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	n, err := ep.WriteContext(ctx, data)
	if err != nil {
		return mapTransferErr(err)
	}
	if n != len(data) {
		return fmt.Errorf("usb: short bulk write: %d of %d bytes", n, len(data))
	}
	return nil
}

func (t *deviceTransport) ReadBulk(endpoint uint8, buf []byte, timeout time.Duration) (int, error) {
	ep, err := t.inEndpoint(endpoint)
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	n, err := ep.ReadContext(ctx, buf)
	if err != nil {
		return n, mapTransferErr(err)
	}
	return n, nil
}

func (t *deviceTransport) Close() error {
	if t.intf != nil {
		t.intf.Close()
	}
	if t.cfg != nil {
		_ = t.cfg.Close()
	}
	if t.dev != nil {
		_ = t.dev.Close()
	}
	if t.ctx != nil {
		return t.ctx.Close()
	}
	return nil
}

func (t *deviceTransport) inEndpoint(endpoint uint8) (*gousb.InEndpoint, error) {
	if ep, ok := t.in[endpoint]; ok {
		return ep, nil
	}
	if t.intf == nil {
		return nil, errors.New("usb: interface not claimed")
	}
	ep, err := t.intf.InEndpoint(int(endpoint & 0x0F))
	if err != nil {
		return nil, fmt.Errorf("open in endpoint 0x%02x: %w", endpoint, err)
	}
	t.in[endpoint] = ep
	return ep, nil
}

func (t *deviceTransport) outEndpoint(endpoint uint8) (*gousb.OutEndpoint, error) {
	if ep, ok := t.out[endpoint]; ok {
		return ep, nil
	}
	if t.intf == nil {
		return nil, errors.New("usb: interface not claimed")
	}
	ep, err := t.intf.OutEndpoint(int(endpoint & 0x0F))
	if err != nil {
		return nil, fmt.Errorf("open out endpoint 0x%02x: %w", endpoint, err)
	}
	t.out[endpoint] = ep
	return ep, nil
}

// mapTransferErr 把 libusb 的超时类错误归一化为 ErrTimeout
func mapTransferErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gousb.ErrorTimeout) ||
		errors.Is(err, gousb.TransferTimedOut) ||
		errors.Is(err, gousb.TransferCancelled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
