package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cfgpkg "github.com/itegrab/it9910cap/internal/config"
	"github.com/itegrab/it9910cap/internal/usb"
)

// trapTransport 记录批量写次数；打开失败后不应有任何传输发生
type trapTransport struct {
	writes int
}

func (t *trapTransport) Reset() error                 { return nil }
func (t *trapTransport) ClaimInterface(int) error     { return nil }
func (t *trapTransport) SetAltSetting(int, int) error { return nil }
func (t *trapTransport) ClearHalt(uint8) error        { return nil }
func (t *trapTransport) Close() error                 { return nil }
func (t *trapTransport) WriteBulk(uint8, []byte, time.Duration) error {
	t.writes++
	return nil
}
func (t *trapTransport) ReadBulk(uint8, []byte, time.Duration) (int, error) {
	return 0, nil
}

func TestRun_DeviceNotFound(t *testing.T) {
	tr := &trapTransport{}
	opened := 0
	orig := openDevice
	openDevice = func(vid, pid uint16) (usb.Transport, error) {
		opened++
		assert.Equal(t, uint16(0x048D), vid)
		assert.Equal(t, uint16(0x9910), pid)
		return tr, usb.ErrNotFound
	}
	t.Cleanup(func() { openDevice = orig })

	cfg := &cfgpkg.Config{}
	cfg.Device.VendorID = 0x048D
	cfg.Device.ProductID = 0x9910

	err := run(cfg, zap.NewNop())
	require.ErrorIs(t, err, usb.ErrNotFound)
	assert.Equal(t, 1, opened)
	assert.Zero(t, tr.writes, "打开失败后不应构造或下发任何命令帧")
}
