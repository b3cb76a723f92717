package hidapi

import (
	"github.com/sstallion/go-hid"
)

// nativeBackend adapts the hidapi C library (through its cgo binding) to the
// Backend contract. This is the default backend: it is the only one covering
// the full contract, including per-handle native error messages.
type nativeBackend struct{}

// NewNativeBackend returns the backend over the platform HID stack (hidraw,
// IOHIDManager or the Windows HID API, via hidapi).
func NewNativeBackend() Backend {
	return &nativeBackend{}
}

// nativeHandle pairs an open hidapi device with the message of its most
// recent failure, retrievable through LastError.
type nativeHandle struct {
	dev     *hid.Device
	lastErr string
	hasErr  bool
}

// fail records the handle's native error message and returns the sentinel.
// The call's own error is the fallback when hid_error has nothing, which
// happens on some platforms for open-but-unusable handles.
func (h *nativeHandle) fail(callErr error) int {
	if devErr := h.dev.Error(); devErr != nil {
		h.lastErr, h.hasErr = devErr.Error(), true
	} else if callErr != nil {
		h.lastErr, h.hasErr = callErr.Error(), true
	} else {
		h.lastErr, h.hasErr = "", false
	}
	return -1
}

func (b *nativeBackend) Init() error { return hid.Init() }

func (b *nativeBackend) Exit() { hid.Exit() }

func (b *nativeBackend) Enumerate(vendorID, productID uint16) *DeviceInfo {
	var head, tail *DeviceInfo
	err := hid.Enumerate(vendorID, productID, func(info *hid.DeviceInfo) error {
		d := &DeviceInfo{
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Path:         info.Path,
			Serial:       info.SerialNbr,
			Manufacturer: info.MfrStr,
			Product:      info.ProductStr,
			Release:      info.ReleaseNbr,
			Interface:    info.InterfaceNbr,
		}
		if head == nil {
			head = d
		} else {
			tail.next = d
		}
		tail = d
		return nil
	})
	if err != nil && head == nil {
		return nil
	}
	return head
}

func (b *nativeBackend) FreeEnumeration(head *DeviceInfo) {
	// The binding copies every entry out of the native chain, so there is
	// nothing to release; the chain is ordinary garbage-collected memory.
}

func (b *nativeBackend) Open(vendorID, productID uint16, serial string) Handle {
	dev, err := hid.Open(vendorID, productID, serial)
	if err != nil {
		return nil
	}
	return &nativeHandle{dev: dev}
}

func (b *nativeBackend) OpenPath(path string) Handle {
	dev, err := hid.OpenPath(path)
	if err != nil {
		return nil
	}
	return &nativeHandle{dev: dev}
}

func (b *nativeBackend) Close(h Handle) {
	h.(*nativeHandle).dev.Close()
}

func (b *nativeBackend) Read(h Handle, p []byte) int {
	nh := h.(*nativeHandle)
	n, err := nh.dev.Read(p)
	if err != nil {
		return nh.fail(err)
	}
	return n
}

func (b *nativeBackend) Write(h Handle, p []byte) int {
	nh := h.(*nativeHandle)
	n, err := nh.dev.Write(p)
	if err != nil {
		return nh.fail(err)
	}
	return n
}

func (b *nativeBackend) GetFeatureReport(h Handle, p []byte) int {
	nh := h.(*nativeHandle)
	n, err := nh.dev.GetFeatureReport(p)
	if err != nil {
		return nh.fail(err)
	}
	return n
}

func (b *nativeBackend) SendFeatureReport(h Handle, p []byte) int {
	nh := h.(*nativeHandle)
	n, err := nh.dev.SendFeatureReport(p)
	if err != nil {
		return nh.fail(err)
	}
	return n
}

func (b *nativeBackend) LastError(h Handle) (string, bool) {
	nh := h.(*nativeHandle)
	return nh.lastErr, nh.hasErr
}

func (b *nativeBackend) SetBlocking(h Handle, blocking bool) error {
	return h.(*nativeHandle).dev.SetNonblock(!blocking)
}
