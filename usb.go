package hidapi

import (
	"errors"
	"io"

	"github.com/karalabe/hid"
)

// usbBackend adapts the libusb-flavored HID library to the Backend contract.
// It has no global init of its own and no feature report support, and opens
// devices by re-running enumeration, so it is a fallback for platforms or
// deployments where the native hidapi stack is unavailable.
type usbBackend struct{}

// NewUSBBackend returns the libusb-flavored fallback backend.
func NewUSBBackend() Backend {
	return &usbBackend{}
}

// usbHandle pairs an open device with the message of its most recent
// failure. The underlying library reports errors inline rather than out of
// band, so the message is recorded at the failing call.
type usbHandle struct {
	dev     io.ReadWriteCloser
	lastErr string
	hasErr  bool
}

func (h *usbHandle) fail(err error) int {
	if err != nil {
		h.lastErr, h.hasErr = err.Error(), true
	} else {
		h.lastErr, h.hasErr = "", false
	}
	return -1
}

func (b *usbBackend) Init() error {
	if !hid.Supported() {
		return errors.New("unsupported platform")
	}
	return nil
}

func (b *usbBackend) Exit() {
}

func (b *usbBackend) Enumerate(vendorID, productID uint16) *DeviceInfo {
	infos, err := hid.Enumerate(vendorID, productID)
	if err != nil {
		return nil
	}
	var head, tail *DeviceInfo
	for _, info := range infos {
		d := &DeviceInfo{
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Path:         info.Path,
			Serial:       info.Serial,
			Manufacturer: info.Manufacturer,
			Product:      info.Product,
			Release:      info.Release,
			Interface:    info.Interface,
		}
		if head == nil {
			head = d
		} else {
			tail.next = d
		}
		tail = d
	}
	return head
}

func (b *usbBackend) FreeEnumeration(head *DeviceInfo) {
	// Entries are copies; the chain is ordinary garbage-collected memory.
}

func (b *usbBackend) Open(vendorID, productID uint16, serial string) Handle {
	infos, err := hid.Enumerate(vendorID, productID)
	if err != nil {
		return nil
	}
	for _, info := range infos {
		if serial != "" && info.Serial != serial {
			continue
		}
		dev, err := info.Open()
		if err != nil {
			continue
		}
		return &usbHandle{dev: dev}
	}
	return nil
}

func (b *usbBackend) OpenPath(path string) Handle {
	infos, err := hid.Enumerate(0, 0)
	if err != nil {
		return nil
	}
	for _, info := range infos {
		if info.Path != path {
			continue
		}
		dev, err := info.Open()
		if err != nil {
			return nil
		}
		return &usbHandle{dev: dev}
	}
	return nil
}

func (b *usbBackend) Close(h Handle) {
	h.(*usbHandle).dev.Close()
}

func (b *usbBackend) Read(h Handle, p []byte) int {
	uh := h.(*usbHandle)
	n, err := uh.dev.Read(p)
	if err != nil {
		return uh.fail(err)
	}
	return n
}

func (b *usbBackend) Write(h Handle, p []byte) int {
	uh := h.(*usbHandle)
	n, err := uh.dev.Write(p)
	if err != nil {
		return uh.fail(err)
	}
	return n
}

func (b *usbBackend) GetFeatureReport(h Handle, p []byte) int {
	return h.(*usbHandle).fail(errors.New("feature reports not supported by the usb backend"))
}

func (b *usbBackend) SendFeatureReport(h Handle, p []byte) int {
	return h.(*usbHandle).fail(errors.New("feature reports not supported by the usb backend"))
}

func (b *usbBackend) LastError(h Handle) (string, bool) {
	uh := h.(*usbHandle)
	return uh.lastErr, uh.hasErr
}

func (b *usbBackend) SetBlocking(h Handle, blocking bool) error {
	if blocking {
		// Reads through this backend always block.
		return nil
	}
	return errors.New("non-blocking reads not supported by the usb backend")
}
