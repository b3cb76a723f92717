package hidapi

import (
	"errors"
	"fmt"

	"github.com/google/gousb"
)

// busBackend enumerates devices at the USB bus level through libusb device
// descriptors. It exists for diagnostics: a device the HID layer cannot see
// (permissions, kernel capture by another driver) still shows up here. It
// cannot open anything, so every open yields a null handle, matching the
// contract for an open that fails.
type busBackend struct {
	ctx *gousb.Context
}

// NewBusBackend returns the enumeration-only libusb backend.
func NewBusBackend() Backend {
	return &busBackend{}
}

func (b *busBackend) Init() error {
	b.ctx = gousb.NewContext()
	return nil
}

func (b *busBackend) Exit() {
	if b.ctx != nil {
		b.ctx.Close()
		b.ctx = nil
	}
}

func (b *busBackend) Enumerate(vendorID, productID uint16) *DeviceInfo {
	if b.ctx == nil {
		return nil
	}
	devs, err := b.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if vendorID != 0 && desc.Vendor != gousb.ID(vendorID) {
			return false
		}
		if productID != 0 && desc.Product != gousb.ID(productID) {
			return false
		}
		return true
	})
	// OpenDevices can fail for some devices and still return the rest.
	if err != nil && len(devs) == 0 {
		return nil
	}
	var head, tail *DeviceInfo
	for _, dev := range devs {
		d := &DeviceInfo{
			VendorID:  uint16(dev.Desc.Vendor),
			ProductID: uint16(dev.Desc.Product),
			Path:      fmt.Sprintf("%03d:%03d", dev.Desc.Bus, dev.Desc.Address),
			Release:   uint16(dev.Desc.Device),
			Interface: -1,
		}
		// String descriptors are best effort; a device that refuses them
		// simply reports empty fields.
		if s, err := dev.SerialNumber(); err == nil {
			d.Serial = s
		}
		if s, err := dev.Manufacturer(); err == nil {
			d.Manufacturer = s
		}
		if s, err := dev.Product(); err == nil {
			d.Product = s
		}
		dev.Close()
		if head == nil {
			head = d
		} else {
			tail.next = d
		}
		tail = d
	}
	return head
}

func (b *busBackend) FreeEnumeration(head *DeviceInfo) {
	// Entries are copies; the chain is ordinary garbage-collected memory.
}

func (b *busBackend) Open(vendorID, productID uint16, serial string) Handle {
	return nil
}

func (b *busBackend) OpenPath(path string) Handle {
	return nil
}

func (b *busBackend) Close(h Handle) {
}

func (b *busBackend) Read(h Handle, p []byte) int { return -1 }

func (b *busBackend) Write(h Handle, p []byte) int { return -1 }

func (b *busBackend) GetFeatureReport(h Handle, p []byte) int { return -1 }

func (b *busBackend) SendFeatureReport(h Handle, p []byte) int { return -1 }

func (b *busBackend) LastError(h Handle) (string, bool) {
	return "bus backend cannot perform device I/O", true
}

func (b *busBackend) SetBlocking(h Handle, blocking bool) error {
	return errors.New("bus backend cannot perform device I/O")
}
