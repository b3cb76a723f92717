package hidapi

import "testing"

// simResult scripts the outcome of one native read or feature report call.
type simResult struct {
	n     int    // native return value
	data  []byte // report bytes copied out when n >= 0
	msg   string // error message recorded when n < 0
	noMsg bool   // backend reports failure but cannot explain it
}

// simDevice is one simulated attached device with scripted call outcomes.
type simDevice struct {
	info       DeviceInfo
	unopenable bool
	reads      []simResult
	features   []simResult
}

func (d *simDevice) popRead() simResult {
	if len(d.reads) == 0 {
		return simResult{} // nothing pending
	}
	r := d.reads[0]
	d.reads = d.reads[1:]
	return r
}

func (d *simDevice) popFeature() simResult {
	if len(d.features) == 0 {
		return simResult{}
	}
	r := d.features[0]
	d.features = d.features[1:]
	return r
}

// simHandle is an opened simulated device, tracking what the layer under
// test asked of it.
type simHandle struct {
	dev         *simDevice
	backend     *simBackend
	lastErr     string
	hasErr      bool
	lastReadLen int
	blocking    bool
	writes      [][]byte
}

func (h *simHandle) fail(r simResult) int {
	h.lastErr, h.hasErr = r.msg, !r.noMsg
	return r.n
}

// simBackend implements Backend entirely in memory, with acquisition and
// release counters so tests can assert the exactly-once properties.
type simBackend struct {
	devices []*simDevice
	initErr error

	inits  int
	exits  int
	frees  int
	closes map[string]int // native closes per device path
}

func newSimBackend(devices ...*simDevice) *simBackend {
	return &simBackend{devices: devices, closes: make(map[string]int)}
}

func (b *simBackend) Init() error {
	b.inits++
	return b.initErr
}

func (b *simBackend) Exit() {
	b.exits++
}

func (b *simBackend) Enumerate(vendorID, productID uint16) *DeviceInfo {
	var head, tail *DeviceInfo
	for _, dev := range b.devices {
		if vendorID != 0 && dev.info.VendorID != vendorID {
			continue
		}
		if productID != 0 && dev.info.ProductID != productID {
			continue
		}
		d := new(DeviceInfo)
		*d = dev.info
		d.next = nil
		if head == nil {
			head = d
		} else {
			tail.next = d
		}
		tail = d
	}
	return head
}

func (b *simBackend) FreeEnumeration(head *DeviceInfo) {
	b.frees++
}

func (b *simBackend) Open(vendorID, productID uint16, serial string) Handle {
	for _, dev := range b.devices {
		if dev.info.VendorID != vendorID || dev.info.ProductID != productID {
			continue
		}
		if serial != "" && dev.info.Serial != serial {
			continue
		}
		if dev.unopenable {
			return nil
		}
		return &simHandle{dev: dev, backend: b}
	}
	return nil
}

func (b *simBackend) OpenPath(path string) Handle {
	for _, dev := range b.devices {
		if dev.info.Path != path {
			continue
		}
		if dev.unopenable {
			return nil
		}
		return &simHandle{dev: dev, backend: b}
	}
	return nil
}

func (b *simBackend) Close(h Handle) {
	sh := h.(*simHandle)
	b.closes[sh.dev.info.Path]++
}

func (b *simBackend) Read(h Handle, p []byte) int {
	sh := h.(*simHandle)
	sh.lastReadLen = len(p)
	r := sh.dev.popRead()
	if r.n < 0 {
		return sh.fail(r)
	}
	copy(p, r.data)
	return r.n
}

func (b *simBackend) Write(h Handle, p []byte) int {
	sh := h.(*simHandle)
	sh.writes = append(sh.writes, append([]byte(nil), p...))
	return len(p)
}

func (b *simBackend) GetFeatureReport(h Handle, p []byte) int {
	sh := h.(*simHandle)
	r := sh.dev.popFeature()
	if r.n < 0 {
		return sh.fail(r)
	}
	// p[0] already carries the report ID; the payload follows it.
	copy(p[1:], r.data)
	return r.n
}

func (b *simBackend) SendFeatureReport(h Handle, p []byte) int {
	sh := h.(*simHandle)
	sh.writes = append(sh.writes, append([]byte(nil), p...))
	return len(p)
}

func (b *simBackend) LastError(h Handle) (string, bool) {
	sh := h.(*simHandle)
	return sh.lastErr, sh.hasErr
}

func (b *simBackend) SetBlocking(h Handle, blocking bool) error {
	h.(*simHandle).blocking = blocking
	return nil
}

var _ Backend = (*simBackend)(nil)

// twoDeviceSim simulates the attached devices used across the tests: an OSVR
// HDK tracker and an unrelated second device.
func twoDeviceSim() *simBackend {
	return newSimBackend(
		&simDevice{info: DeviceInfo{
			VendorID:     0x1532,
			ProductID:    0x0b00,
			Path:         "sim/hdk0",
			Serial:       "HDK00421",
			Manufacturer: "Razer",
			Product:      "OSVR HDK Tracker",
			Release:      0x0100,
			Interface:    0,
		}},
		&simDevice{info: DeviceInfo{
			VendorID:     0x2222,
			ProductID:    0x3333,
			Path:         "sim/other0",
			Manufacturer: "Example Corp",
			Product:      "Widget",
			Release:      0x0203,
			Interface:    1,
		}},
	)
}

func openSimLibrary(t *testing.T, b *simBackend) *Library {
	t.Helper()
	lib, err := OpenLibrary(WithBackend(b))
	if err != nil {
		t.Fatalf("OpenLibrary: %v", err)
	}
	t.Cleanup(lib.Close)
	return lib
}
