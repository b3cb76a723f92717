package hidapi

// sharedHandle is the state all owners of one shared device point at. The
// owner count is a plain integer: this layer is single-threaded by design
// and leaves cross-thread coordination to the caller.
type sharedHandle struct {
	lib    *Library
	handle Handle
	owners int
}

// SharedDevice owns an opened native handle together with every copy made
// through Clone; the last owner's Close releases the handle, exactly once.
// As with Device, a failed open yields a SharedDevice in the null state.
type SharedDevice struct {
	ref *sharedHandle
}

// OpenSharedDevice is OpenDevice with shared ownership semantics.
func (l *Library) OpenSharedDevice(vendorID, productID uint16, serial string) *SharedDevice {
	return &SharedDevice{ref: &sharedHandle{
		lib:    l,
		handle: l.backend.Open(vendorID, productID, serial),
		owners: 1,
	}}
}

// OpenSharedDevicePath is OpenDevicePath with shared ownership semantics.
func (l *Library) OpenSharedDevicePath(path string) *SharedDevice {
	return &SharedDevice{ref: &sharedHandle{
		lib:    l,
		handle: l.backend.OpenPath(path),
		owners: 1,
	}}
}

// Clone adds an owner of the same native handle. Cloning a closed
// SharedDevice yields one in the null state.
func (d *SharedDevice) Clone() *SharedDevice {
	if d.ref == nil {
		return &SharedDevice{}
	}
	d.ref.owners++
	return &SharedDevice{ref: d.ref}
}

// Close drops this owner. The native handle is released when the last owner
// closes, and never twice. Closing an already-closed copy does nothing.
func (d *SharedDevice) Close() {
	if d.ref == nil {
		return
	}
	ref := d.ref
	d.ref = nil
	ref.owners--
	if ref.owners == 0 && ref.handle != nil {
		ref.lib.backend.Close(ref.handle)
		ref.handle = nil
	}
}

// IsValid reports whether this owner still shares an open native handle.
func (d *SharedDevice) IsValid() bool {
	return d.ref != nil && d.ref.handle != nil
}

// Raw exposes the native handle; the owners keep ownership.
func (d *SharedDevice) Raw() Handle {
	if d.ref == nil {
		return nil
	}
	return d.ref.handle
}

func (d *SharedDevice) state() (*Library, Handle) {
	if d.ref == nil {
		return nil, nil
	}
	return d.ref.lib, d.ref.handle
}

// Read returns the next available input report. See Device.Read.
func (d *SharedDevice) Read(maxLen int) ([]byte, error) {
	lib, h := d.state()
	return asError(readReport(lib, h, maxLen))
}

// TryRead is Read with the error carried in the Result.
func (d *SharedDevice) TryRead(maxLen int) Result {
	lib, h := d.state()
	return asResult(readReport(lib, h, maxLen))
}

// GetFeatureReport reads the feature report with the given ID. See
// Device.GetFeatureReport.
func (d *SharedDevice) GetFeatureReport(reportID byte, maxLen int) ([]byte, error) {
	lib, h := d.state()
	return asError(featureReport(lib, h, reportID, maxLen))
}

// TryGetFeatureReport is GetFeatureReport with the error carried in the
// Result.
func (d *SharedDevice) TryGetFeatureReport(reportID byte, maxLen int) Result {
	lib, h := d.state()
	return asResult(featureReport(lib, h, reportID, maxLen))
}

// Write sends an output report and returns the bytes written.
func (d *SharedDevice) Write(p []byte) (int, error) {
	lib, h := d.state()
	n, opErr := writeReport(lib, h, p)
	if opErr != nil {
		return 0, opErr
	}
	return n, nil
}

// SendFeatureReport writes a feature report; p[0] is the report ID.
func (d *SharedDevice) SendFeatureReport(p []byte) (int, error) {
	lib, h := d.state()
	n, opErr := sendFeature(lib, h, p)
	if opErr != nil {
		return 0, opErr
	}
	return n, nil
}

// SetBlocking switches the handle between blocking and non-blocking reads
// for every owner.
func (d *SharedDevice) SetBlocking(blocking bool) error {
	lib, h := d.state()
	if h == nil {
		return errNotOpen
	}
	return lib.backend.SetBlocking(h, blocking)
}

var _ ReportReader = (*SharedDevice)(nil)
