package hidapi

// DefaultMaxLength is the report size requested when a caller passes a
// non-positive maxLen.
const DefaultMaxLength = 512

// ReportReader is the operation surface shared by both device ownership
// variants. For every report operation there are two call-result policies
// over the same native call: the plain methods return an error and are meant
// for fail-fast code, while the Try methods return a Result carrying the
// error as data, for callers that poll and inspect.
type ReportReader interface {
	// IsValid reports whether the variant owns an open native handle.
	IsValid() bool
	// Raw exposes the native handle for backend operations this layer does
	// not wrap. The variant keeps ownership.
	Raw() Handle

	Read(maxLen int) ([]byte, error)
	TryRead(maxLen int) Result
	GetFeatureReport(reportID byte, maxLen int) ([]byte, error)
	TryGetFeatureReport(reportID byte, maxLen int) Result
	Write(p []byte) (int, error)
	SendFeatureReport(p []byte) (int, error)

	// SetBlocking switches the handle between blocking and non-blocking
	// reads.
	SetBlocking(blocking bool) error
}

// finishReport applies the native result convention to a filled buffer: a
// non-negative count trims the buffer to the bytes actually transferred, a
// negative count yields no data and the translated error. Both call-result
// policies are adapters over this one primitive.
func finishReport(l *Library, h Handle, buf []byte, n int) ([]byte, *OperationError) {
	if n < 0 {
		return nil, l.checkError(h)
	}
	return buf[:n], nil
}

func readReport(l *Library, h Handle, maxLen int) ([]byte, *OperationError) {
	if h == nil {
		return nil, errNotOpen
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	buf := make([]byte, maxLen)
	return finishReport(l, h, buf, l.backend.Read(h, buf))
}

func featureReport(l *Library, h Handle, reportID byte, maxLen int) ([]byte, *OperationError) {
	if h == nil {
		return nil, errNotOpen
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	// One extra byte so the report ID at offset 0 survives in the result.
	buf := make([]byte, maxLen+1)
	buf[0] = reportID
	return finishReport(l, h, buf, l.backend.GetFeatureReport(h, buf))
}

func writeReport(l *Library, h Handle, p []byte) (int, *OperationError) {
	if h == nil {
		return 0, errNotOpen
	}
	n := l.backend.Write(h, p)
	if n < 0 {
		return 0, l.checkError(h)
	}
	return n, nil
}

func sendFeature(l *Library, h Handle, p []byte) (int, *OperationError) {
	if h == nil {
		return 0, errNotOpen
	}
	n := l.backend.SendFeatureReport(h, p)
	if n < 0 {
		return 0, l.checkError(h)
	}
	return n, nil
}

func asResult(buf []byte, opErr *OperationError) Result {
	if opErr != nil {
		return Result{err: opErr}
	}
	return Result{Data: buf}
}

func asError(buf []byte, opErr *OperationError) ([]byte, error) {
	if opErr != nil {
		return nil, opErr
	}
	return buf, nil
}

// Device owns an opened native handle exclusively: there is at most one
// owner at a time, and closing (or destroying via Move) releases the handle
// exactly once. A failed open yields a Device in the null state rather than
// an error; check IsValid before use.
type Device struct {
	lib    *Library
	handle Handle
}

// OpenDevice opens the first device matching the vendor and product IDs and,
// when serial is non-empty, the serial number. Open failure is reported
// through IsValid, never as an error, matching the native open contract.
func (l *Library) OpenDevice(vendorID, productID uint16, serial string) *Device {
	return &Device{lib: l, handle: l.backend.Open(vendorID, productID, serial)}
}

// OpenDevicePath opens the device at a platform path, usually taken from an
// enumeration descriptor. Open failure is reported through IsValid.
func (l *Library) OpenDevicePath(path string) *Device {
	return &Device{lib: l, handle: l.backend.OpenPath(path)}
}

// IsValid reports whether the device owns an open native handle.
func (d *Device) IsValid() bool { return d.handle != nil }

// Raw exposes the native handle; the Device keeps ownership.
func (d *Device) Raw() Handle { return d.handle }

// Read returns the next available input report, at most maxLen bytes
// (DefaultMaxLength when maxLen <= 0). The returned length is the byte count
// the native call reported; an empty report means nothing was pending and is
// not an error. Whether the call blocks is the handle's blocking mode.
func (d *Device) Read(maxLen int) ([]byte, error) {
	return asError(readReport(d.lib, d.handle, maxLen))
}

// TryRead is Read with the error carried in the Result instead of returned.
func (d *Device) TryRead(maxLen int) Result {
	return asResult(readReport(d.lib, d.handle, maxLen))
}

// GetFeatureReport reads the feature report with the given ID. The report ID
// is preserved at offset 0 of the returned data.
func (d *Device) GetFeatureReport(reportID byte, maxLen int) ([]byte, error) {
	return asError(featureReport(d.lib, d.handle, reportID, maxLen))
}

// TryGetFeatureReport is GetFeatureReport with the error carried in the
// Result.
func (d *Device) TryGetFeatureReport(reportID byte, maxLen int) Result {
	return asResult(featureReport(d.lib, d.handle, reportID, maxLen))
}

// Write sends an output report and returns the bytes written.
func (d *Device) Write(p []byte) (int, error) {
	n, opErr := writeReport(d.lib, d.handle, p)
	if opErr != nil {
		return 0, opErr
	}
	return n, nil
}

// SendFeatureReport writes a feature report; p[0] is the report ID.
func (d *Device) SendFeatureReport(p []byte) (int, error) {
	n, opErr := sendFeature(d.lib, d.handle, p)
	if opErr != nil {
		return 0, opErr
	}
	return n, nil
}

// SetBlocking switches the handle between blocking and non-blocking reads.
func (d *Device) SetBlocking(blocking bool) error {
	if d.handle == nil {
		return errNotOpen
	}
	return d.lib.backend.SetBlocking(d.handle, blocking)
}

// Move transfers sole ownership of the handle to a new Device and leaves the
// receiver in the null state. Closing the moved-from receiver afterwards
// does nothing.
func (d *Device) Move() *Device {
	moved := &Device{lib: d.lib, handle: d.handle}
	d.handle = nil
	return moved
}

// Close releases the native handle if the device owns one. Closing a null or
// already-closed Device does nothing, so the handle is never released twice.
func (d *Device) Close() {
	if d.handle == nil {
		return
	}
	d.lib.backend.Close(d.handle)
	d.handle = nil
}

var _ ReportReader = (*Device)(nil)
