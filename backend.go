package hidapi

// Handle is an opaque reference to an opened device, produced by a Backend
// and valid until passed to its Close. A nil Handle means "no device".
type Handle any

// DeviceInfo describes one discovered device. Entries form a singly linked
// chain owned by the Enumeration that produced them; copy any field you want
// to keep past the Enumeration's lifetime.
type DeviceInfo struct {
	VendorID     uint16 // USB vendor identifier
	ProductID    uint16 // USB product identifier
	Path         string // platform-specific device path, usable with OpenPath
	Serial       string // serial number, empty when the device reports none
	Manufacturer string // manufacturer string, empty when not reported
	Product      string // product string, empty when not reported
	Release      uint16 // device release number in binary-coded decimal
	Interface    int    // USB interface number, -1 when not applicable

	next *DeviceInfo // chain link, owned by the enumeration
}

// Backend is the capability contract this package wraps: the raw
// enumerate/open/read/write/close/get-error surface of a native HID stack,
// with the native conventions preserved. Opens report failure with a nil
// Handle, I/O calls report failure with a negative count, and the reason for
// the most recent failure is retrieved out of band through LastError.
//
// Backends are not required to be safe for concurrent use of a single
// handle; callers serialize access themselves.
type Backend interface {
	// Init prepares the backend for use. It must be called before any other
	// method, and Exit must be called after the last one.
	Init() error
	// Exit releases everything the backend holds. Handles and descriptor
	// chains still outstanding are invalidated.
	Exit()

	// Enumerate returns the head of a chain of descriptors for attached
	// devices matching the filters (0 matches any), or nil when there are
	// none. The chain stays valid until passed to FreeEnumeration.
	Enumerate(vendorID, productID uint16) *DeviceInfo
	// FreeEnumeration releases a whole descriptor chain at once.
	FreeEnumeration(head *DeviceInfo)

	// Open opens the first device matching the vendor and product IDs and,
	// when serial is non-empty, the serial number. Returns nil on failure.
	Open(vendorID, productID uint16, serial string) Handle
	// OpenPath opens the device at a path found through enumeration.
	// Returns nil on failure.
	OpenPath(path string) Handle
	// Close releases an opened handle. Passing the same handle twice is a
	// caller error the backend does not guard against.
	Close(h Handle)

	// Read reads the next input report into p, returning the number of
	// bytes transferred or a negative value on error. Zero means no report
	// was pending (non-blocking mode) and is not an error.
	Read(h Handle, p []byte) int
	// Write sends an output report, returning bytes written or a negative
	// value on error.
	Write(h Handle, p []byte) int
	// GetFeatureReport reads a feature report. p[0] carries the report ID
	// on entry and is preserved in the result.
	GetFeatureReport(h Handle, p []byte) int
	// SendFeatureReport writes a feature report; p[0] is the report ID.
	SendFeatureReport(h Handle, p []byte) int

	// LastError returns the message describing the handle's most recent
	// failure. ok is false when the backend cannot supply one, which after
	// a failed call is a violation of the native contract.
	LastError(h Handle) (msg string, ok bool)

	// SetBlocking switches the handle between blocking and non-blocking
	// reads. The mode is a property of the handle, not of individual calls.
	SetBlocking(h Handle, blocking bool) error
}

// Filter values matching any vendor or product ID during enumeration.
const (
	VendorIDAny  uint16 = 0
	ProductIDAny uint16 = 0
)
