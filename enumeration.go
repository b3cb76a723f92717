package hidapi

import "iter"

// Enumeration owns the chain of descriptors produced by a single device
// query. Descriptors are borrowed views into the chain: once Close is called
// (or the Library is closed) every descriptor the enumeration ever yielded is
// invalid, so copy out any field you want to keep. Re-run the query by
// constructing a new Enumeration.
type Enumeration struct {
	lib    *Library
	head   *DeviceInfo
	closed bool
}

// Enumerate queries the devices currently attached, optionally filtered by
// vendor and product ID (VendorIDAny/ProductIDAny match everything). The
// result owns the descriptor chain until its Close.
func (l *Library) Enumerate(vendorID, productID uint16) *Enumeration {
	return &Enumeration{
		lib:  l,
		head: l.backend.Enumerate(vendorID, productID),
	}
}

// Cursor is a forward-only position in an enumeration's chain. Two cursors
// are equal exactly when they sit on the same chain entry, so End compares
// equal to any cursor that has walked off the chain.
type Cursor struct {
	cur *DeviceInfo
}

// Valid reports whether the cursor sits on an entry.
func (c Cursor) Valid() bool { return c.cur != nil }

// Device returns the entry under the cursor, or nil at the end. The pointer
// borrows from the owning Enumeration.
func (c Cursor) Device() *DeviceInfo { return c.cur }

// Next returns the cursor advanced by one entry.
func (c Cursor) Next() Cursor {
	if c.cur == nil {
		return Cursor{}
	}
	return Cursor{cur: c.cur.next}
}

// Begin returns a cursor on the first entry. After Close it returns End.
func (e *Enumeration) Begin() Cursor {
	if e.closed {
		return Cursor{}
	}
	return Cursor{cur: e.head}
}

// End returns the past-the-end cursor.
func (e *Enumeration) End() Cursor { return Cursor{} }

// All yields the chain entries in order, for use with range.
func (e *Enumeration) All() iter.Seq[*DeviceInfo] {
	return func(yield func(*DeviceInfo) bool) {
		for c := e.Begin(); c != e.End(); c = c.Next() {
			if !yield(c.Device()) {
				return
			}
		}
	}
}

// Find returns the first entry for which match returns true, or nil.
func (e *Enumeration) Find(match func(*DeviceInfo) bool) *DeviceInfo {
	for d := range e.All() {
		if match(d) {
			return d
		}
	}
	return nil
}

// Close releases the whole descriptor chain in one call. Every descriptor
// yielded by this enumeration is invalid afterwards. Closing twice does
// nothing.
func (e *Enumeration) Close() {
	if e.closed {
		return
	}
	e.closed = true
	if e.head != nil {
		e.lib.backend.FreeEnumeration(e.head)
		e.head = nil
	}
}
