package hidapi

import "fmt"

// InitError reports that global initialization of the underlying HID stack
// failed. Nothing is left alive when it is returned.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("hidapi: initialization failed: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// OperationError reports a failed native call. Message carries the backend's
// own description of the failure; Missing is set when the backend reported
// failure but could not explain it, so logs can tell a specific low-level
// error apart from the low-level layer refusing to say.
type OperationError struct {
	Message string
	Missing bool
}

func (e *OperationError) Error() string {
	if e.Missing {
		return "hidapi: native call failed, but no error message is available"
	}
	return "hidapi: " + e.Message
}

// errNotOpen is returned for operations on a null or already-closed handle.
var errNotOpen = &OperationError{Message: "device is not open"}

// checkError translates the backend's out-of-band error state for a handle
// into an OperationError. By contract the backend must have a message after
// a failed call; a missing one is logged and replaced with the synthetic
// marker rather than treated as fatal.
func (l *Library) checkError(h Handle) *OperationError {
	msg, ok := l.backend.LastError(h)
	if !ok {
		l.logger.Warn("native HID call failed but the backend supplied no error message")
		return &OperationError{Missing: true}
	}
	return &OperationError{Message: msg}
}

// Result is the outcome of a non-failing report operation: the report data
// plus the error, if any, carried as a value instead of unwinding. An empty
// Data with no error means no report was pending.
type Result struct {
	Data []byte
	err  *OperationError
}

// HadError reports whether the underlying native call failed. When it did,
// Data is empty and must not be trusted.
func (r Result) HadError() bool { return r.err != nil }

// Err returns the carried error, or nil.
func (r Result) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}
