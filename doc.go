// Package hidapi wraps a low-level HID access stack in ownership-aware
// types: a process-wide library guard, enumerations that own their
// descriptor chains, and exclusive or shared device handles that release the
// native handle exactly once. Every report operation comes in two flavors,
// one returning an error for fail-fast code and a Try variant returning the
// error as data for code that polls and inspects.
//
// The package is single-threaded by design: nothing here locks, and access
// to a given handle must be serialized by the caller.
package hidapi
