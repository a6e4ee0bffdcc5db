// Package ptrx provides pointer helpers for optional DTO fields.
package ptrx

import "time"

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// String returns a pointer to the string value passed in.
func String(v string) *string { return &v }

// Bool returns a pointer to the bool value passed in.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to the int value passed in.
func Int(v int) *int { return &v }

// Time returns a pointer to the time value passed in.
func Time(v time.Time) *time.Time { return &v }

// Value returns the dereferenced value of p, or the zero value when p is nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
