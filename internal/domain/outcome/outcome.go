// Package outcome defines the three-way result of a lookup. A lookup either
// produced nothing (Absent), produced a value (Found), or hit an operational
// error (Failed). The three states form a closed sum: exactly one is active,
// and Absent is never conflated with Failed.
package outcome

import (
	"errors"

	"github.com/trbngr/refdata/internal/domain"
)

// Tag identifies the active state of an Outcome.
type Tag uint8

const (
	// TagAbsent means no value could be produced: the identifier was the
	// reserved sentinel, or the source legitimately found nothing.
	TagAbsent Tag = iota
	// TagFound means the lookup produced a value.
	TagFound
	// TagFailed means the lookup hit an operational error.
	TagFailed
)

// String returns the tag as a stable lower-case label, suitable for log
// fields and metric attributes.
func (t Tag) String() string {
	switch t {
	case TagFound:
		return "found"
	case TagFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Outcome is the tri-state result of a single lookup invocation. Values are
// constructed once via Absent, Found, Failed or Classify and never mutated.
// The zero value is Absent.
type Outcome[T any] struct {
	tag   Tag
	value T
	err   error
}

// Absent returns an outcome carrying no value and no error.
func Absent[T any]() Outcome[T] {
	return Outcome[T]{tag: TagAbsent}
}

// Found returns an outcome carrying v.
func Found[T any](v T) Outcome[T] {
	return Outcome[T]{tag: TagFound, value: v}
}

// Failed returns an outcome carrying the operational error err, unmodified.
// err must be non-nil; classification of results belongs in Classify.
func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{tag: TagFailed, err: err}
}

// Tag reports which state is active.
func (o Outcome[T]) Tag() Tag { return o.tag }

// IsAbsent reports whether the outcome carries no value.
func (o Outcome[T]) IsAbsent() bool { return o.tag == TagAbsent }

// IsFound reports whether the outcome carries a value.
func (o Outcome[T]) IsFound() bool { return o.tag == TagFound }

// IsFailed reports whether the outcome carries an operational error.
func (o Outcome[T]) IsFailed() bool { return o.tag == TagFailed }

// Value returns the carried value. The second return is false unless the
// outcome is Found.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.tag == TagFound
}

// Err returns the carried operational error, or nil unless the outcome is
// Failed. The error is the one the source produced; no wrapping is added.
func (o Outcome[T]) Err() error {
	if o.tag != TagFailed {
		return nil
	}
	return o.err
}

// Bind chains an outcome-producing step onto o. When o is Found(x) the result
// is exactly fn(x). When o is Absent or Failed, fn is never invoked and the
// result is o's state carried over to the new value type, with a Failed
// error preserved as the same error value. Bind is associative: nesting
// order of chained steps does not change the result.
func Bind[T, U any](o Outcome[T], fn func(T) Outcome[U]) Outcome[U] {
	switch o.tag {
	case TagFound:
		return fn(o.value)
	case TagFailed:
		return Failed[U](o.err)
	default:
		return Absent[U]()
	}
}

// Map transforms the value of a Found outcome, passing Absent and Failed
// through untouched.
func Map[T, U any](o Outcome[T], fn func(T) U) Outcome[U] {
	return Bind(o, func(v T) Outcome[U] {
		return Found(fn(v))
	})
}

// Classify converts a conventional (value, error) lookup result into an
// Outcome. A nil error with a value yields Found; a nil error with a nil
// value yields Absent, as does an error wrapping domain.ErrNotFound:
// absence is a fact, not a failure. Any other error yields Failed carrying
// err exactly as received, so message and errors.Is identity survive to
// the caller.
//
// Classify is the only boundary where a lookup error changes representation.
func Classify[T any](v *T, err error) Outcome[T] {
	switch {
	case err == nil && v == nil:
		return Absent[T]()
	case err == nil:
		return Found(*v)
	case errors.Is(err, domain.ErrNotFound):
		return Absent[T]()
	default:
		return Failed[T](err)
	}
}
