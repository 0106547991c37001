package enrich

import "fmt"

// Status classifies the outcome of a single lookup.
type Status int

const (
	// StatusNotFound means the service answered and nothing matched.
	StatusNotFound Status = iota
	// StatusFound means Value holds the result.
	StatusFound
	// StatusTransportError means the request failed or the service returned a
	// non-2xx response; Err holds the detail.
	StatusTransportError
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Lookup is the result of one resolution step.
type Lookup[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Found wraps a resolved value.
func Found[T any](value T) Lookup[T] {
	return Lookup[T]{Status: StatusFound, Value: value}
}

// NotFound reports an empty answer.
func NotFound[T any]() Lookup[T] {
	return Lookup[T]{Status: StatusNotFound}
}

// Failed reports a transport failure.
func Failed[T any](err error) Lookup[T] {
	return Lookup[T]{Status: StatusTransportError, Err: err}
}

// Ok reports whether the lookup produced a value.
func (l Lookup[T]) Ok() bool {
	return l.Status == StatusFound
}

// Ptr returns a pointer to the value when found and nil otherwise, collapsing
// both failure kinds to "absent".
func (l Lookup[T]) Ptr() *T {
	if l.Status != StatusFound {
		return nil
	}
	value := l.Value
	return &value
}
