package maat

// Serializable produces a stable byte-string form of a value. Two
// values that are equal as domain objects must serialize identically;
// two values that serialize identically are treated as equal by the
// ring.
type Serializable interface {
	Serialize() string
}

// Request wraps a serializable payload. A Request's serialized form is
// the payload's serialized form enclosed in "[" and "]", so a wrapped
// request never hashes from the same input as its own unwrapped
// payload. The delimiters are not escaped: a payload whose serialized
// form already carries them can match some other request's form.
type Request[T Serializable] struct {
	data T
}

// NewRequest wraps data as a Request.
func NewRequest[T Serializable](data T) Request[T] {
	return Request[T]{data: data}
}

// Data returns the wrapped payload.
func (r Request[T]) Data() T {
	return r.data
}

// Serialize implements Serializable.
func (r Request[T]) Serialize() string {
	return "[" + r.data.Serialize() + "]"
}
