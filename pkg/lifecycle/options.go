package lifecycle

import (
	"encoding/binary"
	"os"
)

type options struct {
	order  binary.ByteOrder
	remove func(string) error
}

// Option configures Run.
type Option func(*options)

func defaultOptions() options {
	return options{
		order:  binary.BigEndian,
		remove: os.Remove,
	}
}

// WithByteOrder sets the byte order the leading int32 is decoded with.
// Defaults to big endian. nil keeps the default.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

// WithRemove replaces the function used to delete the file after release.
// Defaults to os.Remove. nil keeps the default.
func WithRemove(fn func(string) error) Option {
	return func(o *options) {
		if fn != nil {
			o.remove = fn
		}
	}
}
