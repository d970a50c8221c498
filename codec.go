package paysplit

import (
	"reflect"

	"github.com/iov-one/paysplit/errors"
	amino "github.com/tendermint/go-amino"
)

// codec serializes all persisted models and messages. Types are encoded
// as bare amino structures, so no registration is needed as long as no
// interface values are serialized.
var codec = amino.NewCodec()

// MarshalBinary returns the binary representation of given structure. Use it
// to implement the Marshaller interface.
func MarshalBinary(o interface{}) ([]byte, error) {
	raw, err := codec.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot marshal %T: %s", o, err)
	}
	return raw, nil
}

// UnmarshalBinary loads the binary representation into given destination,
// that must be a pointer. Use it to implement the Persistent interface.
// A structure holding only zero values is encoded as no bytes at all, so an
// empty input resets the destination.
func UnmarshalBinary(raw []byte, dest interface{}) error {
	if len(raw) == 0 {
		rv := reflect.ValueOf(dest)
		if rv.Kind() != reflect.Ptr || rv.IsNil() {
			return errors.Wrapf(errors.ErrInput, "cannot unmarshal into %T", dest)
		}
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
		return nil
	}
	if err := codec.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}
