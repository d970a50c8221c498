package orm

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// sequenceLength is the size of every sequence generated ID.
const sequenceLength = 8

// Sequence hands out increasing IDs. An ID is the big endian encoding of the
// counter, so bytes.Compare on IDs agrees with the numeric order and bucket
// iteration returns objects in creation order.
type Sequence struct {
	id []byte
}

// NewSequence returns the counter stored under the _s.<bucket>:<name> key.
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns the new ID. The first ID is 1.
func (s *Sequence) NextVal(db paysplit.KVStore) ([]byte, error) {
	n, err := s.Latest(db)
	if err != nil {
		return nil, err
	}
	if n == math.MaxInt64 {
		return nil, errors.Wrapf(errors.ErrState, "sequence %s exhausted", s.id)
	}
	id := EncodeSequence(n + 1)
	if err := db.Set(s.id, id); err != nil {
		return nil, errors.Wrapf(err, "sequence %s", s.id)
	}
	return id, nil
}

// Latest returns the most recently issued value, or zero if the sequence was
// never used.
func (s *Sequence) Latest(db paysplit.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrapf(err, "sequence %s", s.id)
	}
	if raw == nil {
		return 0, nil
	}
	return DecodeSequence(raw)
}

// DecodeSequence returns the counter value an ID was generated from.
func DecodeSequence(id []byte) (int64, error) {
	if len(id) != sequenceLength {
		return 0, errors.Wrapf(errors.ErrInput, "sequence ID must be %d bytes, got %d", sequenceLength, len(id))
	}
	n := binary.BigEndian.Uint64(id)
	if n > math.MaxInt64 {
		return 0, errors.Wrap(errors.ErrInput, "sequence ID out of range")
	}
	return int64(n), nil
}

// EncodeSequence returns the ID of given counter value.
func EncodeSequence(n int64) []byte {
	id := make([]byte, sequenceLength)
	binary.BigEndian.PutUint64(id, uint64(n))
	return id
}

// FormatSequence prints an ID as the decimal counter value. Keys that are
// not sequence IDs are printed as hex.
func FormatSequence(id []byte) string {
	n, err := DecodeSequence(id)
	if err != nil {
		return fmt.Sprintf("%X", id)
	}
	return strconv.FormatInt(n, 10)
}
