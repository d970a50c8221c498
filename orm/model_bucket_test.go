package orm

import (
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/weavetest/assert"
)

type counter struct {
	Count int64
}

func (c *counter) Marshal() ([]byte, error) { return paysplit.MarshalBinary(c) }
func (c *counter) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, c)
}
func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

type other struct{ counter }

func TestModelBucket(t *testing.T) {
	db := store.MemStore()

	b := NewModelBucket("cnts", &counter{})

	if _, err := b.Put(db, []byte("c1"), &counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	if _, err := b.Put(db, []byte("c1"), &counter{Count: -1}); !errors.ErrModel.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if _, err := b.Put(db, []byte("c1"), &other{}); !errors.ErrType.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestModelBucketPutSequence(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{}, WithIDSequence(NewSequence("cnts", "custom")))

	k1, err := b.Put(db, nil, &counter{Count: 1})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &counter{Count: 2})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), k1)
	assert.Equal(t, EncodeSequence(2), k2)

	var got []int64
	err = b.ForEach(db, func(key []byte, m Model) error {
		got = append(got, m.(*counter).Count)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []int64{1, 2}, got)
}

func TestModelBucketForEachIsolated(t *testing.T) {
	db := store.MemStore()
	a := NewModelBucket("aaa", &counter{})
	b := NewModelBucket("aab", &counter{})

	_, err := a.Put(db, []byte("x"), &counter{Count: 1})
	assert.Nil(t, err)
	_, err = b.Put(db, []byte("x"), &counter{Count: 2})
	assert.Nil(t, err)

	var n int
	err = a.ForEach(db, func(key []byte, m Model) error {
		n++
		assert.Equal(t, []byte("x"), key)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, 1, n)
}

func TestInvalidBucketName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("X", &counter{}) })
}
