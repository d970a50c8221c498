package distribution

import (
	"testing"

	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/weavetest/assert"
)

func TestConfiguration(t *testing.T) {
	db := store.MemStore()

	got, err := loadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, DefaultConfiguration(), got)

	want := Configuration{MaxRecipients: 7, MaxBatchTokens: 3}
	assert.Nil(t, SaveConfiguration(db, want))
	got, err = loadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, want, got)

	err = SaveConfiguration(db, Configuration{MaxRecipients: -1})
	assert.FieldError(t, err, "MaxRecipients", errors.ErrInput)
	assert.FieldError(t, err, "MaxBatchTokens", errors.ErrInput)
}
