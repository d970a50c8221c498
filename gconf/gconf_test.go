package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/weavetest/assert"
)

type myConfig struct {
	Number int64  `json:"number"`
	Text   string `json:"text"`
}

func (c *myConfig) Marshal() ([]byte, error)   { return paysplit.MarshalBinary(c) }
func (c *myConfig) Unmarshal(raw []byte) error { return paysplit.UnmarshalBinary(raw, c) }
func (c *myConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"valid configuration": {
			Conf: &myConfig{Number: 852151421, Text: "foobar"},
		},
		"zero value": {
			Conf: &myConfig{},
		},
		"invalid configuration cannot be saved": {
			Conf:        &myConfig{Number: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got myConfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, *tc.Conf, got)
		})
	}
}

func TestZeroValueIsStored(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, Save(db, "mypkg", &myConfig{}))

	raw, err := db.Get(confKey("mypkg"))
	assert.Nil(t, err)
	assert.Equal(t, []byte{confFormat}, raw)

	got := myConfig{Number: 3, Text: "stale"}
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, myConfig{}, got)
}

func TestLoadUnknownFormat(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, db.Set(confKey("mypkg"), []byte{0x7f, 0x01}))
	var c myConfig
	assert.IsErr(t, errors.ErrModel, Load(db, "mypkg", &c))
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var c myConfig
	if err := Load(db, "mypkg", &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    myConfig
	}{
		"configuration loaded": {
			Genesis: `{"conf": {"mypkg": {"number": 7, "text": "seven"}}}`,
			Want:    myConfig{Number: 7, Text: "seven"},
		},
		"missing package configuration": {
			Genesis: `{"conf": {"other": {"number": 7}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"number": -4}}}`,
			WantErr: errors.ErrInput,
		},
		"malformed configuration": {
			Genesis: `{"conf": {"mypkg": {"number": "x"}}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts paysplit.Options
			if err := json.Unmarshal([]byte(tc.Genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			var c myConfig
			err := InitConfig(db, opts, "mypkg", &c)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Want, got)
		})
	}
}
