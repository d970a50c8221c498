package distribution

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// Destination is the persisted form of a recipient. The share is stored as
// a decimal string, as it is not bound in size.
type Destination struct {
	Address paysplit.Address `json:"address"`
	Share   string           `json:"share"`
}

// Splitter is the persisted state of a unit. Its funds are held by the
// Address account, which is derived from the splitter ID.
type Splitter struct {
	Destinations []Destination
	Features     Features
	Address      paysplit.Address
}

var _ orm.Model = (*Splitter)(nil)

func (s *Splitter) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(s)
}

func (s *Splitter) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, s)
}

func (s *Splitter) Validate() error {
	if _, err := recipientTable(s.Destinations); err != nil {
		return errors.Wrap(err, "destinations")
	}
	if err := s.Features.Validate(); err != nil {
		return errors.Wrap(err, "features")
	}
	if err := s.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

// Unit binds this splitter to the given environment.
func (s *Splitter) Unit(env Env) (*Unit, error) {
	table, err := recipientTable(s.Destinations)
	if err != nil {
		return nil, err
	}
	return NewUnit(s.Address, table, s.Features, env)
}

// recipientTable parses destinations into a recipient table.
func recipientTable(ds []Destination) (*RecipientTable, error) {
	entries := make([]Recipient, len(ds))
	for i, d := range ds {
		share, err := coin.Parse(d.Share)
		if err != nil {
			return nil, errors.Field(errors.FieldPath("Destinations", i, "Share"),
				errors.Wrapf(ErrConfiguration, "invalid share %q", d.Share), "")
		}
		entries[i] = Recipient{Address: d.Address, Share: share}
	}
	return NewRecipientTable(entries)
}

// Destinations returns the persisted form of the recipient table.
func Destinations(t *RecipientTable) []Destination {
	ds := make([]Destination, t.Len())
	for i := range ds {
		r := t.At(i)
		ds[i] = Destination{Address: r.Address, Share: r.Share.String()}
	}
	return ds
}

// NewSplitterBucket returns a bucket storing splitters. Keys are drawn from
// splitterSeq before the model is created, as the account address depends
// on it.
func NewSplitterBucket() orm.ModelBucket {
	return orm.NewModelBucket("splitter", &Splitter{})
}

var splitterSeq = orm.NewSequence("splitter", "id")

// SplitterAccount returns the address owning the funds of the splitter with
// given ID.
func SplitterAccount(id []byte) paysplit.Address {
	return paysplit.NewCondition("dist", "splitter", id).Address()
}

// GetSplitter returns the splitter stored under given ID.
func GetSplitter(db paysplit.ReadOnlyKVStore, id []byte) (*Splitter, error) {
	return loadSplitter(db, NewSplitterBucket(), id)
}

// loadSplitter reads the splitter through the given bucket, so handlers can
// share a single bucket instance.
func loadSplitter(db paysplit.ReadOnlyKVStore, b orm.ModelBucket, id []byte) (*Splitter, error) {
	var s Splitter
	if err := b.One(db, id, &s); err != nil {
		return nil, errors.Wrapf(err, "splitter %X", id)
	}
	return &s, nil
}
