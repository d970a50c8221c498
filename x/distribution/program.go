package distribution

import (
	"sort"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// programs lists the recipient programs that can be deployed from genesis,
// by name.
var programs = map[string]Receiver{
	"reject": RejectAll,
}

// ProgramNames returns the names of all deployable programs.
func ProgramNames() []string {
	names := make([]string, 0, len(programs))
	for n := range programs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Program records which recipient program is deployed at an address. It is
// stored under that address.
type Program struct {
	Name string
}

var _ orm.Model = (*Program)(nil)

func (p *Program) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(p)
}

func (p *Program) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, p)
}

func (p *Program) Validate() error {
	if _, ok := programs[p.Name]; !ok {
		return errors.Field("Name", errors.ErrInput, "unknown program %q", p.Name)
	}
	return nil
}

// NewProgramBucket returns a bucket of deployed recipient programs.
func NewProgramBucket() orm.ModelBucket {
	return orm.NewModelBucket("receivers", &Program{})
}

// DeployProgram stores the named program at given address, replacing any
// previous one. Use LoadReceivers to make stored programs effective.
func DeployProgram(db paysplit.KVStore, addr paysplit.Address, name string) error {
	if err := addr.Validate(); err != nil {
		return errors.Field("Address", err, "invalid program address")
	}
	_, err := NewProgramBucket().Put(db, addr, &Program{Name: name})
	return err
}

// LoadReceivers returns the registry of all programs stored in the database.
func LoadReceivers(db paysplit.ReadOnlyKVStore) (*Receivers, error) {
	r := NewReceivers()
	err := NewProgramBucket().ForEach(db, func(key []byte, m orm.Model) error {
		p := m.(*Program)
		rcv, ok := programs[p.Name]
		if !ok {
			return errors.Wrapf(errors.ErrState, "unknown program %q at %s", p.Name, paysplit.Address(key))
		}
		r.Deploy(paysplit.Address(key), rcv)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "load programs")
	}
	return r, nil
}
