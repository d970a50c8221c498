package distribution

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/gconf"
)

const (
	optKey          = "distribution"
	optReceiversKey = "receivers"
)

// GenesisSplitter declares a splitter created at genesis. Missing features
// are replaced by DefaultFeatures.
type GenesisSplitter struct {
	Destinations []Destination `json:"destinations"`
	Features     *Features     `json:"features"`
}

// GenesisProgram deploys a recipient program at an address. Program must be
// one of ProgramNames.
type GenesisProgram struct {
	Address paysplit.Address `json:"address"`
	Program string           `json:"program"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ paysplit.Initializer = Initializer{}

// FromGenesis stores the package configuration, if declared, creates all
// splitters and deploys the declared recipient programs. Splitter IDs are
// assigned in declaration order.
func (Initializer) FromGenesis(opts paysplit.Options, db paysplit.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "configuration")
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return err
	}

	var splitters []GenesisSplitter
	if err := opts.ReadOptions(optKey, &splitters); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q options: %s", optKey, err)
	}
	bucket := NewSplitterBucket()
	for i, gs := range splitters {
		if len(gs.Destinations) > int(conf.MaxRecipients) {
			return errors.Wrapf(ErrConfiguration, "splitter %d: more than %d recipients", i, conf.MaxRecipients)
		}
		features := DefaultFeatures()
		if gs.Features != nil {
			features = *gs.Features
		}
		if _, err := createSplitter(db, bucket, gs.Destinations, features); err != nil {
			return errors.Wrapf(err, "splitter %d", i)
		}
	}

	var progs []GenesisProgram
	if err := opts.ReadOptions(optReceiversKey, &progs); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q options: %s", optReceiversKey, err)
	}
	for i, p := range progs {
		if err := DeployProgram(db, p.Address, p.Program); err != nil {
			return errors.Wrapf(err, "receiver %d", i)
		}
	}
	return nil
}
