package distribution

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/gconf"
)

const confPkg = "distribution"

// Configuration bounds the size of the work a single message can request.
type Configuration struct {
	// MaxRecipients is the maximum number of recipients a splitter can be
	// created with.
	MaxRecipients int32 `json:"max_recipients"`
	// MaxBatchTokens is the maximum number of tokens a batch distribution
	// can process.
	MaxBatchTokens int32 `json:"max_batch_tokens"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when no configuration was stored.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxRecipients:  200,
		MaxBatchTokens: 20,
	}
}

func (c *Configuration) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, c)
}

func (c *Configuration) Validate() error {
	var errs error
	if c.MaxRecipients <= 0 {
		errs = errors.AppendField(errs, "MaxRecipients", errors.ErrInput)
	}
	if c.MaxBatchTokens <= 0 {
		errs = errors.AppendField(errs, "MaxBatchTokens", errors.ErrInput)
	}
	return errs
}

// SaveConfiguration validates and stores the package configuration.
func SaveConfiguration(db gconf.Store, c Configuration) error {
	return gconf.Save(db, confPkg, &c)
}

// loadConfiguration returns the stored configuration or the default one if
// none was stored.
func loadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var c Configuration
	switch err := gconf.Load(db, confPkg, &c); {
	case err == nil:
		return c, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return c, errors.Wrap(err, "load configuration")
	}
}
