package cash

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// Controller is the functionality needed by other extensions to work with
// the native balances.
type Controller interface {
	// Balance returns the amount owned by given address. Unknown
	// addresses own nothing.
	Balance(db paysplit.ReadOnlyKVStore, owner paysplit.Address) (*big.Int, error)

	// MoveCoins moves given amount from src to dest. It fails with
	// ErrInsufficientAmount if src does not own enough.
	MoveCoins(db paysplit.KVStore, src, dest paysplit.Address, amount *big.Int) error
}

// CoinIssuer can create new value out of nothing.
type CoinIssuer interface {
	IssueCoins(db paysplit.KVStore, dest paysplit.Address, amount *big.Int) error
}

// BaseController is the default implementation of the Controller and the
// CoinIssuer interfaces.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}
var _ CoinIssuer = BaseController{}

// NewController returns a controller operating on the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db paysplit.ReadOnlyKVStore, owner paysplit.Address) (*big.Int, error) {
	var w Wallet
	switch err := c.bucket.One(db, owner, &w); {
	case err == nil:
		return w.Amount(), nil
	case errors.ErrNotFound.Is(err):
		return coin.Zero(), nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db paysplit.KVStore, src, dest paysplit.Address, amount *big.Int) error {
	if !coin.IsPositive(amount) {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", coin.Format(amount))
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	have, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	left, err := coin.Subtract(have, amount)
	if err != nil {
		return errors.Wrapf(err, "cannot move from %s", src)
	}
	if src.Equals(dest) {
		return nil
	}
	if err := c.set(db, src, left); err != nil {
		return err
	}
	return c.add(db, dest, amount)
}

// IssueCoins adds the given amount to the destination address.
func (c BaseController) IssueCoins(db paysplit.KVStore, dest paysplit.Address, amount *big.Int) error {
	if !coin.IsPositive(amount) {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", coin.Format(amount))
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return c.add(db, dest, amount)
}

func (c BaseController) add(db paysplit.KVStore, owner paysplit.Address, amount *big.Int) error {
	have, err := c.Balance(db, owner)
	if err != nil {
		return err
	}
	return c.set(db, owner, have.Add(have, amount))
}

func (c BaseController) set(db paysplit.KVStore, owner paysplit.Address, amount *big.Int) error {
	if _, err := c.bucket.Put(db, owner, NewWallet(amount)); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}
