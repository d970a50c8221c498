/*
Package coin provides helpers for value amounts and currency tickers.

Amounts are arbitrary precision, non-negative integers represented as
*big.Int values. A nil amount is never valid. All helpers return new
instances and never modify their arguments.
*/
package coin

import (
	"math/big"
	"regexp"

	"github.com/iov-one/paysplit/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Zero returns a new zero amount.
func Zero() *big.Int {
	return new(big.Int)
}

// NewAmount returns a new amount holding given value.
func NewAmount(v int64) *big.Int {
	return big.NewInt(v)
}

// Parse returns the amount represented by given decimal string. Only
// non-negative integers are accepted.
func Parse(s string) (*big.Int, error) {
	a, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	if err := Validate(a); err != nil {
		return nil, err
	}
	return a, nil
}

// MustParse is like Parse but panics on failure. Use it with constants only.
func MustParse(s string) *big.Int {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Format returns the decimal representation of an amount. A nil amount is
// formatted as zero.
func Format(a *big.Int) string {
	if a == nil {
		return "0"
	}
	return a.String()
}

// Validate returns an error if given value is not a valid amount.
func Validate(a *big.Int) error {
	if a == nil {
		return errors.Wrap(errors.ErrAmount, "missing")
	}
	if a.Sign() < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative value %s", a)
	}
	return nil
}

// Clone returns a copy of an amount. A nil amount is cloned into zero.
func Clone(a *big.Int) *big.Int {
	if a == nil {
		return Zero()
	}
	return new(big.Int).Set(a)
}

// IsZero returns true if the amount is nil or equal to zero.
func IsZero(a *big.Int) bool {
	return a == nil || a.Sign() == 0
}

// IsPositive returns true if the amount is greater than zero.
func IsPositive(a *big.Int) bool {
	return a != nil && a.Sign() > 0
}

// IsGTE returns true if a is greater or equal to b. Nil is treated as zero.
func IsGTE(a, b *big.Int) bool {
	return Clone(a).Cmp(Clone(b)) >= 0
}

// Sum returns the total of all given amounts. Nil values are skipped.
func Sum(amounts ...*big.Int) *big.Int {
	total := Zero()
	for _, a := range amounts {
		if a != nil {
			total.Add(total, a)
		}
	}
	return total
}

// Subtract returns a - b. It fails with ErrInsufficientAmount when the
// result would be negative.
func Subtract(a, b *big.Int) (*big.Int, error) {
	res := new(big.Int).Sub(Clone(a), Clone(b))
	if res.Sign() < 0 {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", Format(a), Format(b))
	}
	return res, nil
}
