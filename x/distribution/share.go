package distribution

import "math/big"

// Portion returns floor(amount * share / total).
//
// A nil amount is zero. Total must be greater than zero, which is ensured by
// the RecipientTable constructor. This function panics otherwise.
func Portion(amount, share, total *big.Int) *big.Int {
	if total == nil || total.Sign() <= 0 {
		panic("distribution: total shares must be greater than zero")
	}
	if amount == nil || share == nil {
		return new(big.Int)
	}
	p := new(big.Int).Mul(amount, share)
	// Both operands are non-negative, so truncated division is floor.
	return p.Quo(p, total)
}
