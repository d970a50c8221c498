package distribution

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/iov-one/paysplit"
	"github.com/tendermint/tendermint/libs/common"
)

// NativeAsset is the asset name used in reports for the native value.
const NativeAsset = "native"

// Transfer is the outcome of a single transfer issued during a pass.
type Transfer struct {
	Recipient paysplit.Address
	Amount    *big.Int
	// Phase is 1 for all single pass transfers and 2 for transfers made
	// by the second phase of a distribution with retry.
	Phase int
	// Err is nil if the transfer succeeded.
	Err error
}

// Pass describes a distribution of a single asset.
type Pass struct {
	// Asset is NativeAsset or a token ticker.
	Asset string
	// Snapshot is the balance all portions were computed from.
	Snapshot *big.Int
	// Delivered is the sum of all successful transfers.
	Delivered *big.Int
	// Transfers holds all recorded outcomes, in the order the transfers
	// were issued. It is empty for fire and forget distribution.
	Transfers []Transfer
	// Skipped is set when the asset was not distributed at all.
	Skipped error
}

func newPass(asset string, snapshot *big.Int) *Pass {
	return &Pass{
		Asset:     asset,
		Snapshot:  new(big.Int).Set(snapshot),
		Delivered: new(big.Int),
	}
}

func (p *Pass) record(t Transfer, keep bool) {
	if t.Err == nil {
		p.Delivered.Add(p.Delivered, t.Amount)
	}
	if keep {
		p.Transfers = append(p.Transfers, t)
	}
}

// Undelivered returns the part of the snapshot that was not sent. When all
// transfers succeed this is the rounding dust and it is always less than
// the number of recipients.
func (p *Pass) Undelivered() *big.Int {
	return new(big.Int).Sub(p.Snapshot, p.Delivered)
}

// Failed returns all recorded transfers that did not succeed.
func (p *Pass) Failed() []Transfer {
	var res []Transfer
	for _, t := range p.Transfers {
		if t.Err != nil {
			res = append(res, t)
		}
	}
	return res
}

// Report is returned by every distribution operation.
type Report struct {
	Passes []*Pass
}

func (r *Report) add(p *Pass) {
	r.Passes = append(r.Passes, p)
}

// Pass returns the pass of given asset or nil.
func (r *Report) Pass(asset string) *Pass {
	if r == nil {
		return nil
	}
	for _, p := range r.Passes {
		if p.Asset == asset {
			return p
		}
	}
	return nil
}

// Tags returns the report content as result tags.
func (r *Report) Tags() []common.KVPair {
	if r == nil {
		return nil
	}
	var tags []common.KVPair
	for _, p := range r.Passes {
		prefix := "distribution." + p.Asset + "."
		if p.Skipped != nil {
			tags = append(tags, tag(prefix+"skipped", p.Skipped.Error()))
			continue
		}
		tags = append(tags,
			tag(prefix+"delivered", p.Delivered.String()),
			tag(prefix+"undelivered", p.Undelivered().String()),
		)
		if failed := p.Failed(); len(failed) != 0 {
			tags = append(tags, tag(prefix+"failed", fmt.Sprint(len(failed))))
		}
	}
	return tags
}

// String returns a human readable summary.
func (r *Report) String() string {
	if r == nil || len(r.Passes) == 0 {
		return "nothing distributed"
	}
	parts := make([]string, 0, len(r.Passes))
	for _, p := range r.Passes {
		if p.Skipped != nil {
			parts = append(parts, fmt.Sprintf("%s skipped", p.Asset))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s of %s", p.Asset, p.Delivered, p.Snapshot))
	}
	return "distributed " + strings.Join(parts, ", ")
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
