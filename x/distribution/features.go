package distribution

import "github.com/iov-one/paysplit/errors"

// Features select which operations a splitter exposes and how it behaves.
// They are resolved when the splitter is created and never change.
type Features struct {
	// Native enables native deposits and native distribution.
	Native bool `json:"native"`
	// AutoSplit distributes the balance as part of each deposit.
	AutoSplit bool `json:"auto_split"`
	// Distribute enables the single pass native distribution.
	Distribute bool `json:"distribute"`
	// DistributeWithRetry enables the two phase native distribution.
	DistributeWithRetry bool `json:"distribute_with_retry"`
	// Token enables distribution of a single token.
	Token bool `json:"token"`
	// Tokens enables distribution of a batch of tokens.
	Tokens bool `json:"tokens"`
	// GuardZeroBalance makes distributing a zero balance fail with
	// ErrZeroBalance. Without it, such distribution is a no-op.
	GuardZeroBalance bool `json:"guard_zero_balance"`
	// SkipZeroBalanceTokens makes a batch skip tokens with a zero
	// balance instead of treating them as a single token distribution.
	SkipZeroBalanceTokens bool `json:"skip_zero_balance_tokens"`
	// CheckTransfers records the outcome of every single pass transfer.
	CheckTransfers bool `json:"check_transfers"`
	// StrictTransfers makes any failed single pass transfer abort the
	// call.
	StrictTransfers bool `json:"strict_transfers"`
	// TolerateTokenFailures records failed token transfers instead of
	// aborting the call.
	TolerateTokenFailures bool `json:"tolerate_token_failures"`
}

// DefaultFeatures returns features with all entry points enabled, zero
// balance guarded, zero balance tokens skipped in batches and single pass
// outcomes checked.
func DefaultFeatures() Features {
	return Features{
		Native:                true,
		Distribute:            true,
		DistributeWithRetry:   true,
		Token:                 true,
		Tokens:                true,
		GuardZeroBalance:      true,
		SkipZeroBalanceTokens: true,
		CheckTransfers:        true,
	}
}

// Validate returns an error if the combination of options is not valid.
func (f Features) Validate() error {
	if !f.Native && (f.AutoSplit || f.Distribute || f.DistributeWithRetry) {
		return errors.Wrap(ErrConfiguration, "native distribution requires native feature")
	}
	if !f.Native && !f.Token && !f.Tokens {
		return errors.Wrap(ErrConfiguration, "no entry point enabled")
	}
	return nil
}
