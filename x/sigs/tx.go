package sigs

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/crypto"
	"github.com/iov-one/paysplit/errors"
)

// SignedTx represents a transaction that contains signatures, which can be
// verified by the Decorator
type SignedTx interface {
	paysplit.Tx

	// GetSignBytes returns the canonical byte representation of the Msg.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature over the transaction sign bytes, with the
// sequence of the signing key.
type StdSignature struct {
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
	Sequence  int64
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// StdTx wraps a single message with the signatures authorizing it.
type StdTx struct {
	Msg        paysplit.Msg
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

// NewStdTx returns an unsigned transaction carrying given message.
func NewStdTx(msg paysplit.Msg) *StdTx {
	return &StdTx{Msg: msg}
}

func (tx *StdTx) GetMsg() (paysplit.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized message. Signatures are not part of
// the signed content.
func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	bz, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	return bz, nil
}
