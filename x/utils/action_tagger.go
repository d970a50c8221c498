package utils

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/orm"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey is the tag holding the path of every delivered message.
	ActionKey = "action"
	// SplitterKey is the tag holding the decimal ID of the splitter a
	// delivered message operated on.
	SplitterKey = "splitter"
)

// splitterMsg is implemented by messages that operate on an existing
// splitter.
type splitterMsg interface {
	GetSplitterID() []byte
}

// ActionTagger tags a successful delivery with the message path and, for
// messages addressing a splitter, with the splitter ID, so that all calls
// made to a single splitter can be found in the results.
type ActionTagger struct{}

var _ paysplit.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Checker) (*paysplit.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver prepends the tags to the result of a successful call.
func (ActionTagger) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Deliverer) (*paysplit.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	tags := []common.KVPair{{Key: []byte(ActionKey), Value: []byte(msg.Path())}}
	if m, ok := msg.(splitterMsg); ok {
		tags = append(tags, common.KVPair{
			Key:   []byte(SplitterKey),
			Value: []byte(orm.FormatSequence(m.GetSplitterID())),
		})
	}
	res.Tags = append(tags, res.Tags...)
	return res, nil
}
