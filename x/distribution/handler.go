package distribution

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
	"github.com/iov-one/paysplit/x"
)

const (
	createSplitterCost         int64 = 100
	depositCost                int64 = 50
	distributePerRecipientCost int64 = 10
	retryPerRecipientCost      int64 = 2 * distributePerRecipientCost
)

// RegisterRoutes registers handlers for all splitter messages.
func RegisterRoutes(r paysplit.Registry, auth x.Authenticator, env Env) {
	bucket := NewSplitterBucket()
	r.Handle(pathCreateMsg, &createHandler{bucket: bucket})
	r.Handle(pathDepositMsg, &depositHandler{auth: auth, bucket: bucket, env: env})
	r.Handle(pathDistributeMsg, &distributeHandler{bucket: bucket, env: env})
	r.Handle(pathDistributeWithRetryMsg, &retryHandler{bucket: bucket, env: env})
	r.Handle(pathDistributeTokenMsg, &tokenHandler{bucket: bucket, env: env})
	r.Handle(pathDistributeTokensMsg, &tokensHandler{bucket: bucket, env: env})
}

type createHandler struct {
	bucket orm.ModelBucket
}

var _ paysplit.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: createSplitterCost}, nil
}

func (h *createHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := createSplitter(db, h.bucket, msg.Destinations, msg.Features)
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{Data: id}, nil
}

func (h *createHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if len(msg.Destinations) > int(conf.MaxRecipients) {
		return nil, errors.Wrapf(ErrConfiguration, "more than %d recipients", conf.MaxRecipients)
	}
	return &msg, nil
}

// createSplitter stores a new splitter and returns its ID.
func createSplitter(db paysplit.KVStore, b orm.ModelBucket, ds []Destination, f Features) ([]byte, error) {
	id, err := splitterSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "next splitter ID")
	}
	s := &Splitter{
		Destinations: ds,
		Features:     f,
		Address:      SplitterAccount(id),
	}
	if _, err := b.Put(db, id, s); err != nil {
		return nil, errors.Wrap(err, "cannot store splitter")
	}
	return id, nil
}

type depositHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	env    Env
}

var _ paysplit.Handler = (*depositHandler)(nil)

func (h *depositHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	_, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	cost := depositCost
	if s.Features.AutoSplit {
		cost += distributePerRecipientCost * int64(len(s.Destinations))
	}
	return &paysplit.CheckResult{GasAllocated: cost}, nil
}

func (h *depositHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	u, err := s.Unit(h.env)
	if err != nil {
		return nil, err
	}
	report, err := u.Deposit(ctx, db, msg.Source, msg.GetAmount())
	if err != nil {
		return nil, err
	}
	return deliverResult(report), nil
}

func (h *depositHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*DepositMsg, *Splitter, error) {
	var msg DepositMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "depositor"); err != nil {
		return nil, nil, err
	}
	s, err := loadSplitter(db, h.bucket, msg.SplitterID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, s, nil
}

type distributeHandler struct {
	bucket orm.ModelBucket
	env    Env
}

var _ paysplit.Handler = (*distributeHandler)(nil)

func (h *distributeHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{
		GasAllocated: distributePerRecipientCost * int64(len(s.Destinations)),
	}, nil
}

func (h *distributeHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	u, err := s.Unit(h.env)
	if err != nil {
		return nil, err
	}
	report, err := u.Distribute(ctx, db)
	if err != nil {
		return nil, err
	}
	return deliverResult(report), nil
}

func (h *distributeHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*Splitter, error) {
	var msg DistributeMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return loadSplitter(db, h.bucket, msg.SplitterID)
}

type retryHandler struct {
	bucket orm.ModelBucket
	env    Env
}

var _ paysplit.Handler = (*retryHandler)(nil)

func (h *retryHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{
		GasAllocated: retryPerRecipientCost * int64(len(s.Destinations)),
	}, nil
}

func (h *retryHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	u, err := s.Unit(h.env)
	if err != nil {
		return nil, err
	}
	report, err := u.DistributeWithRetry(ctx, db)
	if err != nil {
		return nil, err
	}
	return deliverResult(report), nil
}

func (h *retryHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*Splitter, error) {
	var msg DistributeWithRetryMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return loadSplitter(db, h.bucket, msg.SplitterID)
}

type tokenHandler struct {
	bucket orm.ModelBucket
	env    Env
}

var _ paysplit.Handler = (*tokenHandler)(nil)

func (h *tokenHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	_, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{
		GasAllocated: distributePerRecipientCost * int64(len(s.Destinations)),
	}, nil
}

func (h *tokenHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	u, err := s.Unit(h.env)
	if err != nil {
		return nil, err
	}
	report, err := u.DistributeToken(ctx, db, msg.Ticker)
	if err != nil {
		return nil, err
	}
	return deliverResult(report), nil
}

func (h *tokenHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*DistributeTokenMsg, *Splitter, error) {
	var msg DistributeTokenMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	s, err := loadSplitter(db, h.bucket, msg.SplitterID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, s, nil
}

type tokensHandler struct {
	bucket orm.ModelBucket
	env    Env
}

var _ paysplit.Handler = (*tokensHandler)(nil)

func (h *tokensHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{
		GasAllocated: distributePerRecipientCost * int64(len(s.Destinations)*len(msg.Tickers)),
	}, nil
}

func (h *tokensHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	u, err := s.Unit(h.env)
	if err != nil {
		return nil, err
	}
	report, err := u.DistributeTokens(ctx, db, msg.Tickers)
	if err != nil {
		return nil, err
	}
	return deliverResult(report), nil
}

func (h *tokensHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*DistributeTokensMsg, *Splitter, error) {
	var msg DistributeTokensMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if len(msg.Tickers) > int(conf.MaxBatchTokens) {
		return nil, nil, errors.Wrapf(errors.ErrMsg, "more than %d tokens", conf.MaxBatchTokens)
	}
	s, err := loadSplitter(db, h.bucket, msg.SplitterID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, s, nil
}

func deliverResult(r *Report) *paysplit.DeliverResult {
	return &paysplit.DeliverResult{
		Log:  r.String(),
		Tags: r.Tags(),
	}
}
