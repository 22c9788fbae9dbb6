package utils

import (
	"github.com/iov-one/tescrow"
)

// ActionKey is the tag key ActionTagger writes the message path under.
const ActionKey = "action"

// ActionTagger tags every successful delivery with action=<message path>,
// which lets clients subscribe to, for example, all escrow/claim results.
type ActionTagger struct{}

var _ tescrow.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger { return ActionTagger{} }

func (ActionTagger) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Checker) (*tescrow.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Deliverer) (*tescrow.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, tescrow.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
