package notify

import (
	"context"

	"prelaunch/internal/model"
)

// Inline sends on the calling goroutine once the write has committed.
type Inline struct {
	d deliverer
}

func NewInline(opts Options) *Inline {
	return &Inline{d: newDeliverer(opts)}
}

func (n *Inline) NotifyWelcome(ctx context.Context, sub model.Subscriber) {
	n.d.deliver(context.WithoutCancel(ctx), sub)
}

func (n *Inline) Close(context.Context) error { return nil }

var _ Dispatcher = (*Inline)(nil)
