// Package notify dispatches the welcome email after a subscription has been committed.
// Delivery failures are logged and counted here and never reach the caller.
package notify

import (
	"context"
	"log/slog"
	"time"

	"prelaunch/internal/config"
	"prelaunch/internal/email"
	"prelaunch/internal/metrics"
	"prelaunch/internal/model"
)

// Notifier receives committed subscribers. Delivery results are not reported back to the caller.
type Notifier interface {
	NotifyWelcome(ctx context.Context, sub model.Subscriber)
}

// Dispatcher is a Notifier that owns background resources.
type Dispatcher interface {
	Notifier
	Close(ctx context.Context) error
}

// Composer renders the welcome message for an address.
type Composer interface {
	Welcome(to string) (email.Message, error)
}

// Recorder counts welcome results.
type Recorder interface {
	ObserveWelcome(result string)
}

type Options struct {
	Sender   email.Sender
	Composer Composer
	Recorder Recorder
	Log      *slog.Logger
	// Timeout bounds a single send. Zero means 10s.
	Timeout time.Duration
}

// New returns an Async dispatcher unless cfg.Mode is "inline".
func New(cfg config.NotifyConfig, opts Options) Dispatcher {
	if opts.Timeout == 0 {
		opts.Timeout = cfg.SendTimeout
	}
	if cfg.Mode == "inline" {
		return NewInline(opts)
	}
	return NewAsync(opts, cfg.QueueSize, cfg.Workers)
}

type deliverer struct {
	sender   email.Sender
	composer Composer
	rec      Recorder
	log      *slog.Logger
	timeout  time.Duration
}

func newDeliverer(opts Options) deliverer {
	d := deliverer{
		sender:   opts.Sender,
		composer: opts.Composer,
		rec:      opts.Recorder,
		log:      opts.Log,
		timeout:  opts.Timeout,
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.timeout <= 0 {
		d.timeout = 10 * time.Second
	}
	return d
}

func (d deliverer) observe(result string) {
	if d.rec != nil {
		d.rec.ObserveWelcome(result)
	}
}

// deliver makes exactly one send attempt. ctx must already be detached from request cancellation.
func (d deliverer) deliver(ctx context.Context, sub model.Subscriber) {
	start := time.Now()

	msg, err := d.composer.Welcome(sub.Email)
	if err != nil {
		d.observe(metrics.WelcomeFailed)
		d.log.Error("notify_event", "event", "welcome_email_failed", "stage", "render",
			"subscriber_id", sub.ID.Hex(), "email", sub.Email, "error", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	id, err := d.sender.Send(ctx, msg)
	if err != nil {
		d.observe(metrics.WelcomeFailed)
		d.log.Warn("notify_event", "event", "welcome_email_failed", "stage", "send",
			"subscriber_id", sub.ID.Hex(), "email", sub.Email, "error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds())
		return
	}

	d.observe(metrics.WelcomeSent)
	d.log.Info("notify_event", "event", "welcome_email_sent",
		"subscriber_id", sub.ID.Hex(), "email", sub.Email, "delivery_id", id,
		"duration_ms", time.Since(start).Milliseconds())
}
