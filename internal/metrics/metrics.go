// Package metrics holds the domain Prometheus collectors for the subscription flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Welcome email results.
const (
	WelcomeSent    = "sent"
	WelcomeFailed  = "failed"
	WelcomeDropped = "dropped"
)

// Subscription counts subscribe outcomes and welcome email results.
type Subscription struct {
	outcomes *prometheus.CounterVec
	welcome  *prometheus.CounterVec
}

func NewSubscription(reg prometheus.Registerer) (*Subscription, error) {
	m := &Subscription{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subscriber_outcomes_total",
				Help: "Subscribe calls by outcome (created, already_active, reactivated).",
			},
			[]string{"outcome"},
		),
		welcome: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "welcome_emails_total",
				Help: "Welcome email attempts by result.",
			},
			[]string{"result"},
		),
	}

	for _, c := range []prometheus.Collector{m.outcomes, m.welcome} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Subscription) ObserveOutcome(outcome string) {
	m.outcomes.WithLabelValues(outcome).Inc()
}

func (m *Subscription) ObserveWelcome(result string) {
	m.welcome.WithLabelValues(result).Inc()
}
