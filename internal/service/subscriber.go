package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"prelaunch/internal/lock"
	"prelaunch/internal/model"
	"prelaunch/internal/notify"
	"prelaunch/internal/repository"
)

// Outcome is the result of a subscribe call.
type Outcome string

const (
	OutcomeCreated       Outcome = "created"
	OutcomeAlreadyActive Outcome = "already_active"
	OutcomeReactivated   Outcome = "reactivated"
)

// Message is the human-readable confirmation shown to the visitor.
func (o Outcome) Message() string {
	switch o {
	case OutcomeCreated:
		return "Successfully subscribed"
	case OutcomeAlreadyActive:
		return "You're already subscribed"
	case OutcomeReactivated:
		return "Welcome back! Your subscription has been reactivated"
	}
	return ""
}

// DefaultSource is used when a subscribe call names no acquisition channel.
// Any other source is stored exactly as given.
const DefaultSource = "website"

type SubscribeInput struct {
	Email           string `json:"email"`
	Source          string `json:"source"`
	ProductInterest string `json:"productInterest"`
}

type SubscribeResult struct {
	Outcome    Outcome
	Subscriber *model.Subscriber
}

type SubscriberListQuery struct {
	Status model.SubscriberStatus
	Source string
	Limit  int
	Skip   int
}

// SubscriberPatch is the admin-editable part of a subscriber. Nil fields are left untouched.
type SubscriberPatch struct {
	Status      *string            `json:"status"`
	Source      *string            `json:"source"`
	Preferences *model.Preferences `json:"preferences"`
}

// OutcomeObserver counts subscribe outcomes.
type OutcomeObserver interface {
	ObserveOutcome(outcome string)
}

// SubscriberService defines the subscriber lifecycle and its admin operations.
type SubscriberService interface {
	// Subscribe creates, reactivates or confirms the subscriber for in.Email and then
	// hands the committed record to the notifier. Notification never affects the result.
	Subscribe(ctx context.Context, in SubscribeInput) (*SubscribeResult, error)

	// Unsubscribe marks the subscriber unsubscribed. Already unsubscribed records are returned unchanged.
	Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error)

	List(ctx context.Context, q SubscriberListQuery) (*ListResult[model.Subscriber], error)
	Get(ctx context.Context, id string) (*model.Subscriber, error)
	Update(ctx context.Context, id string, p SubscriberPatch) (*model.Subscriber, error)
	Delete(ctx context.Context, id string) error

	// Stats returns subscriber counts per status.
	Stats(ctx context.Context) (*model.SubscriberStats, error)
}

type subscriberService struct {
	repo     repository.SubscriberRepository
	locker   lock.Locker
	notifier notify.Notifier
	observer OutcomeObserver
	log      *slog.Logger
}

// NewSubscriberService constructs a SubscriberService. A nil locker disables per-email locking
// and a nil observer disables outcome counting.
func NewSubscriberService(
	repo repository.SubscriberRepository,
	locker lock.Locker,
	notifier notify.Notifier,
	observer OutcomeObserver,
	log *slog.Logger,
) SubscriberService {
	if locker == nil {
		locker = lock.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &subscriberService{repo: repo, locker: locker, notifier: notifier, observer: observer, log: log}
}

func lockKey(email string) string {
	return "subscriber:" + email
}

func (s *subscriberService) Subscribe(ctx context.Context, in SubscribeInput) (*SubscribeResult, error) {
	if !ValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	source := in.Source
	if source == "" {
		source = DefaultSource
	}
	interest := strings.TrimSpace(in.ProductInterest)

	res, err := s.converge(ctx, in.Email, source, interest)
	if err != nil {
		return nil, err
	}

	if s.observer != nil {
		s.observer.ObserveOutcome(string(res.Outcome))
	}
	s.log.Info("subscribe_event",
		"event", "subscriber_"+string(res.Outcome),
		"subscriber_id", res.Subscriber.ID.Hex(),
		"email", res.Subscriber.Email,
		"source", source,
	)

	// Post-commit: the write above has completed and the lock is released.
	s.notifier.NotifyWelcome(ctx, *res.Subscriber)
	return res, nil
}

// converge runs the create / already-active / reactivate decision under the per-email lock.
func (s *subscriberService) converge(ctx context.Context, email, source, interest string) (*SubscribeResult, error) {
	unlock, err := s.locker.Lock(ctx, lockKey(email))
	if err != nil {
		return nil, fmt.Errorf("acquire subscriber lock: %w", err)
	}
	defer unlock()

	now := timeNow().UTC()

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		created, err := s.repo.Create(ctx, newSubscriber(email, source, interest, now))
		if err == nil {
			return &SubscribeResult{Outcome: OutcomeCreated, Subscriber: created}, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}
		// Lost the insert race to another instance; continue on the winner's record.
		existing, err = s.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("find subscriber after duplicate insert: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("find subscriber: %w", err)
	}

	if existing.IsActive() {
		if err := s.addInterest(ctx, existing, interest, now); err != nil {
			return nil, err
		}
		return &SubscribeResult{Outcome: OutcomeAlreadyActive, Subscriber: existing}, nil
	}

	reactivated, err := s.repo.Reactivate(ctx, existing.ID.Hex(), source, now)
	if err != nil {
		return nil, fmt.Errorf("reactivate subscriber: %w", err)
	}
	if err := s.addInterest(ctx, reactivated, interest, now); err != nil {
		return nil, err
	}
	return &SubscribeResult{Outcome: OutcomeReactivated, Subscriber: reactivated}, nil
}

func newSubscriber(email, source, interest string, now time.Time) *model.Subscriber {
	sub := &model.Subscriber{
		Email:        email,
		Status:       model.SubscriberActive,
		Source:       source,
		Preferences:  model.DefaultPreferences(),
		SubscribedAt: now,
		LastUpdated:  now,
	}
	if interest != "" {
		sub.ProductInterests = []string{interest}
	}
	return sub
}

func (s *subscriberService) addInterest(ctx context.Context, sub *model.Subscriber, interest string, now time.Time) error {
	if interest == "" {
		return nil
	}
	if err := s.repo.AddProductInterest(ctx, sub.ID.Hex(), interest, now); err != nil {
		return fmt.Errorf("add product interest: %w", err)
	}
	if !slices.Contains(sub.ProductInterests, interest) {
		sub.ProductInterests = append(sub.ProductInterests, interest)
	}
	sub.LastUpdated = now
	return nil
}

func (s *subscriberService) Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	unlock, err := s.locker.Lock(ctx, lockKey(email))
	if err != nil {
		return nil, fmt.Errorf("acquire subscriber lock: %w", err)
	}
	defer unlock()

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err)
	}
	if !existing.IsActive() {
		return existing, nil
	}

	updated, err := s.repo.SetStatusByEmail(ctx, email, model.SubscriberUnsubscribed, timeNow().UTC())
	if err != nil {
		return nil, notFound(err)
	}
	s.log.Info("subscribe_event", "event", "subscriber_unsubscribed", "subscriber_id", updated.ID.Hex(), "email", email)
	return updated, nil
}

func (s *subscriberService) List(ctx context.Context, q SubscriberListQuery) (*ListResult[model.Subscriber], error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, invalid("status", "must be active or unsubscribed")
	}
	pq := pageQuery(q.Limit, q.Skip)
	res, err := s.repo.List(ctx, repository.SubscriberFilter{Status: q.Status, Source: q.Source}, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *subscriberService) Get(ctx context.Context, id string) (*model.Subscriber, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return sub, nil
}

func (s *subscriberService) Update(ctx context.Context, id string, p SubscriberPatch) (*model.Subscriber, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	upd := model.SubscriberUpdate{Source: trimmed(p.Source), Preferences: p.Preferences}
	if p.Status != nil {
		status := model.SubscriberStatus(*p.Status)
		if !status.Valid() {
			return nil, invalid("status", "must be active or unsubscribed")
		}
		upd.Status = &status
	}
	if upd.Source != nil && *upd.Source == "" {
		return nil, invalid("source", "must not be empty")
	}

	sub, err := s.repo.Update(ctx, id, upd, timeNow().UTC())
	if err != nil {
		return nil, notFound(err)
	}
	return sub, nil
}

func (s *subscriberService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return notFound(s.repo.Delete(ctx, id))
}

func (s *subscriberService) Stats(ctx context.Context) (*model.SubscriberStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := &model.SubscriberStats{
		Active:       counts[model.SubscriberActive],
		Unsubscribed: counts[model.SubscriberUnsubscribed],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}
