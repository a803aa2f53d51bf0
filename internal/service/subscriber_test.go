package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"prelaunch/internal/lock"
	"prelaunch/internal/model"
	"prelaunch/internal/repository"
	repoMocks "prelaunch/internal/repository/mocks"
)

var fixedNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func freezeTime(t *testing.T) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return fixedNow }
	t.Cleanup(func() { timeNow = prev })
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []model.Subscriber
}

func (n *recordingNotifier) NotifyWelcome(_ context.Context, sub model.Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sub)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveOutcome(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

type failingLocker struct{ err error }

func (l failingLocker) Lock(context.Context, string) (lock.Unlock, error) { return nil, l.err }

func activeSubscriber(email, source string) *model.Subscriber {
	return &model.Subscriber{
		ID:           primitive.NewObjectID(),
		Email:        email,
		Status:       model.SubscriberActive,
		Source:       source,
		Preferences:  model.DefaultPreferences(),
		SubscribedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
		LastUpdated:  time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestSubscriberService_Subscribe(t *testing.T) {
	freezeTime(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		in          SubscribeInput
		setupMocks  func(m *repoMocks.MockSubscriberRepository)
		wantOutcome Outcome
		wantSource  string
		wantErr     error
		wantErrMsg  string
		wantNotify  int
	}{
		{
			name: "new email is created",
			in:   SubscribeInput{Email: "a@b.com", Source: "landing-page"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				m.On("FindByEmail", ctx, "a@b.com").Return(nil, repository.ErrNotFound)
				m.On("Create", ctx, mock.MatchedBy(func(s *model.Subscriber) bool {
					return s.Email == "a@b.com" &&
						s.Status == model.SubscriberActive &&
						s.Source == "landing-page" &&
						s.SubscribedAt.Equal(fixedNow) &&
						s.LastUpdated.Equal(fixedNow) &&
						s.Preferences == model.DefaultPreferences() &&
						s.ProductInterests == nil
				})).Return(func() *model.Subscriber {
					s := activeSubscriber("a@b.com", "landing-page")
					s.SubscribedAt = fixedNow
					return s
				}(), nil)
			},
			wantOutcome: OutcomeCreated,
			wantSource:  "landing-page",
			wantNotify:  1,
		},
		{
			name: "empty source defaults to website",
			in:   SubscribeInput{Email: "a@b.com", ProductInterest: "linen-blazer"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				m.On("FindByEmail", ctx, "a@b.com").Return(nil, repository.ErrNotFound)
				m.On("Create", ctx, mock.MatchedBy(func(s *model.Subscriber) bool {
					return s.Source == DefaultSource && len(s.ProductInterests) == 1 && s.ProductInterests[0] == "linen-blazer"
				})).Return(activeSubscriber("a@b.com", DefaultSource), nil)
			},
			wantOutcome: OutcomeCreated,
			wantSource:  DefaultSource,
			wantNotify:  1,
		},
		{
			name: "source is stored as given",
			in:   SubscribeInput{Email: "a@b.com", Source: " Landing Page "},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				m.On("FindByEmail", ctx, "a@b.com").Return(nil, repository.ErrNotFound)
				m.On("Create", ctx, mock.MatchedBy(func(s *model.Subscriber) bool {
					return s.Source == " Landing Page "
				})).Return(activeSubscriber("a@b.com", " Landing Page "), nil)
			},
			wantOutcome: OutcomeCreated,
			wantSource:  " Landing Page ",
			wantNotify:  1,
		},
		{
			name: "active email is left unchanged",
			in:   SubscribeInput{Email: "a@b.com", Source: "footer"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				m.On("FindByEmail", ctx, "a@b.com").Return(activeSubscriber("a@b.com", "landing-page"), nil)
			},
			wantOutcome: OutcomeAlreadyActive,
			wantSource:  "landing-page",
			wantNotify:  1,
		},
		{
			name: "active email with interest adds it",
			in:   SubscribeInput{Email: "a@b.com", Source: "product-page", ProductInterest: "silk-scarf"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				existing := activeSubscriber("a@b.com", "landing-page")
				m.On("FindByEmail", ctx, "a@b.com").Return(existing, nil)
				m.On("AddProductInterest", ctx, existing.ID.Hex(), "silk-scarf", fixedNow).Return(nil)
			},
			wantOutcome: OutcomeAlreadyActive,
			wantSource:  "landing-page",
			wantNotify:  1,
		},
		{
			name: "unsubscribed email is reactivated with the new source",
			in:   SubscribeInput{Email: "a@b.com", Source: "footer"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				existing := activeSubscriber("a@b.com", "landing-page")
				existing.Status = model.SubscriberUnsubscribed
				reactivated := *existing
				reactivated.Status = model.SubscriberActive
				reactivated.Source = "footer"
				reactivated.SubscribedAt = fixedNow

				m.On("FindByEmail", ctx, "a@b.com").Return(existing, nil)
				m.On("Reactivate", ctx, existing.ID.Hex(), "footer", fixedNow).Return(&reactivated, nil)
			},
			wantOutcome: OutcomeReactivated,
			wantSource:  "footer",
			wantNotify:  1,
		},
		{
			name: "duplicate insert continues on the existing record",
			in:   SubscribeInput{Email: "a@b.com", Source: "landing-page"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				m.On("FindByEmail", ctx, "a@b.com").Return(nil, repository.ErrNotFound).Once()
				m.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
				m.On("FindByEmail", ctx, "a@b.com").Return(activeSubscriber("a@b.com", "landing-page"), nil).Once()
			},
			wantOutcome: OutcomeAlreadyActive,
			wantSource:  "landing-page",
			wantNotify:  1,
		},
		{
			name:       "invalid email touches nothing",
			in:         SubscribeInput{Email: "not-an-email", Source: "x"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {},
			wantErr:    ErrInvalidEmail,
		},
		{
			name: "lookup failure is wrapped",
			in:   SubscribeInput{Email: "a@b.com"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				m.On("FindByEmail", ctx, "a@b.com").Return(nil, errors.New("connection reset"))
			},
			wantErrMsg: "find subscriber: connection reset",
		},
		{
			name: "insert failure is wrapped",
			in:   SubscribeInput{Email: "a@b.com"},
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				m.On("FindByEmail", ctx, "a@b.com").Return(nil, repository.ErrNotFound)
				m.On("Create", ctx, mock.Anything).Return(nil, errors.New("not primary"))
			},
			wantErrMsg: "create subscriber: not primary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockSubscriberRepository)
			notifier := &recordingNotifier{}
			observer := &recordingObserver{}
			svc := NewSubscriberService(mRepo, lock.NewLocal(), notifier, observer, nil)

			tt.setupMocks(mRepo)

			res, err := svc.Subscribe(ctx, tt.in)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				assert.Empty(t, observer.outcomes)
			case tt.wantErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutcome, res.Outcome)
				assert.Equal(t, tt.wantSource, res.Subscriber.Source)
				assert.Equal(t, model.SubscriberActive, res.Subscriber.Status)
				assert.Equal(t, []string{string(tt.wantOutcome)}, observer.outcomes)
			}
			assert.Equal(t, tt.wantNotify, notifier.count())

			mRepo.AssertExpectations(t)
		})
	}
}

func TestSubscriberService_Subscribe_ActiveKeepsSubscribedAt(t *testing.T) {
	freezeTime(t)
	ctx := context.Background()

	existing := activeSubscriber("a@b.com", "landing-page")
	original := existing.SubscribedAt

	mRepo := new(repoMocks.MockSubscriberRepository)
	mRepo.On("FindByEmail", ctx, "a@b.com").Return(existing, nil)

	res, err := NewSubscriberService(mRepo, nil, &recordingNotifier{}, nil, nil).
		Subscribe(ctx, SubscribeInput{Email: "a@b.com", Source: "landing-page"})
	require.NoError(t, err)
	assert.Equal(t, original, res.Subscriber.SubscribedAt)

	mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mRepo.AssertNotCalled(t, "Reactivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mRepo.AssertNotCalled(t, "SetStatusByEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriberService_Subscribe_LockFailure(t *testing.T) {
	mRepo := new(repoMocks.MockSubscriberRepository)
	notifier := &recordingNotifier{}
	svc := NewSubscriberService(mRepo, failingLocker{err: lock.ErrTimeout}, notifier, nil, nil)

	_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "a@b.com"})
	assert.ErrorIs(t, err, lock.ErrTimeout)
	assert.Contains(t, err.Error(), "acquire subscriber lock")
	assert.Zero(t, notifier.count())
	mRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestSubscriberService_Unsubscribe(t *testing.T) {
	freezeTime(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		setupMocks func(m *repoMocks.MockSubscriberRepository)
		wantStatus model.SubscriberStatus
		wantErr    error
	}{
		{
			name:  "active becomes unsubscribed",
			email: "a@b.com",
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				updated := activeSubscriber("a@b.com", "landing-page")
				updated.Status = model.SubscriberUnsubscribed
				updated.UnsubscribedAt = &fixedNow
				m.On("FindByEmail", ctx, "a@b.com").Return(activeSubscriber("a@b.com", "landing-page"), nil)
				m.On("SetStatusByEmail", ctx, "a@b.com", model.SubscriberUnsubscribed, fixedNow).Return(updated, nil)
			},
			wantStatus: model.SubscriberUnsubscribed,
		},
		{
			name:  "already unsubscribed is a no-op",
			email: "a@b.com",
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				existing := activeSubscriber("a@b.com", "landing-page")
				existing.Status = model.SubscriberUnsubscribed
				m.On("FindByEmail", ctx, "a@b.com").Return(existing, nil)
			},
			wantStatus: model.SubscriberUnsubscribed,
		},
		{
			name:  "unknown email",
			email: "ghost@b.com",
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {
				m.On("FindByEmail", ctx, "ghost@b.com").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "invalid email",
			email:      "nope",
			setupMocks: func(m *repoMocks.MockSubscriberRepository) {},
			wantErr:    ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockSubscriberRepository)
			notifier := &recordingNotifier{}
			svc := NewSubscriberService(mRepo, nil, notifier, nil, nil)
			tt.setupMocks(mRepo)

			sub, err := svc.Unsubscribe(ctx, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantStatus, sub.Status)
			}
			assert.Zero(t, notifier.count(), "unsubscribe never sends email")
			mRepo.AssertExpectations(t)
		})
	}
}

func TestSubscriberService_Admin(t *testing.T) {
	freezeTime(t)
	ctx := context.Background()

	t.Run("list clamps paging", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubscriberRepository)
		mRepo.On("List", ctx, repository.SubscriberFilter{Status: model.SubscriberActive},
			repository.PageQuery{Limit: MaxLimit, Skip: 0}).
			Return(&repository.PageResult[model.Subscriber]{Total: 0}, nil)

		res, err := NewSubscriberService(mRepo, nil, &recordingNotifier{}, nil, nil).
			List(ctx, SubscriberListQuery{Status: model.SubscriberActive, Limit: 500, Skip: -3})
		require.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Equal(t, MaxLimit, res.Limit)
		mRepo.AssertExpectations(t)
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		_, err := NewSubscriberService(new(repoMocks.MockSubscriberRepository), nil, &recordingNotifier{}, nil, nil).
			List(ctx, SubscriberListQuery{Status: "pending"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("get invalid id is not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubscriberRepository)
		mRepo.On("FindByID", ctx, "xyz").Return(nil, repository.ErrInvalidID)

		_, err := NewSubscriberService(mRepo, nil, &recordingNotifier{}, nil, nil).Get(ctx, "xyz")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update validates status", func(t *testing.T) {
		bad := "paused"
		_, err := NewSubscriberService(new(repoMocks.MockSubscriberRepository), nil, &recordingNotifier{}, nil, nil).
			Update(ctx, primitive.NewObjectID().Hex(), SubscriberPatch{Status: &bad})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("update passes the typed status", func(t *testing.T) {
		id := primitive.NewObjectID().Hex()
		status := "unsubscribed"
		want := model.SubscriberUnsubscribed

		mRepo := new(repoMocks.MockSubscriberRepository)
		mRepo.On("Update", ctx, id, model.SubscriberUpdate{Status: &want}, fixedNow).
			Return(&model.Subscriber{Status: want}, nil)

		sub, err := NewSubscriberService(mRepo, nil, &recordingNotifier{}, nil, nil).
			Update(ctx, id, SubscriberPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, want, sub.Status)
		mRepo.AssertExpectations(t)
	})

	t.Run("delete missing", func(t *testing.T) {
		id := primitive.NewObjectID().Hex()
		mRepo := new(repoMocks.MockSubscriberRepository)
		mRepo.On("Delete", ctx, id).Return(repository.ErrNotFound)

		err := NewSubscriberService(mRepo, nil, &recordingNotifier{}, nil, nil).Delete(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("stats", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubscriberRepository)
		mRepo.On("CountByStatus", ctx).Return(map[model.SubscriberStatus]int64{
			model.SubscriberActive:       7,
			model.SubscriberUnsubscribed: 2,
		}, nil)

		stats, err := NewSubscriberService(mRepo, nil, &recordingNotifier{}, nil, nil).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &model.SubscriberStats{Total: 9, Active: 7, Unsubscribed: 2}, stats)
	})
}
