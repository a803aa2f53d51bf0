package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"prelaunch/internal/config"
	"prelaunch/internal/email"
	"prelaunch/internal/metrics"
	"prelaunch/internal/model"
)

type fakeSender struct {
	mu      sync.Mutex
	sent    []email.Message
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, msg email.Message) (string, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "id-1", nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeComposer struct {
	err error
}

func (f fakeComposer) Welcome(to string) (email.Message, error) {
	if f.err != nil {
		return email.Message{}, f.err
	}
	return email.Message{To: to, Subject: "Welcome", HTML: "<p>hi</p>"}, nil
}

type fakeRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeRecorder() *fakeRecorder { return &fakeRecorder{counts: map[string]int{}} }

func (f *fakeRecorder) ObserveWelcome(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[result]++
}

func (f *fakeRecorder) get(result string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[result]
}

func testSubscriber() model.Subscriber {
	return model.Subscriber{ID: primitive.NewObjectID(), Email: "jane@example.com", Status: model.SubscriberActive}
}

func TestInline(t *testing.T) {
	tests := []struct {
		name     string
		sender   *fakeSender
		composer fakeComposer
		want     string
		wantLog  string
	}{
		{
			name:    "sent",
			sender:  &fakeSender{},
			want:    metrics.WelcomeSent,
			wantLog: "welcome_email_sent",
		},
		{
			name:    "provider failure is absorbed",
			sender:  &fakeSender{err: errors.New("provider down")},
			want:    metrics.WelcomeFailed,
			wantLog: "welcome_email_failed",
		},
		{
			name:     "render failure is absorbed",
			sender:   &fakeSender{},
			composer: fakeComposer{err: errors.New("bad template")},
			want:     metrics.WelcomeFailed,
			wantLog:  `"stage":"render"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := newFakeRecorder()
			n := NewInline(Options{
				Sender:   tt.sender,
				Composer: tt.composer,
				Recorder: rec,
				Log:      slog.New(slog.NewJSONHandler(&buf, nil)),
			})

			n.NotifyWelcome(context.Background(), testSubscriber())

			assert.Equal(t, 1, rec.get(tt.want))
			assert.Contains(t, buf.String(), tt.wantLog)
			assert.NoError(t, n.Close(context.Background()))
		})
	}
}

func TestInline_IgnoresRequestCancellation(t *testing.T) {
	sender := &fakeSender{}
	n := NewInline(Options{Sender: sender, Composer: fakeComposer{}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.NotifyWelcome(ctx, testSubscriber())

	assert.Equal(t, 1, sender.count())
}

func TestAsync_DeliversAndDrains(t *testing.T) {
	sender := &fakeSender{}
	rec := newFakeRecorder()
	a := NewAsync(Options{Sender: sender, Composer: fakeComposer{}, Recorder: rec}, 16, 2)

	for i := 0; i < 5; i++ {
		a.NotifyWelcome(context.Background(), testSubscriber())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Close(ctx))

	assert.Equal(t, 5, sender.count())
	assert.Equal(t, 5, rec.get(metrics.WelcomeSent))
}

func TestAsync_DropsWhenQueueFull(t *testing.T) {
	sender := &fakeSender{started: make(chan struct{}, 4), release: make(chan struct{})}
	rec := newFakeRecorder()
	var buf bytes.Buffer
	a := NewAsync(Options{
		Sender:   sender,
		Composer: fakeComposer{},
		Recorder: rec,
		Log:      slog.New(slog.NewJSONHandler(&buf, nil)),
	}, 1, 1)

	// First job occupies the only worker.
	a.NotifyWelcome(context.Background(), testSubscriber())
	<-sender.started

	// Second fills the queue, third has nowhere to go.
	a.NotifyWelcome(context.Background(), testSubscriber())
	a.NotifyWelcome(context.Background(), testSubscriber())

	assert.Equal(t, 1, rec.get(metrics.WelcomeDropped))
	assert.Contains(t, buf.String(), `"reason":"queue_full"`)

	close(sender.release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Close(ctx))
	assert.Equal(t, 2, sender.count())
}

func TestAsync_AfterClose(t *testing.T) {
	rec := newFakeRecorder()
	a := NewAsync(Options{Sender: &fakeSender{}, Composer: fakeComposer{}, Recorder: rec}, 4, 1)
	require.NoError(t, a.Close(context.Background()))
	require.NoError(t, a.Close(context.Background()))

	a.NotifyWelcome(context.Background(), testSubscriber())
	assert.Equal(t, 1, rec.get(metrics.WelcomeDropped))
}

func TestAsync_CloseHonoursDeadline(t *testing.T) {
	sender := &fakeSender{started: make(chan struct{}, 1), release: make(chan struct{})}
	a := NewAsync(Options{Sender: sender, Composer: fakeComposer{}}, 4, 1)
	defer close(sender.release)

	a.NotifyWelcome(context.Background(), testSubscriber())
	<-sender.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Close(ctx), context.DeadlineExceeded)
}

func TestNew(t *testing.T) {
	opts := Options{Sender: &fakeSender{}, Composer: fakeComposer{}}

	inline := New(config.NotifyConfig{Mode: "inline"}, opts)
	assert.IsType(t, &Inline{}, inline)

	async := New(config.NotifyConfig{Mode: "async", QueueSize: 2, Workers: 1, SendTimeout: time.Second}, opts)
	assert.IsType(t, &Async{}, async)
	assert.NoError(t, async.Close(context.Background()))
}
