package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/autoforge-api/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	msgs []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.msgs = append(f.msgs, sent{to, subject, text, html})
	return f.err
}

func encode(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandle_WelcomeTemplate(t *testing.T) {
	data := templates.NewWelcomeData("AutoForge", "AutoForge Inc", "Jane", "jane@example.com", "client",
		templates.WithTime(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
		templates.WithLoginURL("https://app.example.com/login"),
	)
	body := encode(t, EmailJob{To: " jane@example.com ", Template: templates.Welcome, Data: templates.ToMap(data)})
	s := &fakeSender{}

	require.NoError(t, Handle(context.Background(), body, s))
	require.Len(t, s.msgs, 1)
	m := s.msgs[0]
	assert.Equal(t, "jane@example.com", m.to)
	assert.Equal(t, "Welcome to AutoForge Inc, Jane", m.subject)
	assert.Contains(t, m.text, "Jane")
	assert.Contains(t, m.html, "Jane")
}

func TestHandle_PlainJob(t *testing.T) {
	s := &fakeSender{}
	body := encode(t, EmailJob{To: "jane@example.com", Subject: "Hi", Text: "hello"})

	require.NoError(t, Handle(context.Background(), body, s))
	assert.Equal(t, sent{"jane@example.com", "Hi", "hello", ""}, s.msgs[0])
}

func TestHandle_BadJobs(t *testing.T) {
	cases := map[string][]byte{
		"not json":         []byte("{"),
		"no recipient":     encode(t, EmailJob{Subject: "Hi", Text: "hello"}),
		"unknown template": encode(t, EmailJob{To: "jane@example.com", Template: "nope"}),
		"empty message":    encode(t, EmailJob{To: "jane@example.com"}),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			s := &fakeSender{}
			err := Handle(context.Background(), body, s)
			assert.ErrorIs(t, err, ErrBadJob)
			assert.Empty(t, s.msgs)
		})
	}
}

func TestHandle_SendFailureIsRetryable(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun 502")}
	err := Handle(context.Background(), encode(t, EmailJob{To: "jane@example.com", Subject: "Hi", Text: "hello"}), s)

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBadJob))
}

func TestRetryPolicy_Decide(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	sendErr := errors.New("mailgun: 401 unauthorized")

	assert.Equal(t, Ack, p.Decide(nil, 0))
	assert.Equal(t, Drop, p.Decide(fmt.Errorf("%w: missing recipient", ErrBadJob), 0))
	assert.Equal(t, Retry, p.Decide(sendErr, 0))
	assert.Equal(t, Retry, p.Decide(sendErr, 2))
	assert.Equal(t, Drop, p.Decide(sendErr, 3), "a permanently failing send stops being redelivered")
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := RetryPolicy{MaxRetries: 10, BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, p.Backoff(0))
	assert.Equal(t, 2*time.Second, p.Backoff(1))
	assert.Equal(t, 4*time.Second, p.Backoff(2))
	assert.Equal(t, 5*time.Second, p.Backoff(3))
	assert.Equal(t, 5*time.Second, p.Backoff(50))
}

func TestRetryHeaders(t *testing.T) {
	assert.Zero(t, RetryCount(nil))
	assert.Zero(t, RetryCount(amqp.Table{RetryHeader: "two"}))
	assert.Equal(t, 4, RetryCount(amqp.Table{RetryHeader: int64(4)}))

	orig := amqp.Table{"x-trace": "abc"}
	next := WithRetry(orig, RetryCount(orig))
	assert.Equal(t, 1, RetryCount(next))
	assert.Equal(t, "abc", next["x-trace"])
	assert.NotContains(t, orig, RetryHeader)

	assert.Equal(t, 2, RetryCount(WithRetry(next, RetryCount(next))))
}
