package mailer

import (
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RetryHeader counts how many times a job has been republished after a failed send.
const RetryHeader = "x-retry-count"

// Outcome says what the consumer does with a delivery after Handle returns.
type Outcome int

const (
	Ack   Outcome = iota // delivered
	Drop                 // permanent failure, nack without requeue
	Retry                // republish with RetryHeader+1 after Backoff
)

// RetryPolicy bounds redelivery of jobs whose send failed.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 5, BaseDelay: 2 * time.Second, MaxDelay: time.Minute}
}

// Decide maps a Handle error and the delivery's retry count to an Outcome.
// Bad jobs and jobs past MaxRetries are dropped.
func (p RetryPolicy) Decide(err error, retries int) Outcome {
	switch {
	case err == nil:
		return Ack
	case errors.Is(err, ErrBadJob), retries >= p.MaxRetries:
		return Drop
	default:
		return Retry
	}
}

// Backoff doubles BaseDelay per prior retry, capped at MaxDelay.
func (p RetryPolicy) Backoff(retries int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < retries && d < p.MaxDelay; i++ {
		d *= 2
	}
	return min(d, p.MaxDelay)
}

// RetryCount reads RetryHeader. Missing or malformed values count as zero.
func RetryCount(h amqp.Table) int {
	switch v := h[RetryHeader].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return 0
	}
}

// WithRetry copies h and bumps RetryHeader.
func WithRetry(h amqp.Table, retries int) amqp.Table {
	out := amqp.Table{}
	for k, v := range h {
		out[k] = v
	}
	out[RetryHeader] = int32(retries + 1)
	return out
}
