package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/autoforge-api/pkg/mailer/templates"
)

// Sender delivers one rendered email. *Mailgun implements it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrBadJob marks a message that can never be delivered; it must not be requeued.
var ErrBadJob = errors.New("bad email job")

// Handle decodes a queued EmailJob, renders its template and sends it.
// Errors wrapping ErrBadJob are permanent; any other error is worth a retry.
func Handle(ctx context.Context, body []byte, sender Sender) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if err := job.Resolve(templates.Render); err != nil {
		return fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return fmt.Errorf("%w: empty message", ErrBadJob)
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return sender.Send(c, job.To, job.Subject, job.Text, job.HTML)
}
