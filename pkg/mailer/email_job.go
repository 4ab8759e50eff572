package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Html is optional; Text is recommended as fallback.
// You can also use a template by specifying Template and Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// Resolve fills Subject/Text/HTML from the template when one is set.
func (j *EmailJob) Resolve(render func(name string, data any) (string, string, string, error)) error {
	if j.Template == "" {
		return nil
	}
	subject, text, html, err := render(j.Template, j.Data)
	if err != nil {
		return err
	}
	if j.Subject == "" {
		j.Subject = subject
	}
	j.Text, j.HTML = text, html
	return nil
}
