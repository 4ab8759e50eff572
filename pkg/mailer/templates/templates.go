package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names
const (
	Welcome = "welcome"
)

// EmailData defines standard fields for email templates.
type EmailData struct {
	Name        string    `json:"Name"`
	Email       string    `json:"Email"`
	Role        string    `json:"Role"`
	CompanyName string    `json:"CompanyName"`
	AppName     string    `json:"AppName"`
	SupportURL  string    `json:"SupportURL"`
	LoginURL    string    `json:"LoginURL"`
	Time        string    `json:"Time"`
	TimeAt      time.Time `json:"TimeAt"`
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithLoginURL(url string) Option   { return func(d *EmailData) { d.LoginURL = url } }
func WithSupportURL(url string) Option { return func(d *EmailData) { d.SupportURL = url } }

// NewWelcomeData builds the payload of the post-registration email.
func NewWelcomeData(appName, companyName, name, email, role string, opts ...Option) EmailData {
	d := EmailData{
		Name:        name,
		Email:       email,
		Role:        role,
		CompanyName: companyName,
		AppName:     appName,
	}
	for _, o := range opts {
		o(&d)
	}
	return d
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{"default": defaultFn}
}

var (
	parseOnce sync.Once
	parseErr  error
	textSet   *texttpl.Template
	htmlSet   *htmpl.Template
)

// parse loads every embedded template once. Text and subject files share the
// text/template set; html files are parsed with html/template for escaping.
func parse() error {
	parseOnce.Do(func() {
		textSet, parseErr = texttpl.New("text").Funcs(texttpl.FuncMap(baseFuncs())).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parse text templates: %w", parseErr)
			return
		}
		htmlSet, parseErr = htmpl.New("html").Funcs(htmpl.FuncMap(baseFuncs())).ParseFS(FS, "*.html.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parse html templates: %w", parseErr)
		}
	})
	return parseErr
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(set executor, file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, file, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", file, err)
	}
	return buf.String(), nil
}

// Render renders <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
// An unknown name is an error.
func Render(name string, data any) (subject, text, html string, err error) {
	if err = parse(); err != nil {
		return "", "", "", err
	}
	if subject, err = execute(textSet, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(textSet, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(htmlSet, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
