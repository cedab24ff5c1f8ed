package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"

	"renting-scraper/feature/property/diff"
	"renting-scraper/feature/property/models"

	gomail "gopkg.in/gomail.v2"
)

const mailTemplate = `
  <h1>Recent Properties</h1>
  <br/>
  {{range .Diffs}}
    <h2><a href="{{.Entity.Link}}">{{.Entity.Description}} - EUR {{.Entity.Price}}</a></h2>
    <p><strong>{{.Type}}</strong>{{if .Relisted}} <em>(relisted)</em>{{end}}</p>
    <table>
      <tr>
        <td>Area:</td><td>{{deref .Entity.AreaInM3}}</td><td>{{newValue .Changes "areaInM3"}}</td>
        <td>Energy Certification:</td><td>{{deref .Entity.EnergyCertification}}</td><td>{{newValue .Changes "energyCertification"}}</td>
        <td>Location:</td><td>{{.Entity.Location}}</td><td>{{newValue .Changes "location"}}</td>
        <td>Price:</td><td>{{.Entity.Price}}</td><td>{{newValue .Changes "price"}}</td>
      </tr>
    </table>
  {{end}}
`

// Mailer renders a diff set and delivers it over SMTP.
type Mailer struct {
	cfg      Config
	tmpl     *template.Template
	sendFunc func(m *gomail.Message) error
}

// NewMailer creates a mailer from the given configuration.
func NewMailer(cfg Config) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &Mailer{
		cfg:      cfg,
		tmpl:     newTemplate(),
		sendFunc: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

func newTemplate() *template.Template {
	return template.Must(template.New("diff-mail").Funcs(template.FuncMap{
		// deref unwraps the nullable attributes for display.
		"deref": func(v any) any {
			switch p := v.(type) {
			case *float64:
				if p == nil {
					return ""
				}
				return *p
			case *string:
				if p == nil {
					return ""
				}
				return *p
			default:
				return v
			}
		},
		// newValue shows the incoming value of a changed attribute.
		"newValue": func(changes models.Changes, field string) any {
			change, ok := changes[field]
			if !ok || change.New == nil {
				return ""
			}
			return change.New
		},
	}).Parse(mailTemplate))
}

// Send renders the diff set, ordered for display, and mails it.
func (m *Mailer) Send(diffs []diff.Diff) error {
	body, err := m.Render(diffs)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.Recipient)
	msg.SetHeader("Subject", fmt.Sprintf("Properties Update - %s", time.Now().Format("2006-01-02 15:04")))
	msg.SetBody("text/html", body)

	if err := m.sendFunc(msg); err != nil {
		return fmt.Errorf("failed to send notification mail: %w", err)
	}
	return nil
}

// Render produces the HTML body for a diff set.
func (m *Mailer) Render(diffs []diff.Diff) (string, error) {
	sorted := SortForDisplay(diffs)

	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, struct{ Diffs []diff.Diff }{Diffs: sorted}); err != nil {
		return "", fmt.Errorf("failed to render notification mail: %w", err)
	}
	return buf.String(), nil
}

// SortForDisplay orders a diff set for presentation: by type, then
// location, then price. This is a display concern applied to a copy;
// the engine itself guarantees no ordering inside the groups.
func SortForDisplay(diffs []diff.Diff) []diff.Diff {
	sorted := make([]diff.Diff, len(diffs))
	copy(sorted, diffs)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		if sorted[i].Entity.Location != sorted[j].Entity.Location {
			return sorted[i].Entity.Location < sorted[j].Entity.Location
		}
		return sorted[i].Entity.Price < sorted[j].Entity.Price
	})
	return sorted
}
