package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shanehull/corpactions/internal/ai"
	"github.com/shanehull/corpactions/internal/pipeline"
)

// RenderedMessage is a subject with text and HTML bodies.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// CompanyDigest is one company's section of the digest.
type CompanyDigest struct {
	pipeline.Result
	Analysis *ai.Analysis
}

type DigestData struct {
	GeneratedAt time.Time
	Range       string
	Companies   []CompanyDigest
}

func (d DigestData) Total() int {
	n := 0
	for _, c := range d.Companies {
		n += len(c.Records)
	}
	return n
}

// HTMLEmailRenderer renders digests as HTML emails with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("digest").Parse(digestHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

func (r *HTMLEmailRenderer) Render(data DigestData) (*RenderedMessage, error) {
	subject := fmt.Sprintf("Corporate Actions: %d announcement(s), %d compan%s (%s)",
		data.Total(),
		len(data.Companies),
		plural(len(data.Companies), "y", "ies"),
		data.GeneratedAt.Format("02 Jan 2006"),
	)

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

func renderPlainText(data DigestData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Corporate Actions - %s\n", data.GeneratedAt.Format("02 Jan 2006")))
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	sb.WriteString(fmt.Sprintf("Range: %s\n\n", data.Range))

	for _, c := range data.Companies {
		sb.WriteString(fmt.Sprintf("%s (%s)\n", c.Company.Name, c.Company.Code))
		sb.WriteString(strings.Repeat("-", 20) + "\n")

		if c.Warning != "" {
			sb.WriteString(fmt.Sprintf("Warning: %s\n", c.Warning))
		}
		if len(c.Records) == 0 && c.Warning == "" {
			sb.WriteString("No announcements.\n")
		}
		for _, a := range c.Records {
			sb.WriteString(fmt.Sprintf("• %s  %s\n", a.Date, a.Description))
			if a.AttachmentURL != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", a.AttachmentURL))
			}
		}

		if c.Analysis != nil {
			if len(c.Analysis.Summary) > 0 {
				sb.WriteString("\nAI SUMMARY\n")
				for _, s := range c.Analysis.Summary {
					sb.WriteString(fmt.Sprintf("• %s\n", s))
				}
			}
			if len(c.Analysis.Actions) > 0 {
				sb.WriteString("\nCORPORATE ACTIONS\n")
				for _, act := range c.Analysis.Actions {
					sb.WriteString(fmt.Sprintf("• [%s] %s\n", act.Category, act.Details))
				}
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
