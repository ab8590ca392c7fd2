// Package report renders the internship digest as an HTML email body and a
// plain-text alternative.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/amishk599/interndigest/internal/model"
)

// SourceCount is one entry of the per-source summary line.
type SourceCount struct {
	Source model.Source
	Count  int
}

// Summarize counts postings per source in order of first appearance.
func Summarize(postings []model.Posting) []SourceCount {
	var out []SourceCount
	index := make(map[model.Source]int)
	for _, p := range postings {
		i, ok := index[p.Source]
		if !ok {
			i = len(out)
			index[p.Source] = i
			out = append(out, SourceCount{Source: p.Source})
		}
		out[i].Count++
	}
	return out
}

// SummaryLine formats counts as "LinkedIn: 3 | Internshala: 2".
func SummaryLine(counts []SourceCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s: %d", c.Source, c.Count)
	}
	return strings.Join(parts, " | ")
}

// Subject builds the email subject for a digest of n postings.
func Subject(prefix string, runDate time.Time, n int) string {
	return fmt.Sprintf("%s | %s | %d postings", prefix, runDate.Format("Jan 2, 2006"), n)
}

// Tips are printed at the bottom of every digest.
var Tips = []struct{ Title, Body string }{
	{"Apply Early", "Most internships are filled within 48 hours of posting"},
	{"Customize Resume", "Tailor your resume for each specific role and company"},
	{"Follow Up", "Send a polite follow-up email after 1 week if no response"},
	{"Research Company", "Show genuine interest by mentioning company-specific details"},
}

var badgeColors = map[model.Source]string{
	model.SourceLinkedIn:    "#0A66C2",
	model.SourceIndeed:      "#2164F3",
	model.SourceInternshala: "#00A5EC",
	model.SourceNaukri:      "#4A90E2",
	model.SourceFallback:    "#95A5A6",
}

const defaultBadgeColor = "#7F8C8D"

var digestTmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"badgeStyle": badgeStyle,
	"date":       func(t time.Time) string { return t.Format("2006-01-02") },
}).Parse(digestHTML))

type digestData struct {
	RunDate  string
	Count    int
	Summary  string
	Sources  string
	Postings []model.Posting
	Tips     []struct{ Title, Body string }
}

// Render produces the HTML digest for postings. The output depends only on
// postings and runDate.
func Render(postings []model.Posting, runDate time.Time) (string, error) {
	counts := Summarize(postings)
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = string(c.Source)
	}

	data := digestData{
		RunDate:  runDate.Format("January 02, 2006"),
		Count:    len(postings),
		Summary:  SummaryLine(counts),
		Sources:  strings.Join(names, ", "),
		Postings: postings,
		Tips:     Tips,
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}

// RenderText produces the plain-text alternative of the digest.
func RenderText(postings []model.Posting, runDate time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "India Internships Daily Digest\n%s | %d Fresh Opportunities\n", runDate.Format("January 02, 2006"), len(postings))
	if line := SummaryLine(Summarize(postings)); line != "" {
		fmt.Fprintf(&b, "%s\n", line)
	}
	for i, p := range postings {
		fmt.Fprintf(&b, "\n%d. %s - %s [%s]\n", i+1, p.Title, p.Company, p.Source)
		fmt.Fprintf(&b, "   %s | %s | %s\n", p.Location, p.PostedDate.Format("2006-01-02"), p.Compensation)
		fmt.Fprintf(&b, "   %s\n", p.URL)
	}
	b.WriteString("\nApplication Tips\n")
	for _, t := range Tips {
		fmt.Fprintf(&b, "- %s: %s\n", t.Title, t.Body)
	}
	return b.String()
}

func badgeStyle(src model.Source) template.CSS {
	color, ok := badgeColors[src]
	if !ok {
		color = defaultBadgeColor
	}
	return template.CSS("background-color: " + color + "; color: white; padding: 3px 8px; border-radius: 10px; font-size: 11px; white-space: nowrap;")
}

const digestHTML = `<html>
<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f8f9fa; margin: 0; padding: 20px;">
<div style="max-width: 900px; margin: 0 auto; background-color: white; border-radius: 15px; box-shadow: 0 4px 20px rgba(0,0,0,0.1); overflow: hidden;">
  <div style="background: linear-gradient(135deg, #2E86C1, #3498DB); color: white; padding: 30px; text-align: center;">
    <h1 style="margin: 0; font-size: 28px; font-weight: 300;">India Internships Daily Digest</h1>
    <p style="margin: 10px 0 0 0; opacity: 0.9; font-size: 16px;">{{.RunDate}} | {{.Count}} Fresh Opportunities</p>
  </div>
  <div style="padding: 20px; background-color: #ECF0F1; text-align: center;">
    <p style="margin: 0; color: #34495E; font-size: 14px;">{{.Summary}}</p>
  </div>
  <div style="padding: 0; overflow-x: auto;">
    <table style="width: 100%; border-collapse: collapse; font-size: 14px;">
      <thead>
        <tr style="background-color: #34495E; color: white;">
          <th style="padding: 15px; text-align: left; font-weight: 600;">Position</th>
          <th style="padding: 15px; text-align: left; font-weight: 600;">Company</th>
          <th style="padding: 15px; text-align: left; font-weight: 600;">Location</th>
          <th style="padding: 15px; text-align: left; font-weight: 600;">Date</th>
          <th style="padding: 15px; text-align: left; font-weight: 600;">Stipend</th>
          <th style="padding: 15px; text-align: left; font-weight: 600;">Source</th>
          <th style="padding: 15px; text-align: center; font-weight: 600;">Apply</th>
        </tr>
      </thead>
      <tbody>
{{- range .Postings}}
        <tr style="border-bottom: 1px solid #eee;">
          <td style="padding: 12px; font-weight: bold; color: #2E86C1;">{{.Title}}</td>
          <td style="padding: 12px;">{{.Company}}</td>
          <td style="padding: 12px;">{{.Location}}</td>
          <td style="padding: 12px;">{{date .PostedDate}}</td>
          <td style="padding: 12px; color: #27AE60;">{{.Compensation}}</td>
          <td style="padding: 12px;"><span style="{{badgeStyle .Source}}">{{.Source}}</span></td>
          <td style="padding: 12px; text-align: center;"><a href="{{.URL}}" target="_blank" style="background-color: #2E86C1; color: white; padding: 8px 12px; text-decoration: none; border-radius: 4px; font-size: 12px;">Apply Now</a></td>
        </tr>
{{- end}}
      </tbody>
    </table>
  </div>
  <div style="background-color: #E8F6FF; padding: 25px; margin: 20px;">
    <h3 style="color: #2E86C1; margin: 0 0 15px 0; font-size: 18px;">Application Tips</h3>
    <ul style="color: #34495E; margin: 0; padding-left: 20px; line-height: 1.6;">
{{- range .Tips}}
      <li><strong>{{.Title}}:</strong> {{.Body}}</li>
{{- end}}
    </ul>
  </div>
  <div style="text-align: center; padding: 25px; background-color: #2C3E50; color: white;">
    <p style="margin: 0; font-size: 13px; opacity: 0.8;">Data from {{.Sources}}<br>Best of luck with your applications! | Next update in 24 hours</p>
  </div>
</div>
</body>
</html>
`
