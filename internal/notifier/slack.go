package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/amishk599/interndigest/internal/model"
	"github.com/amishk599/interndigest/internal/rank"
	"github.com/amishk599/interndigest/internal/report"
)

// Ensure SlackSender implements model.Sender.
var _ model.Sender = (*SlackSender)(nil)

// maxSlackPostings keeps a digest under Slack's 50-block message limit.
const maxSlackPostings = 20

// SlackSender posts the digest to a Slack channel via an Incoming Webhook.
type SlackSender struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackSender returns a sender that posts one Block Kit message per digest.
func NewSlackSender(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackSender {
	return &SlackSender{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send posts msg as a single webhook call. Failures are returned, not retried.
func (s *SlackSender) Send(ctx context.Context, msg model.Message) error {
	body, err := json.Marshal(buildPayload(msg))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}
	s.logger.Info("slack digest sent", "postings", len(msg.Postings))
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Fields   []slackText    `json:"fields,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string     `json:"type"`
	Text  *slackText `json:"text,omitempty"`
	URL   string     `json:"url,omitempty"`
	Style string     `json:"style,omitempty"`
}

func buildPayload(msg model.Message) slackPayload {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: truncate(msg.Subject, 150)},
		},
	}
	if line := report.SummaryLine(report.Summarize(msg.Postings)); line != "" {
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: line},
		})
	}
	blocks = append(blocks, slackBlock{Type: "divider"})

	shown := msg.Postings
	if len(shown) > maxSlackPostings {
		shown = shown[:maxSlackPostings]
	}
	for _, p := range shown {
		blocks = append(blocks,
			slackBlock{
				Type: "section",
				Text: &slackText{Type: "mrkdwn", Text: fmt.Sprintf("*%s*\n%s", p.Title, p.Company)},
				Fields: []slackText{
					{Type: "mrkdwn", Text: "*Location:*\n" + p.Location},
					{Type: "mrkdwn", Text: "*Stipend:*\n" + p.Compensation},
					{Type: "mrkdwn", Text: "*Posted:*\n" + p.PostedDate.Format("Jan 2, 2006")},
					{Type: "mrkdwn", Text: "*Source:*\n" + string(p.Source)},
				},
			},
			slackBlock{
				Type: "actions",
				Elements: []slackElement{
					{
						Type:  "button",
						Text:  &slackText{Type: "plain_text", Text: "Apply Now"},
						URL:   p.URL,
						Style: "primary",
					},
				},
			},
		)
	}
	if more := len(msg.Postings) - len(shown); more > 0 {
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: fmt.Sprintf("_…and %d more in the email digest_", more)},
		})
	}

	return slackPayload{Text: msg.Subject, Blocks: blocks}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// SendTestMessage sends a digest of the built-in sample postings to verify
// the delivery integration works.
func SendTestMessage(ctx context.Context, s model.Sender, recipients []string) error {
	now := time.Now()
	postings := rank.FallbackPostings(now)

	html, err := report.Render(postings, now)
	if err != nil {
		return err
	}
	return s.Send(ctx, model.Message{
		Subject:    report.Subject("interndigest test", now, len(postings)),
		HTMLBody:   html,
		TextBody:   report.RenderText(postings, now),
		Recipients: recipients,
		Postings:   postings,
	})
}
