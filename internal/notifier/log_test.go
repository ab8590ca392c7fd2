package notifier

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/amishk599/interndigest/internal/model"
)

func TestLogSender_Send_emptyDigest(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := s.Send(context.Background(), model.Message{Subject: "empty"}); err != nil {
		t.Errorf("Send() = %v, want nil", err)
	}
	if !strings.Contains(buf.String(), "subject=empty") {
		t.Errorf("expected subject in log output, got %q", buf.String())
	}
}

func TestLogSender_Send_logsEachPosting(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))
	msg := model.Message{
		Subject:    "digest",
		Recipients: []string{"a@example.com"},
		Postings: []model.Posting{
			{Title: "Data Intern", Company: "Acme", URL: "https://example.com/1", Source: model.SourceLinkedIn},
			{Title: "Web Intern", Company: "Beta", URL: "https://example.com/2", Source: model.SourceNaukri},
		},
	}

	if err := s.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() = %v, want nil", err)
	}
	if c := strings.Count(buf.String(), "msg=posting"); c != 2 {
		t.Errorf("expected 2 posting lines, got %d:\n%s", c, buf.String())
	}
	if !strings.Contains(buf.String(), "source=Naukri.com") {
		t.Errorf("expected source attribute in output:\n%s", buf.String())
	}
}
