package notifier

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/amishk599/interndigest/internal/model"
)

func testSMTPSender() *SMTPSender {
	return NewSMTPSender(SMTPConfig{
		Host:     "127.0.0.1",
		Port:     587,
		Username: "bot@example.com",
		Password: "secret",
		From:     "bot@example.com",
	}, discardLogger())
}

func TestSMTPSender_BuildMsg(t *testing.T) {
	s := testSMTPSender()
	msg := model.Message{
		Subject:    "Daily India Internships",
		HTMLBody:   "<p>hello</p>",
		TextBody:   "hello",
		Recipients: []string{"a@example.com", "b@example.com"},
	}

	m, err := s.buildMsg(msg)
	if err != nil {
		t.Fatalf("buildMsg() = %v", err)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Subject: Daily India Internships",
		"a@example.com",
		"b@example.com",
		"multipart/alternative",
		"text/plain",
		"text/html",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestSMTPSender_NoRecipients(t *testing.T) {
	s := testSMTPSender()
	err := s.Send(context.Background(), model.Message{Subject: "s", TextBody: "t"})
	if !errors.Is(err, errNoRecipients) {
		t.Errorf("Send() = %v, want errNoRecipients", err)
	}
}

func TestSMTPSender_InvalidFrom(t *testing.T) {
	s := testSMTPSender()
	s.cfg.From = "not an address"
	if _, err := s.buildMsg(model.Message{Recipients: []string{"a@example.com"}}); err == nil {
		t.Error("buildMsg() with bad from: expected error")
	}
}

func TestSMTPSender_UnreachableServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	s := NewSMTPSender(SMTPConfig{
		Host:     "127.0.0.1",
		Port:     port,
		Username: "u",
		Password: "p",
		From:     "bot@example.com",
		Timeout:  2 * time.Second,
	}, discardLogger())

	err = s.Send(context.Background(), model.Message{Subject: "s", TextBody: "t", Recipients: []string{"a@example.com"}})
	if err == nil {
		t.Fatal("Send() to closed port: expected error")
	}
}
