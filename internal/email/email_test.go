package email

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestBuildMessage_PlainText(t *testing.T) {
	msg := buildMessage("noreply@example.com", "Auth", Message{
		To:      "a@x.com",
		Subject: "Password Reset OTP",
		Text:    "code 123456",
	})
	if !strings.Contains(msg, "From: Auth <noreply@example.com>\r\n") {
		t.Fatalf("expected named from header, got %q", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/plain") {
		t.Fatalf("expected text/plain, got %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\ncode 123456") {
		t.Fatalf("expected body after blank line, got %q", msg)
	}
}

func TestBuildMessage_PrefersHTML(t *testing.T) {
	msg := buildMessage("noreply@example.com", "", Message{
		To:   "a@x.com",
		Text: "plain",
		HTML: "<p>rich</p>",
	})
	if !strings.Contains(msg, "From: noreply@example.com\r\n") {
		t.Fatalf("expected bare from header, got %q", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/html") || !strings.HasSuffix(msg, "<p>rich</p>") {
		t.Fatalf("expected html body, got %q", msg)
	}
}

func TestNewSMTPSender_Validates(t *testing.T) {
	if _, err := NewSMTPSender("", 587, "", "", "from@x.com", "", false); err == nil {
		t.Fatalf("expected error for empty host")
	}
	if _, err := NewSMTPSender("smtp.x.com", 587, "", "", " ", "", false); err == nil {
		t.Fatalf("expected error for empty from")
	}
	s, err := NewSMTPSender("smtp.x.com", 0, "", "", "from@x.com", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.port != 587 {
		t.Fatalf("expected default port 587, got %d", s.port)
	}
}

func TestSMTPSender_RequiresRecipient(t *testing.T) {
	s, err := NewSMTPSender("smtp.x.com", 587, "", "", "from@x.com", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Send(context.Background(), Message{Subject: "x"}); err == nil {
		t.Fatalf("expected error for missing recipient")
	}
}

func TestDisabledSender(t *testing.T) {
	err := NewDisabledSender("not configured").Send(context.Background(), Message{To: "a@x.com"})
	if err == nil || err.Error() != "not configured" {
		t.Fatalf("expected reason as error, got %v", err)
	}
	if err := NewDisabledSender("").Send(context.Background(), Message{}); err == nil {
		t.Fatalf("expected default error")
	}
}

func TestTemplates(t *testing.T) {
	w := WelcomeMessage("a@x.com", "<alice>")
	if w.To != "a@x.com" || w.Subject != "Account Successfully Created" {
		t.Fatalf("unexpected welcome: %+v", w)
	}
	if !strings.Contains(w.HTML, "&lt;alice&gt;") {
		t.Fatalf("expected escaped username, got %q", w.HTML)
	}

	v := VerificationOTPMessage("a@x.com", "alice", "123456", 10*time.Minute)
	if !strings.Contains(v.Text, "123456") || !strings.Contains(v.Text, "10 minutes") {
		t.Fatalf("unexpected verification body: %q", v.Text)
	}

	r := ResetOTPMessage("a@x.com", "654321", 10*time.Minute)
	if r.Subject != "Password Reset OTP" || !strings.Contains(r.Text, "654321") {
		t.Fatalf("unexpected reset message: %+v", r)
	}
}
