package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	logger := NewLogger()
	logger.SetWriter(buf)
	logger.hostname = "host1"
	logger.pid = 42
	logger.now = func() time.Time { return time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC) }
	return logger
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)

	logger.Log(AuthenticateEvent{
		Email:    "alice@example.com",
		ClientIP: "192.168.1.1",
		Success:  true,
	})

	want := `<86>1 2026-03-15T09:30:00.000Z host1 substack 42 authn ` +
		`[action@32473 operation="login" result="success"]` +
		`[auth@32473 authenticator="password" user="alice@example.com"]` +
		`[client@32473 ip="192.168.1.1"] ` +
		"alice@example.com successfully authenticated\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected line\n got: %q\nwant: %q", got, want)
	}
}

func TestLoggerMissingHostname(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)
	logger.hostname = ""

	logger.Log(AuthenticateEvent{Email: "a@example.com"})

	if !strings.Contains(buf.String(), "2026-03-15T09:30:00.000Z - substack") {
		t.Errorf("expected '-' hostname, got %q", buf.String())
	}
}

func TestAuthenticateEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   AuthenticateEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "successful authentication",
			event:   AuthenticateEvent{Email: "alice@example.com", ClientIP: "10.0.0.1", Success: true},
			wantMsg: "alice@example.com successfully authenticated",
			wantSev: SeverityInfo,
		},
		{
			name: "failed authentication",
			event: AuthenticateEvent{
				Email:        "alice@example.com",
				ClientIP:     "10.0.0.1",
				ErrorMessage: "invalid credentials",
			},
			wantMsg: "alice@example.com failed to authenticate: invalid credentials",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Message(); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.event.Severity(); got != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", got, tt.wantSev)
			}
			if got := tt.event.Facility(); got != FacilityAuthPriv {
				t.Errorf("Facility() = %v, want %v", got, FacilityAuthPriv)
			}
			if got := tt.event.MessageID(); got != "authn" {
				t.Errorf("MessageID() = %q, want authn", got)
			}
		})
	}
}

func TestRegisterEvent(t *testing.T) {
	ok := RegisterEvent{Email: "bob@example.com", UserID: 7, ClientIP: "10.0.0.2", Success: true}
	if got := ok.Message(); got != "bob@example.com registered as user 7" {
		t.Errorf("Message() = %q", got)
	}
	if got := ok.StructuredData()[SDIDSubject]["user_id"]; got != "7" {
		t.Errorf("user_id = %q, want 7", got)
	}

	failed := RegisterEvent{Email: "bob@example.com", ErrorMessage: "Email already registered"}
	if got := failed.Message(); got != "bob@example.com failed to register: Email already registered" {
		t.Errorf("Message() = %q", got)
	}
	if _, present := failed.StructuredData()[SDIDSubject]; present {
		t.Error("failed registration should not carry a subject")
	}
	if failed.Facility() != FacilityAuth {
		t.Errorf("Facility() = %d, want %d", failed.Facility(), FacilityAuth)
	}
}

func TestResourceEvent(t *testing.T) {
	tests := []struct {
		operation string
		success   bool
		want      string
	}{
		{OperationCreate, true, "user 3 created subscription 9"},
		{OperationUpdate, true, "user 3 updated subscription 9"},
		{OperationDelete, true, "user 3 deleted subscription 9"},
		{OperationRestore, true, "user 3 restored subscription 9"},
		{OperationCancel, true, "user 3 cancelled subscription 9"},
		{OperationReactivate, true, "user 3 reactivated subscription 9"},
		{OperationCancel, false, "user 3 tried to cancel subscription 9: Subscription is already cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			event := ResourceEvent{
				UserID:     3,
				Kind:       KindSubscription,
				ResourceID: 9,
				Operation:  tt.operation,
				Success:    tt.success,
			}
			if !tt.success {
				event.ErrorMessage = "Subscription is already cancelled"
			}
			if got := event.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
			if got := event.MessageID(); got != "subscription" {
				t.Errorf("MessageID() = %q", got)
			}
			sd := event.StructuredData()
			if sd[SDIDSubject]["subscription"] != "9" {
				t.Errorf("subject = %v", sd[SDIDSubject])
			}
			if sd[SDIDAction]["operation"] != tt.operation {
				t.Errorf("operation = %q", sd[SDIDAction]["operation"])
			}
		})
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{`with"quote`, `"with\"quote"`},
		{`with\backslash`, `"with\\backslash"`},
		{`with]bracket`, `"with\]bracket"`},
	}

	for _, tt := range tests {
		if got := escapeSDValue(tt.input); got != tt.want {
			t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatStructuredDataEmpty(t *testing.T) {
	if got := formatStructuredData(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	original := DefaultLogger
	DefaultLogger = fixedLogger(&buf)
	defer func() {
		DefaultLogger = original
		SetEnabled(true)
	}()

	SetEnabled(false)
	Log(AuthenticateEvent{Email: "a@example.com", Success: true})
	if buf.Len() != 0 {
		t.Errorf("expected no output when disabled, got %q", buf.String())
	}
}
