// Package audit records security-relevant events (sign-ins, ownership
// misses, rate limiting) as structured zap entries, separate from the
// application log.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type EventType string

const (
	EventSignInSuccess      EventType = "sign_in_success"
	EventSignInFailed       EventType = "sign_in_failed"
	EventGuestSignIn        EventType = "guest_sign_in"
	EventSignOut            EventType = "sign_out"
	EventOwnershipMiss      EventType = "ownership_miss"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventStaleGuestMarker   EventType = "stale_guest_marker"
)

type Event struct {
	Timestamp    time.Time              `json:"timestamp"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip", "account", "guest"
	SubjectValue string                 `json:"subject_value,omitempty"` // masked or hashed
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var defaultLogger *Logger

// Init builds the process-wide audit logger.
func Init(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		zl, _ = zap.NewProduction()
	}

	defaultLogger = New(zl, serviceName, environment)
	return defaultLogger
}

// New wraps an existing zap logger; tests pass an observer core here.
func New(zl *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: zl, serviceName: serviceName, environment: environment}
}

// Default returns the process logger, or a no-op logger before Init.
func Default() *Logger {
	if defaultLogger == nil {
		return New(zap.NewNop(), "job-tracker-backend", "development")
	}
	return defaultLogger
}

func (l *Logger) Log(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	level := zapcore.InfoLevel
	switch event.Event {
	case EventSignInFailed, EventRateLimitTriggered, EventStaleGuestMarker:
		level = zapcore.WarnLevel
	case EventOwnershipMiss:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("at", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

// SignIn records an OAuth sign-in outcome. reason is empty on success.
func (l *Logger) SignIn(ctx context.Context, email, ip, requestID, reason string) {
	event := Event{
		Event:        EventSignInSuccess,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
	}
	if reason != "" {
		event.Event = EventSignInFailed
		event.Details = map[string]interface{}{"reason": reason}
	}
	l.Log(ctx, event)
}

// OwnershipMiss records a mutation on an id the account does not own or
// that no longer exists.
func (l *Logger) OwnershipMiss(ctx context.Context, accountID, jobID, action string) {
	l.Log(ctx, Event{
		Event:        EventOwnershipMiss,
		SubjectType:  "account",
		SubjectValue: HashValue(accountID),
		Details:      map[string]interface{}{"job_id": jobID, "action": action},
	})
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 3 || at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue creates a short SHA256 digest of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
