// Package audit records security-relevant SubStack operations.
//
// Events are written as RFC5424 syslog lines to stdout and, when
// AUDIT_DATABASE_URL is set, persisted to the audit_messages table.
//
// # Event Types
//
//   - Authentication events (register, login success/failure)
//   - Subscription events (create, update, delete, restore, cancel, reactivate)
//   - Category events (create, update, delete)
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{
//	    Email:    "alice@example.com",
//	    ClientIP: "10.0.0.1",
//	    Success:  true,
//	})
//
// Logging can be switched off with SUBSTACK_AUDIT_ENABLED=false.
package audit
