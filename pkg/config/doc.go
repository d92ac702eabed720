// Package config provides configuration management for SubStack.
//
// Settings are layered: built-in defaults, then the YAML file at
// $SUBSTACK_CONFIG_PATH/substack.yml, then SUBSTACK_* environment variables.
// Every attribute remembers which layer supplied its value.
//
// # Key Configuration Options
//
//   - SUBSTACK_JWT_SECRET: HMAC key for access tokens (required)
//   - SUBSTACK_ACCESS_TOKEN_TTL_MINUTES: access token lifetime
//   - SUBSTACK_RESEND_API_KEY: enables real email delivery
//   - SUBSTACK_ENABLE_SCHEDULER / SUBSTACK_REMINDER_CHECK_HOUR: daily reminder job
//   - SUBSTACK_REDIS_URL: optional lock for the reminder job
//   - SUBSTACK_LOG_LEVEL: logging verbosity
//
// The database connection string is read by package db from DATABASE_URL.
package config
