// Package model defines the database models for SubStack.
//
// This package contains GORM models that map to the SubStack PostgreSQL
// schema created by the migrations under db/migrations.
//
// # Core Models
//
//   - User: an account holder and their notification preferences
//   - Category: a system or user-defined grouping for subscriptions
//   - Subscription: a recurring charge tracked by a user
//   - SubscriptionPriceHistory: the cost/currency/cycle periods of a subscription
//   - ReminderLog: a record of every renewal reminder attempt
//
// # Database Schema
//
//   - users: accounts, unique by email
//   - categories: system rows have a NULL user_id
//   - subscriptions: soft-deleted through deleted_at
//   - subscription_price_history: effective_to IS NULL marks the current row
//   - reminder_logs: deduplicated by (subscription_id, scheduled_for)
//
// Enumerations (BillingCycle, Currency, SubscriptionStatus, ReminderType and
// ReminderStatus) are generated with enumer and stored as text.
package model
