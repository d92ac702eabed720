package model

//go:generate go run github.com/dmarkham/enumer -type BillingCycle -trimprefix BillingCycle -transform lower -json -sql -output billing_cycle.gen.go
//go:generate go run github.com/dmarkham/enumer -type Currency -trimprefix Currency -transform upper -json -sql -output currency.gen.go
//go:generate go run github.com/dmarkham/enumer -type SubscriptionStatus -trimprefix SubscriptionStatus -transform lower -json -sql -output subscription_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type ReminderType -trimprefix ReminderType -transform snake -json -sql -output reminder_type.gen.go
//go:generate go run github.com/dmarkham/enumer -type ReminderStatus -trimprefix ReminderStatus -transform lower -json -sql -output reminder_status.gen.go

type BillingCycle int

const (
	BillingCycleWeekly BillingCycle = iota
	BillingCycleMonthly
	BillingCycleQuarterly
	BillingCycleYearly
)

type Currency int

const (
	CurrencyUSD Currency = iota
	CurrencyEUR
	CurrencyGBP
	CurrencyCAD
	CurrencyAUD
	CurrencyJPY
	CurrencyCHF
	CurrencySEK
	CurrencyNOK
	CurrencyDKK
)

type SubscriptionStatus int

const (
	SubscriptionStatusActive SubscriptionStatus = iota
	SubscriptionStatusCancelled
)

type ReminderType int

const (
	ReminderTypeEmail ReminderType = iota
	ReminderTypeInApp
)

type ReminderStatus int

const (
	ReminderStatusSent ReminderStatus = iota
	ReminderStatusFailed
	ReminderStatusSkipped
)

// LegacyCategories are the values accepted by the deprecated free-form
// subscription category. New clients use category_id.
var LegacyCategories = []string{"streaming", "software", "utilities", "gaming", "other"}
