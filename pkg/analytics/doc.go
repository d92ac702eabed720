// Package analytics computes the spending reports served under
// /subscriptions: currency totals, monthly costs, trends, rankings,
// forgotten subscriptions, savings and savings suggestions.
//
// Every function is pure. Callers load the subscriptions and pass the
// reference time explicitly, which keeps the reports reproducible in tests.
// Amounts are never converted between currencies; each report is grouped
// by currency and sorted by currency code.
package analytics
