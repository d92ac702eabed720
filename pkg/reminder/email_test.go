package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

func TestRenewalSubject(t *testing.T) {
	assert.Equal(t, "Reminder: Netflix renews in 1 day", RenewalSubject("Netflix", 1))
	assert.Equal(t, "Reminder: Netflix renews in 0 days", RenewalSubject("Netflix", 0))
	assert.Equal(t, "Reminder: Netflix renews in 7 days", RenewalSubject("Netflix", 7))
}

func TestRenewalEmail(t *testing.T) {
	c := candidate(1, 3, 3, true)

	email, err := RenewalEmail(&c.User, &c.Subscription, 3)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email.To)
	assert.Equal(t, "Reminder: Netflix renews in 3 days", email.Subject)
	assert.Contains(t, email.HTML, "<h2>Subscription Renewal Reminder</h2>")
	assert.Contains(t, email.HTML, "<h3>Netflix</h3>")
	assert.Contains(t, email.HTML, "<strong>Amount:</strong> USD 15.99")
	assert.Contains(t, email.HTML, "<strong>Renewal Date:</strong> 2025-03-18")
}

func TestRenewalEmailDropsRawHTML(t *testing.T) {
	c := candidate(1, 3, 3, true)
	c.Subscription.Name = `<script>alert(1)</script>`
	c.Subscription.Currency = model.CurrencyEUR

	email, err := RenewalEmail(&c.User, &c.Subscription, 3)

	require.NoError(t, err)
	assert.NotContains(t, email.HTML, "<script>")
	assert.Contains(t, email.HTML, "EUR 15.99")
}
