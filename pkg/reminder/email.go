package reminder

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/yuin/goldmark"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// Email is a rendered message ready for a Sender.
type Email struct {
	To      string
	Subject string
	HTML    string
}

var renewalTemplate = template.Must(template.New("renewal").Parse(`## Subscription Renewal Reminder

Hi there,

This is a friendly reminder that your subscription is coming up for renewal:

### {{.Name}}

- **Amount:** {{.Currency}} {{printf "%.2f" .Cost}}
- **Renewal Date:** {{.NextBillingDate}}
- **Days Until Renewal:** {{.Days}}

If you wish to cancel or modify this subscription, please do so before the renewal date.

*This email was sent by SubStack, your subscription tracker.*
`))

type renewalData struct {
	Name            string
	Currency        string
	Cost            float64
	NextBillingDate string
	Days            int
}

// RenewalSubject is the subject line of a renewal reminder.
func RenewalSubject(name string, days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("Reminder: %s renews in %d %s", name, days, unit)
}

// RenewalEmail renders the reminder for sub, renewing in days days, to user.
func RenewalEmail(user *model.User, sub *model.Subscription, days int) (Email, error) {
	var md bytes.Buffer
	err := renewalTemplate.Execute(&md, renewalData{
		Name:            sub.Name,
		Currency:        sub.Currency.String(),
		Cost:            sub.Cost,
		NextBillingDate: sub.NextBillingDate.String(),
		Days:            days,
	})
	if err != nil {
		return Email{}, err
	}

	var html bytes.Buffer
	if err := goldmark.Convert(md.Bytes(), &html); err != nil {
		return Email{}, fmt.Errorf("rendering email body: %w", err)
	}

	return Email{
		To:      user.Email,
		Subject: RenewalSubject(sub.Name, days),
		HTML:    html.String(),
	}, nil
}
