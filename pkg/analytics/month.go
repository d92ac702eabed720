package analytics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

var (
	ErrInvalidMonthFormat = errors.New("Invalid month format. Use YYYY-MM format.")
	ErrInvalidMonthValue  = errors.New("Invalid month value. Month must be between 01 and 12.")
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, ErrInvalidMonthFormat
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:7])
	if month < 1 || month > 12 {
		return Month{}, ErrInvalidMonthValue
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Range returns the first and last day of the month at midnight UTC.
func (m Month) Range() (start, end time.Time) {
	start = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// Add moves n months forward (or back when n is negative).
func (m Month) Add(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

func dateOf(t time.Time) time.Time {
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// WasActiveInMonth reports whether sub existed and was not yet deleted or
// cancelled at some point between start and end (inclusive dates).
func WasActiveInMonth(sub *model.Subscription, start, end time.Time) bool {
	if !sub.CreatedAt.IsZero() && dateOf(sub.CreatedAt).After(end) {
		return false
	}
	if sub.DeletedAt != nil && dateOf(*sub.DeletedAt).Before(start) {
		return false
	}
	if sub.IsCancelled() && sub.CancelledAt != nil && dateOf(*sub.CancelledAt).Before(start) {
		return false
	}
	return true
}
