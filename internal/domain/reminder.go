package domain

import (
	"fmt"
	"slices"
	"time"
)

// NotificationThresholds are the day offsets at which a reminder fires.
var NotificationThresholds = []int{7, 5, 3, 1, 0}

// LedgerDateLayout is the layout of the ledger's date field.
const LedgerDateLayout = "2006-01-02"

var examDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func IsThreshold(diffDays int) bool {
	return diffDays >= 0 && slices.Contains(NotificationThresholds, diffDays)
}

// ParseExamDate reads an exam start string. Values without a zone are taken
// as wall-clock time in loc.
func ParseExamDate(start string, loc *time.Location) (time.Time, error) {
	for _, layout := range examDateLayouts {
		if t, err := time.ParseInLocation(layout, start, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidExamDate, start)
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysUntil counts calendar days from today to the exam day. Both are
// reduced to their date in loc, so DST shifts never produce fractional days.
func DaysUntil(today, exam time.Time, loc *time.Location) int {
	ty, tm, td := today.In(loc).Date()
	ey, em, ed := exam.In(loc).Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// NotificationKey identifies a reminder for one exam at one offset. Exams
// sharing title and start collapse onto the same key.
func NotificationKey(title, start string, diffDays int) string {
	return fmt.Sprintf("%s-%s-D%d", title, start, diffDays)
}
