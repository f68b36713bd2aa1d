package ledger

import (
	"fmt"
	"time"
)

// DateLayout parses both YYYY-M-D and YYYY-MM-DD.
const DateLayout = "2006-1-2"

// TimestampService validates block dates and measures their age against the local clock.
type TimestampService struct {
	now  func() time.Time
	sink EventSink
}

// NewTimestampService returns a service reading the given clock. A nil clock uses time.Now and a
// nil sink discards anomaly reports.
func NewTimestampService(now func() time.Time, sink EventSink) *TimestampService {
	if now == nil {
		now = time.Now
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &TimestampService{now: now, sink: sink}
}

// Today returns the current local date at midnight.
func (s *TimestampService) Today() time.Time {
	now := s.now().In(time.Local)
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// TodayString returns today's date as YYYY-M-D.
func (s *TimestampService) TodayString() string {
	return FormatDate(s.Today())
}

// FormatDate renders t as YYYY-M-D.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO-ish calendar date in the local zone.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, newError(KindInvalidDate, value)
	}
	return t, nil
}

// IsDateValid returns true, or an InvalidDate error when value is not a calendar date.
func (s *TimestampService) IsDateValid(value string) (bool, error) {
	if _, err := ParseDate(value); err != nil {
		return false, err
	}
	return true, nil
}

// DaysSince returns the number of whole days from value to today. Future dates give a negative
// result, which is reported to the sink as an anomaly and returned for the caller to reject.
func (s *TimestampService) DaysSince(value string) (float64, error) {
	days, err := s.daysSince(value)
	if err != nil {
		return 0, err
	}
	if days < 0 {
		s.sink.Emit(Event{
			Type:       EventTimestampAnomaly,
			OccurredAt: s.now(),
			Timestamp:  value,
			Message:    fmt.Sprintf("date is %d days in the future", -days),
		})
	}
	return float64(days), nil
}

// daysSince is DaysSince without the anomaly report.
func (s *TimestampService) daysSince(value string) (int64, error) {
	date, err := ParseDate(value)
	if err != nil {
		return 0, err
	}
	return civilDays(s.Today()) - civilDays(date), nil
}

// civilDays counts calendar days since the Unix epoch, ignoring zone offsets and DST.
func civilDays(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
