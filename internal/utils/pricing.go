package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DateLayout   = "2006-01-02"
	millisPerDay = 86_400_000
)

// Quote is the computed rental duration and price for a date range.
type Quote struct {
	Days        int64 `json:"days"`
	TotalAmount int64 `json:"total_amount"`
}

// ParseDate converts a yyyy-mm-dd string into a UTC midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return nil, nil
	}
	t, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RentalDays counts both boundary dates: ceil(|end-start| / 1 day) + 1.
// Same day is 1 day; 2024-01-01..2024-01-03 is 3 days.
func RentalDays(start, end time.Time) int64 {
	diffMs := end.Sub(start).Milliseconds()
	if diffMs < 0 {
		diffMs = -diffMs
	}
	return int64(math.Ceil(float64(diffMs)/millisPerDay)) + 1
}

// CalculateQuote prices a range at the daily rate. Delivery is always free.
// A missing date yields a zero quote, never an error.
func CalculateQuote(start, end *time.Time, dailyRate int64) Quote {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return Quote{}
	}
	days := RentalDays(*start, *end)
	return Quote{Days: days, TotalAmount: days * dailyRate}
}

// PaymentDueAt is the end of the manual transfer window.
func PaymentDueAt(createdAt time.Time, window time.Duration) time.Time {
	return createdAt.Add(window)
}

// Today truncates now to a UTC date.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
