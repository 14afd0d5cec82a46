package model

import (
	"fmt"
	"strings"
	"time"
)

// DateTime is a calendar date with an optional wall-clock time, mirroring how
// the backend serializes schedule windows (date required, time optional).
type DateTime struct {
	Date string  `json:"date"`           // YYYY-MM-DD
	Time *string `json:"time,omitempty"` // HH:MM
}

func (dt DateTime) String() string {
	if dt.Time != nil && strings.TrimSpace(*dt.Time) != "" {
		return dt.Date + " " + *dt.Time
	}
	return dt.Date
}

// ParseDateTime accepts "YYYY-MM-DD" or "YYYY-MM-DD HH:MM".
func ParseDateTime(s string) (*DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Fields(s)
	if _, err := time.Parse("2006-01-02", parts[0]); err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", parts[0])
	}
	dt := &DateTime{Date: parts[0]}
	if len(parts) > 1 {
		if _, err := time.Parse("15:04", parts[1]); err != nil {
			return nil, fmt.Errorf("invalid time %q: want HH:MM", parts[1])
		}
		t := parts[1]
		dt.Time = &t
	}
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid datetime %q", s)
	}
	return dt, nil
}
