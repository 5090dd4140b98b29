package service

import (
	"fmt"
	"time"

	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

const dateLayout = "2006-01-02"

// Window selects videos by publish time. A zero bound is open.
type Window struct {
	since time.Time
	until time.Time // exclusive
}

// RecentWindow accepts videos published at or after now-lookback.
func RecentWindow(now time.Time, lookback time.Duration) Window {
	return Window{since: now.Add(-lookback)}
}

// DateWindow accepts videos whose publish date in loc lies within
// [start, end], both inclusive. Either bound may be empty.
func DateWindow(start, end string, loc *time.Location) (Window, error) {
	var w Window
	if start != "" {
		t, err := time.ParseInLocation(dateLayout, start, loc)
		if err != nil {
			return Window{}, dateError("start", start, err)
		}
		w.since = t
	}
	if end != "" {
		t, err := time.ParseInLocation(dateLayout, end, loc)
		if err != nil {
			return Window{}, dateError("end", end, err)
		}
		w.until = t.AddDate(0, 0, 1)
	}
	if !w.since.IsZero() && !w.until.IsZero() && !w.since.Before(w.until) {
		return Window{}, oops.Code(errors.CodeConfig).
			With("start", start, "end", end).
			Wrap(fmt.Errorf("%w: start date is after end date", errors.ErrConfig))
	}
	return w, nil
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.since.IsZero() && t.Before(w.since) {
		return false
	}
	if !w.until.IsZero() && !t.Before(w.until) {
		return false
	}
	return true
}

func dateError(flag, value string, err error) error {
	return oops.Code(errors.CodeConfig).
		With(flag, value).
		Wrap(fmt.Errorf("%w: %s date must be YYYY-MM-DD: %w", errors.ErrConfig, flag, err))
}
