package valueobject

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcos-nsantos/photo-locations/internal/domain"
)

const DateLayout = "2006-01-02"

// DateRange is an inclusive capture-date filter. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange parses YYYY-MM-DD bounds; an empty string leaves that bound
// open. The end bound covers the whole day, up to 23:59:59.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange

	if s := strings.TrimSpace(start); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("start date %q: %w", s, domain.ErrMalformedDate)
		}
		r.Start = &t
	}

	if s := strings.TrimSpace(end); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("end date %q: %w", s, domain.ErrMalformedDate)
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		r.End = &t
	}

	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}

	return r, nil
}

func (r DateRange) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return domain.ErrInvalidRange
	}
	return nil
}

func (r DateRange) IsActive() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether t falls inside the range. t is normalized first so
// zoned and zone-less timestamps compare on the same wall clock.
func (r DateRange) Contains(t time.Time) bool {
	t = NormalizeTime(t)
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

func (r DateRange) String() string {
	format := func(t *time.Time) string {
		if t == nil {
			return "any"
		}
		return t.Format(DateLayout)
	}
	return fmt.Sprintf("%s to %s", format(r.Start), format(r.End))
}

// NormalizeTime drops the zone offset and keeps the wall-clock reading,
// re-expressed in UTC.
func NormalizeTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
