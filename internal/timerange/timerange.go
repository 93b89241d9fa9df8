package timerange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidRange is returned when a range would not satisfy start < end.
var ErrInvalidRange = errors.New("timerange: start must be before end")

// TimeRange is a half-open interval [Start, End). Adjacent ranges
// (a.End == b.Start) do not overlap, so slots are back-to-back bookable.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start.UTC(), End: end.UTC()}, nil
}

// FromStart builds the range [start, start+d).
func FromStart(start time.Time, d time.Duration) (TimeRange, error) {
	return New(start, start.Add(d))
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// String renders the canonical wire form, e.g.
// [2024-02-17T10:00:00Z,2024-02-17T10:30:00Z)
func (r TimeRange) String() string {
	return "[" + r.Start.UTC().Format(time.RFC3339) + "," + r.End.UTC().Format(time.RFC3339) + ")"
}

// ======================================================
// WIRE FORMAT
// ======================================================

// Parse reads a bracketed pair of ISO-8601 instants. `[` / `]` are
// inclusive markers and `(` / `)` exclusive ones; since the model is
// half-open, other bound combinations are normalized at one-second
// resolution (instants on the wire carry no sub-second precision).
func Parse(s string) (TimeRange, error) {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	if len(s) < 2 {
		return TimeRange{}, fmt.Errorf("timerange: malformed range %q", s)
	}

	startMark := s[0]
	endMark := s[len(s)-1]
	if startMark != '[' && startMark != '(' {
		return TimeRange{}, fmt.Errorf("timerange: missing start bound in %q", s)
	}
	if endMark != ')' && endMark != ']' {
		return TimeRange{}, fmt.Errorf("timerange: missing end bound in %q", s)
	}

	inner := strings.ReplaceAll(s[1:len(s)-1], `"`, "")
	comma := strings.Index(inner, ",")
	if comma < 0 {
		return TimeRange{}, fmt.Errorf("timerange: missing separator in %q", s)
	}

	start, err := parseInstant(inner[:comma])
	if err != nil {
		return TimeRange{}, err
	}
	end, err := parseInstant(inner[comma+1:])
	if err != nil {
		return TimeRange{}, err
	}

	if startMark == '(' {
		start = start.Add(time.Second)
	}
	if endMark == ']' {
		end = end.Add(time.Second)
	}

	return New(start, end)
}

// ParseStart recovers only the start instant of a serialized range.
// The end may be absent (unbounded filter form, e.g. "[2024-02-17T10:00:00Z,)").
func ParseStart(s string) (time.Time, error) {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	s = strings.Trim(s, "[]()")
	if comma := strings.Index(s, ","); comma >= 0 {
		s = s[:comma]
	}
	return parseInstant(s)
}

func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timerange: bad instant %q: %w", s, err)
	}
	return t.UTC(), nil
}

// ======================================================
// JSON
// ======================================================

func (r TimeRange) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}

func (r *TimeRange) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
