// Package dateutil parses post timestamps and formats them for display,
// either relative to a reference time or with a user-friendly format.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for date handling.
var (
	// ErrInvalidDateFormat indicates an invalid date format string.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidDate indicates a timestamp that cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// Relative selects relative formatting ("3 hours ago") in Format.
const Relative = "relative"

// CreatedAtLayout is the timestamp layout of the created_at field.
const CreatedAtLayout = time.RubyDate

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"datetime": "YYYY-MM-DD HH:mm",
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss
// Use brackets to escape literal text: [Date] preserves "Date" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10) // Pre-allocate with some buffer

	i := 0
	for i < len(format) {
		// Handle bracket-escaped literal text
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			// Copy content inside brackets literally
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2 // Skip past closing bracket
			continue
		}

		matched := false

		// Try to match tokens (longest first due to slice order)
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			// Preserve literal character
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// ParseCreatedAt parses a post timestamp. The platform layout
// ("Wed Oct 10 20:19:24 +0000 2018") is tried first, then RFC 3339.
func ParseCreatedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrInvalidDate)
	}
	if t, err := time.Parse(CreatedAtLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// Format renders t according to format:
//   - "relative" → Ago(t, now)
//   - a preset name (iso, european, us, long) → that preset
//   - anything else → a token format for ParseDateFormat
//
// Returns ErrInvalidDateFormat if the format cannot be parsed.
func Format(t, now time.Time, format string) (string, error) {
	if strings.EqualFold(format, Relative) {
		return Ago(t, now), nil
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	goFmt, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(goFmt), nil
}

// ValidateFormat checks that format is accepted by Format.
func ValidateFormat(format string) error {
	if strings.EqualFold(format, Relative) {
		return nil
	}
	if _, ok := DatePresets[strings.ToLower(format)]; ok {
		return nil
	}
	_, err := ParseDateFormat(format)
	return err
}

// relativeUnits are checked from largest to smallest.
var relativeUnits = []struct {
	name string
	size time.Duration
}{
	{"year", 365 * 24 * time.Hour},
	{"month", 30 * 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
	{"day", 24 * time.Hour},
	{"hour", time.Hour},
	{"minute", time.Minute},
	{"second", time.Second},
}

// Ago describes t relative to now in the largest whole unit:
// "just now", "5 minutes ago", "1 day ago", or "in 2 hours" for future times.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}
	if d < time.Second {
		return "just now"
	}

	for _, u := range relativeUnits {
		if d < u.size {
			continue
		}
		n := int64(d / u.size)
		unit := u.name
		if n != 1 {
			unit += "s"
		}
		if future {
			return fmt.Sprintf("in %d %s", n, unit)
		}
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return "just now"
}
