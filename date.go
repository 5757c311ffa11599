package tweet2html

import (
	"time"

	"github.com/alnah/go-tweet2html/internal/dateutil"
)

// DateFormatter turns a post creation time into display text.
type DateFormatter func(created time.Time) string

// FormatDate renders a created_at value for display.
//   - "relative" or "" → "5 minutes ago", "3 days ago", relative to now
//   - "iso", "european", "us", "long", "datetime" → the named preset
//   - anything else → a token format such as "DD/MM/YYYY [at] HH:mm"
//
// createdAt is the platform timestamp ("Wed Oct 10 20:19:24 +0000 2018")
// or RFC 3339. Absolute formats render in the timestamp's own zone.
func FormatDate(createdAt string, now time.Time, format string) (string, error) {
	t, err := dateutil.ParseCreatedAt(createdAt)
	if err != nil {
		return "", err
	}
	if format == "" {
		format = dateutil.Relative
	}
	return dateutil.Format(t, now, format)
}
