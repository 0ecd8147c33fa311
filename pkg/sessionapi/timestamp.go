package sessionapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Timestamp decodes the encodings the server has used for times: RFC3339
// strings (canonical), naive ISO strings (read as UTC), RFC1123 HTTP dates,
// epoch milliseconds, and Mongo extended JSON {"$date": ...}. JSON null
// and values in no known encoding yield the zero time, so one odd row does
// not fail a whole response.
type Timestamp struct {
	time.Time
}

// naive layouts carry no zone and are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	parsed, err := parseTimestamp(gjson.ParseBytes(data))
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring unparseable timestamp")
		parsed = time.Time{}
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes the canonical RFC3339 UTC form, or null when zero.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339Nano))), nil
}

func parseTimestamp(r gjson.Result) (time.Time, error) {
	switch r.Type {
	case gjson.Null:
		return time.Time{}, nil
	case gjson.Number:
		return time.UnixMilli(r.Int()).UTC(), nil
	case gjson.String:
		return ParseTime(r.Str)
	case gjson.JSON:
		if r.IsObject() {
			fields := r.Map()
			if date, ok := fields["$date"]; ok {
				return parseTimestamp(date)
			}
			if n, ok := fields["$numberLong"]; ok {
				ms, err := strconv.ParseInt(n.String(), 10, 64)
				if err != nil {
					return time.Time{}, fmt.Errorf("invalid $numberLong %q: %w", n.String(), err)
				}
				return time.UnixMilli(ms).UTC(), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp encoding: %s", r.Raw)
}

// ParseTime parses a timestamp string in any of the accepted layouts.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
