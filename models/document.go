package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a stored record exactly as the driver decoded it.
type Document = bson.M

// ISOLayout matches the millisecond precision ISO-8601 form the frontend expects.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// FormatISO renders t in UTC using ISOLayout.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// IDString renders any stored identifier as a string.
func IDString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case fmt.Stringer:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}

func stringField(doc Document, key string) string {
	switch v := doc[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case primitive.DateTime:
		return FormatISO(v.Time())
	case time.Time:
		return FormatISO(v)
	default:
		return fmt.Sprint(v)
	}
}

func stringList(v any) []string {
	items := anyList(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case nil:
		case string:
			out = append(out, s)
		default:
			out = append(out, fmt.Sprint(s))
		}
	}
	return out
}

func anyList(v any) []any {
	switch list := v.(type) {
	case primitive.A:
		return []any(list)
	case []any:
		return list
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

// plain converts driver specific values into types that encode cleanly to JSON.
func plain(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return FormatISO(t.Time())
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = plain(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = plain(val)
		}
		return m
	case primitive.A:
		return plainList(t)
	case []any:
		return plainList(t)
	default:
		return v
	}
}

func plainList(list []any) []any {
	if list == nil {
		return nil
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = plain(item)
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case primitive.M:
		return t, true
	case map[string]any:
		return t, true
	case primitive.D:
		return t.Map(), true
	}
	return nil, false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate accepts the date spellings found in stored records. Strings without
// a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseDateValue reads a stored date in any of its representations: native
// driver dates, strings, epoch milliseconds and the extended-JSON wrappers
// {"$date": ...} and {"$timestamp": ...}.
func ParseDateValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t.UTC(), !t.IsZero()
	case primitive.DateTime:
		return t.Time().UTC(), true
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC(), true
	case string:
		return ParseDate(t)
	case int64:
		return time.UnixMilli(t).UTC(), true
	case int32:
		return time.UnixMilli(int64(t)).UTC(), true
	case int:
		return time.UnixMilli(int64(t)).UTC(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(t)).UTC(), true
	}

	m, ok := asMap(v)
	if !ok {
		return time.Time{}, false
	}
	if inner, ok := m["$date"]; ok {
		if wrapped, ok := asMap(inner); ok {
			if n, ok := wrapped["$numberLong"].(string); ok {
				ms, err := strconv.ParseInt(n, 10, 64)
				if err != nil {
					return time.Time{}, false
				}
				return time.UnixMilli(ms).UTC(), true
			}
		}
		return ParseDateValue(inner)
	}
	if inner, ok := m["$timestamp"]; ok {
		if ts, ok := asMap(inner); ok {
			secs, ok := toInt64(ts["t"])
			if !ok {
				return time.Time{}, false
			}
			return time.Unix(secs, 0).UTC(), true
		}
		return ParseDateValue(inner)
	}
	return time.Time{}, false
}

// NormalizeDate always yields an ISO-8601 string, falling back to now.
func NormalizeDate(v any, now time.Time) string {
	if t, ok := ParseDateValue(v); ok {
		return FormatISO(t)
	}
	return FormatISO(now)
}

// NormalizeActive treats a record as active unless the flag is explicitly
// false, either as a boolean or as the string "false".
func NormalizeActive(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "false"
	default:
		return true
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
