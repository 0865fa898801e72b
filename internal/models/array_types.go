package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Fields is a partial record keyed by canonical (camelCase) field names.
// It is what services hand to the record store on create and update.
type Fields map[string]interface{}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IDList is a custom type for handling BIGINT[] arrays in PostgreSQL
type IDList []int64

// Value implements the driver.Valuer interface
func (a IDList) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	return pq.Array([]int64(a)).Value()
}

// Scan implements the sql.Scanner interface
func (a *IDList) Scan(src interface{}) error {
	if src == nil {
		*a = IDList{}
		return nil
	}
	var ids pq.Int64Array
	if err := ids.Scan(src); err != nil {
		return err
	}
	*a = IDList(ids)
	if *a == nil {
		*a = IDList{}
	}
	return nil
}

// MarshalJSON always renders a list, never null.
func (a IDList) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int64(a))
}

// Contains reports whether id is already in the list.
func (a IDList) Contains(id int64) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day (DATE in PostgreSQL).
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements the driver.Valuer interface
func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements the sql.Scanner interface
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// Equal compares calendar dates.
func (d Date) Equal(o Date) bool {
	return d.String() == o.String()
}

// Before reports whether d falls on an earlier day than o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time) && !d.Equal(o)
}

// After reports whether d falls on a later day than o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time) && !d.Equal(o)
}

// Nights is the number of days between d and a later date.
func (d Date) Nights(until Date) int {
	return int(until.Time.Sub(d.Time).Hours() / 24)
}
