package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateOnly is a calendar date with no time component. It round-trips
// through JSON as "YYYY-MM-DD" and through the database as a DATE column.
type DateOnly struct {
	time.Time
}

func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return DateOnly{t}, nil
}

// Today returns the current calendar date in UTC.
func Today() DateOnly {
	return NewDateOnly(time.Now().UTC())
}

func (d DateOnly) String() string {
	return d.Format(dateLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: want a YYYY-MM-DD string", s)
	}
	parsed, err := ParseDateOnly(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateOnly) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

func (d *DateOnly) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		*d = NewDateOnly(v)
		return nil
	case string:
		parsed, err := ParseDateOnly(v[:min(len(v), len(dateLayout))])
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		*d = DateOnly{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}
