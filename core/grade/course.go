package grade

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Course is one row of a CGPA computation. An empty Grade means "not yet graded".
type Course struct {
	ID      string  `json:"id"`
	Credits Credits `json:"credits"`
	Grade   string  `json:"grade"`
}

// Graded reports whether the row carries a grade recognized by `s`.
func (c Course) Graded(s Scale) bool {
	return s.Recognized(c.Grade)
}

// Credits is a credit-hour weight. It decodes from JSON numbers & numeric strings;
// any other JSON value (null, bool, array, object, non-numeric or non-finite string) decodes to 0.
type Credits float64

func (c Credits) Float64() float64 { return float64(c) }

func (c Credits) Positive() bool { return c > 0 }

func (c *Credits) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*c = Credits(v)
	case string:
		*c = parseCredits(v)
	default:
		*c = 0
	}
	return nil
}

func parseCredits(raw string) Credits {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Credits(f)
}

// ParseCredits coerces a form value to Credits the way JSON decoding does.
func ParseCredits(raw string) Credits {
	return parseCredits(raw)
}
