package grade

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
)

// minSuggestRatio is the similarity needed for a grade to be suggested.
const minSuggestRatio = .5

var errInvalidCourses = errors.New("invalid courses")

// CheckGrades is the form-level check run before rows reach the engine:
// unknown grades & negative credits are rejected. The engine itself never rejects a row.
func (s Scale) CheckGrades(rows []Course) error {
	var flds []core.FieldError
	for i, row := range rows {
		if row.Grade != "" && !s.Recognized(row.Grade) {
			msg := fmt.Sprintf("unknown grade %q", row.Grade)
			if sugg := s.Suggest(row.Grade); sugg != "" {
				msg += fmt.Sprintf("; did you mean %q?", sugg)
			}
			flds = append(flds, core.FieldError{Field: fmt.Sprintf("courses[%d].grade", i), Error: msg})
		}
		if row.Credits < 0 {
			flds = append(flds, core.FieldError{Field: fmt.Sprintf("courses[%d].credits", i), Error: "credits cannot be negative"})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(errInvalidCourses, flds...)
	}
	return nil
}

// Suggest returns the grade of `s` closest to `grade`, or "" when none is similar enough.
func (s Scale) Suggest(grade string) string {
	norm := strings.ToUpper(strings.TrimSpace(grade))
	if norm == "" {
		return ""
	}
	if s.Recognized(norm) {
		return norm
	}

	var (
		best      string
		bestRatio float64
	)
	a := strings.Split(norm, "")
	for _, g := range s.order {
		ratio := difflib.NewMatcher(a, strings.Split(g, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = g, ratio
		}
	}
	if bestRatio < minSuggestRatio {
		return ""
	}
	return best
}
