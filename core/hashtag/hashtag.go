// Package hashtag converts event tags to and from their hashtag form:
//
//	#<category>_<name>_<DD-MM-YYYY>_<DD-MM-YYYY>
//
// The codec holds no state and is safe for concurrent use.
package hashtag

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
)

const (
	Prefix = "#"
	Sep    = "_"
)

// Tag is a category-tagged, time-bounded event.
// Start & End are calendar dates at midnight UTC (see Day); Start <= End.
type Tag struct {
	Category string
	Name     string
	Start    time.Time
	End      time.Time
}

// Encode renders `tag` in its canonical hashtag form.
// It fails with a *core.ValidationError when a field is missing or invalid.
func Encode(tag Tag) (string, error) {
	if err := tag.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(Prefix) + len(tag.Category) + len(tag.Name) + 2*10 + 3*len(Sep))
	b.WriteString(Prefix)
	b.WriteString(tag.Category)
	b.WriteString(Sep)
	b.WriteString(tag.Name)
	b.WriteString(Sep)
	b.WriteString(FormatDate(tag.Start))
	b.WriteString(Sep)
	b.WriteString(FormatDate(tag.End))
	return b.String(), nil
}

// Decode parses `text` (with or without the leading '#') into a Tag.
// It fails with a *FormatError and never returns a partial Tag.
func Decode(text string) (Tag, error) {
	body := strings.TrimPrefix(text, Prefix)

	segs := strings.Split(body, Sep)
	if len(segs) != 4 {
		return Tag{}, newFormatError(text, ErrSegmentCount)
	}
	if strings.TrimSpace(segs[0]) == "" {
		return Tag{}, newFormatError(text, ErrEmptyCategory)
	}
	if strings.TrimSpace(segs[1]) == "" {
		return Tag{}, newFormatError(text, ErrEmptyName)
	}

	start, err := ParseDate(segs[2])
	if err != nil {
		return Tag{}, err
	}
	end, err := ParseDate(segs[3])
	if err != nil {
		return Tag{}, err
	}
	if start.After(end) {
		return Tag{}, newFormatError(text, ErrStartAfterEnd)
	}

	return Tag{Category: segs[0], Name: segs[1], Start: start, End: end}, nil
}

// Validate checks that `tag` can be encoded and decoded back unchanged.
func (tag Tag) Validate() error {
	var flds []core.FieldError
	checkToken := func(field, val string) {
		switch {
		case strings.TrimSpace(val) == "":
			flds = append(flds, core.FieldError{Field: field, Error: "this field is required"})
		case strings.Contains(val, Sep):
			flds = append(flds, core.FieldError{Field: field, Error: "must not contain '" + Sep + "'"})
		}
	}
	checkDate := func(field string, val time.Time) {
		switch {
		case val.IsZero():
			flds = append(flds, core.FieldError{Field: field, Error: "this field is required"})
		case val.Year() < MinYear || val.Year() > MaxYear:
			flds = append(flds, core.FieldError{Field: field, Error: "year must be between 1900 and 2100"})
		case !val.Equal(Day(val)) || val.Location() != time.UTC:
			flds = append(flds, core.FieldError{Field: field, Error: "must be a calendar date (midnight UTC)"})
		}
	}

	checkToken("category", tag.Category)
	checkToken("name", tag.Name)
	checkDate("start_date", tag.Start)
	checkDate("end_date", tag.End)

	if len(flds) == 0 && compareDays(tag.Start, tag.End) > 0 {
		flds = append(flds, core.FieldError{Field: "end_date", Error: "must not be before start_date"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid event tag"), flds...)
	}
	return nil
}

// String returns the hashtag of `tag`, or "" when it cannot be encoded.
func (tag Tag) String() string {
	s, _ := Encode(tag)
	return s
}

// Overlaps reports whether the tag's days intersect [from, to]. A zero bound is open.
func (tag Tag) Overlaps(from, to time.Time) bool {
	if !from.IsZero() && compareDays(tag.End, from) < 0 {
		return false
	}
	if !to.IsZero() && compareDays(tag.Start, to) > 0 {
		return false
	}
	return true
}

// Days is the number of calendar days covered, both ends included.
func (tag Tag) Days() int {
	return int(Day(tag.End).Sub(Day(tag.Start)).Hours()/24) + 1
}

type tagJSON struct {
	Category  string `json:"category"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MarshalJSON renders dates as DD-MM-YYYY.
func (tag Tag) MarshalJSON() ([]byte, error) {
	tj := tagJSON{Category: tag.Category, Name: tag.Name}
	if !tag.Start.IsZero() {
		tj.StartDate = FormatDate(tag.Start)
	}
	if !tag.End.IsZero() {
		tj.EndDate = FormatDate(tag.End)
	}
	return json.Marshal(tj)
}

// UnmarshalJSON accepts DD-MM-YYYY dates; empty dates are left zero.
func (tag *Tag) UnmarshalJSON(data []byte) error {
	var tj tagJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return err
	}
	t := Tag{Category: tj.Category, Name: tj.Name}
	var err error
	if tj.StartDate != "" {
		if t.Start, err = ParseDate(tj.StartDate); err != nil {
			return err
		}
	}
	if tj.EndDate != "" {
		if t.End, err = ParseDate(tj.EndDate); err != nil {
			return err
		}
	}
	*tag = t
	return nil
}
