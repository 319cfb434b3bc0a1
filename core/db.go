package core

import "strings"

type DBOrdering struct {
	Field     string
	Ascending bool
}

// ParseOrdering parses "field" (ascending) or "-field" (descending).
// Fields outside `allowed` yield ok=false.
func ParseOrdering(s string, allowed ...string) (ord DBOrdering, ok bool) {
	s = CleanString(s, true /* lower */)
	ord.Ascending = true
	if strings.HasPrefix(s, "-") {
		ord.Ascending = false
		s = s[1:]
	}
	for _, fld := range allowed {
		if s == fld {
			ord.Field = fld
			return ord, true
		}
	}
	return DBOrdering{}, false
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
