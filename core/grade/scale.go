// Package grade computes credit-weighted grade point averages and progress metrics
// over course rows. Every function is pure and safe for concurrent use.
package grade

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Entry maps a letter grade to its point value.
type Entry struct {
	Grade  string `json:"grade"`
	Points int    `json:"points"`
}

var defaultEntries = []Entry{
	{"O", 10}, {"A+", 9}, {"A", 8}, {"B+", 7}, {"B", 6},
	{"C+", 5}, {"C", 4}, {"D+", 3}, {"D", 2}, {"W", 1},
}

// Scale is an immutable grade-point table. The zero Scale recognizes no grade.
type Scale struct {
	points map[string]int
	order  []string // highest points first
}

// DefaultScale returns the 10-point table: O=10, A+=9, A=8, B+=7, B=6, C+=5, C=4, D+=3, D=2, W=1.
func DefaultScale() Scale {
	s, _ := NewScale(defaultEntries...)
	return s
}

// NewScale builds a Scale. Grades must be non-blank & unique, points positive.
func NewScale(entries ...Entry) (Scale, error) {
	if len(entries) == 0 {
		return Scale{}, errors.New("grade scale: no entries")
	}
	s := Scale{
		points: make(map[string]int, len(entries)),
		order:  make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		g := strings.TrimSpace(e.Grade)
		if g == "" {
			return Scale{}, errors.New("grade scale: blank grade")
		}
		if e.Points <= 0 {
			return Scale{}, errors.Errorf("grade scale: non-positive points for %q", g)
		}
		if _, dup := s.points[g]; dup {
			return Scale{}, errors.Errorf("grade scale: duplicate grade %q", g)
		}
		s.points[g] = e.Points
		s.order = append(s.order, g)
	}
	sort.SliceStable(s.order, func(i, j int) bool { return s.points[s.order[i]] > s.points[s.order[j]] })
	return s, nil
}

// ParseScale parses "O=10,A+=9,...". An empty string yields the DefaultScale.
func ParseScale(str string) (Scale, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return DefaultScale(), nil
	}
	parts := strings.Split(str, ",")
	entries := make([]Entry, 0, len(parts))
	for _, p := range parts {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return Scale{}, errors.Errorf("grade scale: malformed entry %q", p)
		}
		pts, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return Scale{}, errors.Wrapf(err, "grade scale: points of %q", kv[0])
		}
		entries = append(entries, Entry{Grade: strings.TrimSpace(kv[0]), Points: pts})
	}
	return NewScale(entries...)
}

// Points returns the point value of `grade`; ok is false for an empty or unknown grade.
func (s Scale) Points(grade string) (points int, ok bool) {
	if grade == "" {
		return 0, false
	}
	points, ok = s.points[grade]
	return points, ok
}

// Recognized reports whether `grade` is a key of the scale.
func (s Scale) Recognized(grade string) bool {
	_, ok := s.Points(grade)
	return ok
}

// Grades returns the grades, highest points first.
func (s Scale) Grades() []string {
	return append([]string(nil), s.order...)
}

func (s Scale) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, g := range s.order {
		entries = append(entries, Entry{Grade: g, Points: s.points[g]})
	}
	return entries
}

func (s Scale) Len() int { return len(s.order) }

func (s Scale) String() string {
	parts := make([]string, 0, len(s.order))
	for _, g := range s.order {
		parts = append(parts, g+"="+strconv.Itoa(s.points[g]))
	}
	return strings.Join(parts, ",")
}
