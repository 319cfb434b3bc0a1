package grade

// Summary holds the aggregate figures of a set of course rows.
type Summary struct {
	GPA          float64 `json:"gpa"`
	Completion   int     `json:"completion"` // % of rows with a recognized grade
	TotalCredits float64 `json:"total_credits"`
	Graded       int     `json:"graded"`
	Courses      int     `json:"courses"`
}

// ComputeGPA returns the credit-weighted average of grade points, rounded to 2 decimals.
// Rows without a recognized grade or without positive credits are skipped; 0 when nothing counts.
func (s Scale) ComputeGPA(rows []Course) float64 {
	var points, weight float64
	for _, row := range rows {
		pts, ok := s.Points(row.Grade)
		if !ok || !row.Credits.Positive() {
			continue
		}
		credits := row.Credits.Float64()
		points += float64(pts) * credits
		weight += credits
	}
	if weight == 0 {
		return 0
	}
	return round2(points / weight)
}

// CompletionPercentage returns the share of rows carrying a recognized grade, as an integer percent.
// Credits are not considered.
func (s Scale) CompletionPercentage(rows []Course) int {
	return percent(s.countGraded(rows), len(rows))
}

func (s Scale) countGraded(rows []Course) int {
	var n int
	for _, row := range rows {
		if row.Graded(s) {
			n++
		}
	}
	return n
}

// Summarize computes every figure in one call.
func (s Scale) Summarize(rows []Course) Summary {
	graded := s.countGraded(rows)
	return Summary{
		GPA:          s.ComputeGPA(rows),
		Completion:   percent(graded, len(rows)),
		TotalCredits: TotalCredits(rows),
		Graded:       graded,
		Courses:      len(rows),
	}
}

// TotalCredits sums the credits of every row, graded or not.
func TotalCredits(rows []Course) float64 {
	var total float64
	for _, row := range rows {
		total += row.Credits.Float64()
	}
	return total
}

var defaultScale = DefaultScale()

// ComputeGPA is DefaultScale().ComputeGPA.
func ComputeGPA(rows []Course) float64 { return defaultScale.ComputeGPA(rows) }

// CompletionPercentage is DefaultScale().CompletionPercentage.
func CompletionPercentage(rows []Course) int { return defaultScale.CompletionPercentage(rows) }

// Summarize is DefaultScale().Summarize.
func Summarize(rows []Course) Summary { return defaultScale.Summarize(rows) }
