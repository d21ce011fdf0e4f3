// Package ranking computes averages, rankings and subject aggregates over
// student records. Every function is pure: no I/O and no shared state.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/model"
)

var (
	// ErrNoScores is returned when an average is requested for a student
	// without any recorded scores.
	ErrNoScores = fmt.Errorf("%w: student has no scores", apperrors.ErrValidation)
	// ErrInvalidScore is returned for NaN or infinite score values.
	ErrInvalidScore = fmt.Errorf("%w: score is not a finite number", apperrors.ErrValidation)
	// ErrInvalidLimit is returned by TopN for a negative n.
	ErrInvalidLimit = fmt.Errorf("%w: n must be a non-negative integer", apperrors.ErrValidation)
	// ErrInvalidThreshold is returned by BelowThreshold for a NaN threshold.
	ErrInvalidThreshold = fmt.Errorf("%w: threshold must be a number", apperrors.ErrValidation)
)

// Ranked is a student's position in a descending-average ranking.
type Ranked struct {
	Rank         int     `json:"rank"`
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	AverageScore float64 `json:"averageScore"`
}

// FullEntry is a Ranked entry that also carries the student's scores.
type FullEntry struct {
	Ranked
	Scores []model.Score `json:"scores"`
}

// SubjectAverage is the global mean for one subject.
type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
}

type scoredStudent struct {
	student model.Student
	average float64
}

// AverageScore returns the arithmetic mean of the student's scores.
func AverageScore(student model.Student) (float64, error) {
	if len(student.Scores) == 0 {
		return 0, fmt.Errorf("student %d: %w", student.ID, ErrNoScores)
	}

	sum := decimal.Zero
	for _, s := range student.Scores {
		if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
			return 0, fmt.Errorf("student %d, subject %q: %w", student.ID, s.Subject, ErrInvalidScore)
		}
		sum = sum.Add(decimal.NewFromFloat(s.Score))
	}

	avg, _ := sum.Div(decimal.NewFromInt(int64(len(student.Scores)))).Float64()
	return avg, nil
}

// sortByAverage scores every student and sorts them by average, highest
// first. Ties keep their input order.
func sortByAverage(students []model.Student) ([]scoredStudent, error) {
	scored := make([]scoredStudent, 0, len(students))
	for _, st := range students {
		avg, err := AverageScore(st)
		if err != nil {
			return nil, err
		}
		scored = append(scored, scoredStudent{student: st, average: avg})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].average > scored[j].average
	})
	return scored, nil
}

// Rank returns students ordered by average score, highest first, with a
// 1-based rank equal to their position. Equal averages get distinct ranks.
func Rank(students []model.Student) ([]Ranked, error) {
	scored, err := sortByAverage(students)
	if err != nil {
		return nil, err
	}

	ranked := make([]Ranked, len(scored))
	for i, s := range scored {
		ranked[i] = Ranked{
			Rank:         i + 1,
			ID:           s.student.ID,
			Name:         s.student.Name,
			AverageScore: s.average,
		}
	}
	return ranked, nil
}

// TopN returns the first n entries of Rank. An n larger than the
// population returns everyone.
func TopN(students []model.Student, n int) ([]Ranked, error) {
	if n < 0 {
		return nil, ErrInvalidLimit
	}

	ranked, err := Rank(students)
	if err != nil {
		return nil, err
	}
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// BelowThreshold returns, in input order, the students whose average is
// strictly less than threshold. Records are returned as stored, without
// rank or average.
func BelowThreshold(students []model.Student, threshold float64) ([]model.Student, error) {
	if math.IsNaN(threshold) {
		return nil, ErrInvalidThreshold
	}

	below := make([]model.Student, 0)
	for _, st := range students {
		avg, err := AverageScore(st)
		if err != nil {
			return nil, err
		}
		if avg < threshold {
			below = append(below, st)
		}
	}
	return below, nil
}

// SubjectAverages returns, for every subject seen, the mean of all its
// scores across all students. Map order carries no meaning.
func SubjectAverages(students []model.Student) map[string]float64 {
	type total struct {
		sum   decimal.Decimal
		count int64
	}

	totals := make(map[string]*total)
	for _, st := range students {
		for _, s := range st.Scores {
			if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
				continue
			}
			t, ok := totals[s.Subject]
			if !ok {
				t = &total{sum: decimal.Zero}
				totals[s.Subject] = t
			}
			t.sum = t.sum.Add(decimal.NewFromFloat(s.Score))
			t.count++
		}
	}

	averages := make(map[string]float64, len(totals))
	for subject, t := range totals {
		averages[subject], _ = t.sum.Div(decimal.NewFromInt(t.count)).Float64()
	}
	return averages
}

// SubjectAverageList flattens averages into a slice sorted by subject.
func SubjectAverageList(averages map[string]float64) []SubjectAverage {
	list := make([]SubjectAverage, 0, len(averages))
	for subject, avg := range averages {
		list = append(list, SubjectAverage{Subject: subject, Average: avg})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Subject < list[j].Subject
	})
	return list
}

// FullReport is Rank with each entry carrying its full score list.
func FullReport(students []model.Student) ([]FullEntry, error) {
	scored, err := sortByAverage(students)
	if err != nil {
		return nil, err
	}

	report := make([]FullEntry, len(scored))
	for i, s := range scored {
		report[i] = FullEntry{
			Ranked: Ranked{
				Rank:         i + 1,
				ID:           s.student.ID,
				Name:         s.student.Name,
				AverageScore: s.average,
			},
			Scores: s.student.Scores,
		}
	}
	return report, nil
}
