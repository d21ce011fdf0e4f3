package ranking

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/model"
)

func student(id int, name string, scores ...float64) model.Student {
	st := model.Student{ID: id, Name: name}
	for _, s := range scores {
		st.Scores = append(st.Scores, model.Score{Subject: "Math", Score: s})
	}
	return st
}

func sampleStudents() []model.Student {
	return []model.Student{
		student(1, "Ada", 60, 70),    // 65
		student(2, "Brian", 90, 90),  // 90
		student(3, "Chen", 100, 80),  // 90
		student(4, "Dara", 75),       // 75
		student(5, "Emeka", 50, 100), // 75
	}
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name    string
		student model.Student
		want    float64
		wantErr error
	}{
		{"single score", student(1, "a", 42), 42, nil},
		{"mean of two", student(1, "a", 80, 100), 90, nil},
		{"fractional mean", student(1, "a", 1, 2), 1.5, nil},
		{"zero scores count", student(1, "a", 0, 100), 50, nil},
		{"no scores", model.Student{ID: 7, Name: "empty"}, 0, ErrNoScores},
		{"nan score", student(1, "a", math.NaN()), 0, ErrInvalidScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AverageScore(tt.student)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAverageScoreThirds(t *testing.T) {
	got, err := AverageScore(student(1, "a", 1, 1, 2))
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, got, 1e-12)
}

func TestRankIsStableDescending(t *testing.T) {
	ranked, err := Rank(sampleStudents())
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	wantIDs := []int{2, 3, 4, 5, 1}
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, wantIDs[i], r.ID)
	}
	assert.Equal(t, 90.0, ranked[0].AverageScore)
	assert.Equal(t, 90.0, ranked[1].AverageScore)
	assert.Equal(t, "Brian", ranked[0].Name)
}

func TestRankTieGetsDistinctRanks(t *testing.T) {
	ranked, err := Rank([]model.Student{student(10, "first", 90), student(11, "second", 90)})
	require.NoError(t, err)

	assert.Equal(t, 10, ranked[0].ID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 11, ranked[1].ID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankEmptyInput(t *testing.T) {
	ranked, err := Rank(nil)
	require.NoError(t, err)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankFailsOnStudentWithoutScores(t *testing.T) {
	students := append(sampleStudents(), model.Student{ID: 99, Name: "ghost"})
	_, err := Rank(students)
	assert.ErrorIs(t, err, ErrNoScores)
	assert.Contains(t, err.Error(), "student 99")
}

func TestTopN(t *testing.T) {
	students := sampleStudents()
	full, err := Rank(students)
	require.NoError(t, err)

	for n := 0; n <= len(students); n++ {
		top, err := TopN(students, n)
		require.NoError(t, err)
		assert.Equal(t, full[:n], top, "n=%d", n)
	}

	top, err := TopN(students, 50)
	require.NoError(t, err)
	assert.Equal(t, full, top)
}

func TestTopNNegative(t *testing.T) {
	_, err := TopN(sampleStudents(), -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestBelowThreshold(t *testing.T) {
	students := []model.Student{
		student(1, "a", 69.9),
		student(2, "b", 70),
		student(3, "c", 20, 40),
		student(4, "d", 100),
	}

	below, err := BelowThreshold(students, 70)
	require.NoError(t, err)
	require.Len(t, below, 2)
	assert.Equal(t, 1, below[0].ID)
	assert.Equal(t, 3, below[1].ID)
	assert.Equal(t, students[2].Scores, below[1].Scores)
}

func TestBelowThresholdNoMatches(t *testing.T) {
	below, err := BelowThreshold(sampleStudents(), 0)
	require.NoError(t, err)
	assert.NotNil(t, below)
	assert.Empty(t, below)
}

func TestBelowThresholdNaN(t *testing.T) {
	_, err := BelowThreshold(sampleStudents(), math.NaN())
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestSubjectAverages(t *testing.T) {
	students := []model.Student{
		{ID: 1, Scores: []model.Score{{Subject: "Math", Score: 80}}},
		{ID: 2, Scores: []model.Score{{Subject: "Math", Score: 100}}},
	}
	assert.Equal(t, map[string]float64{"Math": 90}, SubjectAverages(students))
}

func TestSubjectAveragesCountsDuplicateEntries(t *testing.T) {
	students := []model.Student{
		{ID: 1, Scores: []model.Score{
			{Subject: "Math", Score: 50},
			{Subject: "Math", Score: 70},
			{Subject: "Art", Score: 88},
		}},
		{ID: 2, Scores: []model.Score{{Subject: "Math", Score: 90}}},
		{ID: 3},
	}

	averages := SubjectAverages(students)
	assert.Len(t, averages, 2)
	assert.Equal(t, 70.0, averages["Math"])
	assert.Equal(t, 88.0, averages["Art"])
}

func TestSubjectAverageList(t *testing.T) {
	list := SubjectAverageList(map[string]float64{"Physics": 61, "Art": 88, "Math": 70})
	assert.Equal(t, []SubjectAverage{
		{Subject: "Art", Average: 88},
		{Subject: "Math", Average: 70},
		{Subject: "Physics", Average: 61},
	}, list)
	assert.NotNil(t, SubjectAverageList(nil))
}

func TestFullReportExtendsRank(t *testing.T) {
	students := sampleStudents()
	ranked, err := Rank(students)
	require.NoError(t, err)
	report, err := FullReport(students)
	require.NoError(t, err)

	require.Len(t, report, len(ranked))
	for i, entry := range report {
		assert.Equal(t, ranked[i], entry.Ranked)
	}
	assert.Equal(t, students[1].Scores, report[0].Scores)
}
