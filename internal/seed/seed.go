// Package seed bulk-imports student records from JSON.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	apperrors "gradebook/internal/errors"
	"gradebook/internal/logger"
	"gradebook/internal/model"
	"gradebook/internal/service"
)

// Result counts the outcome of an import.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Record is one student as read from seed input.
type Record struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Scores []ScoreRecord `json:"scores"`
}

// ScoreRecord keeps Score as a pointer so an absent score is not read as 0.
type ScoreRecord struct {
	Subject string   `json:"subject"`
	Score   *float64 `json:"score"`
}

func (r Record) student() (*model.Student, error) {
	scores := make([]model.Score, 0, len(r.Scores))
	for i, s := range r.Scores {
		if s.Score == nil {
			return nil, apperrors.Validation(fmt.Sprintf("score %d (%s) has no value", i, s.Subject))
		}
		scores = append(scores, model.Score{Subject: s.Subject, Score: *s.Score})
	}
	return &model.Student{ID: r.ID, Name: r.Name, Scores: scores}, nil
}

// Load reads a JSON array of students from a file path or an http(s) URL.
func Load(ctx context.Context, source string) ([]Record, error) {
	var body io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: status code %d", source, resp.StatusCode)
		}
		body = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		body = f
	}
	defer body.Close()

	return Decode(body)
}

// Decode parses a JSON array of students.
func Decode(r io.Reader) ([]Record, error) {
	var students []Record
	if err := json.NewDecoder(r).Decode(&students); err != nil {
		return nil, fmt.Errorf("parse students: %w", err)
	}
	return students, nil
}

// Apply creates each student, or replaces name and scores when the id is
// already taken. Invalid records are skipped; storage failures abort.
func Apply(ctx context.Context, svc service.StudentService, records []Record) (Result, error) {
	var res Result
	for _, rec := range records {
		st, err := rec.student()
		if err == nil {
			_, err = svc.CreateStudent(ctx, st)
		}
		switch {
		case err == nil:
			res.Created++
			continue
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warningf("skipping student %d: %v", rec.ID, err)
			res.Skipped++
			continue
		case !errors.Is(err, apperrors.ErrConflict):
			return res, err
		}

		name := st.Name
		if _, err := svc.UpdateStudent(ctx, st.ID, model.StudentPatch{Name: &name, Scores: st.Scores}); err != nil {
			return res, fmt.Errorf("update student %d: %w", st.ID, err)
		}
		res.Updated++
	}
	return res, nil
}
