package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/db"
	apperrors "gradebook/internal/errors"
	"gradebook/internal/repository"
	"gradebook/internal/service"
)

const studentsJSON = `[
	{"id": 1, "name": "Ada", "scores": [{"subject": "Math", "score": 90}]},
	{"id": 2, "name": "Brian", "scores": [{"subject": "Math", "score": 60}, {"subject": "Art", "score": 80}]},
	{"id": 3, "name": "No Scores", "scores": []}
]`

func newStudentService(t *testing.T) service.StudentService {
	t.Helper()
	gormDB, err := db.NewSQLite(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return service.NewStudentService(repository.NewStudentRepository(gormDB), nil)
}

func TestDecode(t *testing.T) {
	students, err := Decode(strings.NewReader(studentsJSON))
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "Brian", students[1].Name)
	assert.Equal(t, "Art", students[1].Scores[1].Subject)

	_, err = Decode(strings.NewReader(`{"id": 1}`))
	assert.Error(t, err)
}

func TestLoadFromFileAndURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, []byte(studentsJSON), 0o600))

	fromFile, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, fromFile, 3)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/students.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(studentsJSON))
	}))
	defer srv.Close()

	fromURL, err := Load(context.Background(), srv.URL+"/students.json")
	require.NoError(t, err)
	assert.Equal(t, fromFile, fromURL)

	_, err = Load(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	students, err := Decode(strings.NewReader(studentsJSON))
	require.NoError(t, err)

	res, err := Apply(ctx, svc, students)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2, Skipped: 1}, res)

	students[0].Name = "Ada Lovelace"
	res, err = Apply(ctx, svc, students[:1])
	require.NoError(t, err)
	assert.Equal(t, Result{Updated: 1}, res)

	stored, err := svc.GetStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.Name)
	assert.Len(t, stored.Scores, 1)
}

func TestApplySkipsMissingScore(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	records, err := Decode(strings.NewReader(`[
		{"id": 20, "name": "Sam", "scores": [{"subject": "Math"}]},
		{"id": 21, "name": "Zero", "scores": [{"subject": "Math", "score": 0}]}
	]`))
	require.NoError(t, err)
	require.Nil(t, records[0].Scores[0].Score)

	res, err := Apply(ctx, svc, records)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 1, Skipped: 1}, res)

	_, err = svc.GetStudent(ctx, 20)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	zero, err := svc.GetStudent(ctx, 21)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero.Scores[0].Score)
}
