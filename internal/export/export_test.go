package export_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/myaschmitz/codereps/internal/export"
	"github.com/myaschmitz/codereps/pkg/models"
)

func sampleData() ([]models.Problem, []models.TodoItem) {
	reviewed := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	completedAt := reviewed.AddDate(0, 0, 1)

	problems := []models.Problem{{
		ID:   "p1",
		Name: "Two Sum",
		ReviewHistory: []models.ReviewRecord{
			{Date: reviewed, Difficulty: models.Medium, Note: "hash map"},
		},
		NextReviewDate: reviewed.AddDate(0, 0, 7),
		CreatedAt:      reviewed,
	}}
	todoItems := []models.TodoItem{{
		ID:          "t1",
		Name:        "Three Sum",
		Number:      15,
		Completed:   true,
		CreatedAt:   reviewed,
		CompletedAt: &completedAt,
	}}
	return problems, todoItems
}

func TestMarshalParseRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	problems, todoItems := sampleData()
	payload, err := export.Marshal(problems, todoItems)
	assert.NoError(err)

	snapshot, err := export.Parse(payload)
	assert.NoError(err)
	assert.Equal(export.SchemaVersion, snapshot.Version)
	assert.False(snapshot.ExportedAt.IsZero())

	assert.Len(snapshot.Data.Problems, 1)
	p := snapshot.Data.Problems[0]
	assert.Equal("p1", p.ID)
	assert.Len(p.ReviewHistory, 1)
	assert.Equal(models.Medium, p.ReviewHistory[0].Difficulty)
	assert.True(problems[0].ReviewHistory[0].Date.Equal(p.ReviewHistory[0].Date))
	assert.True(problems[0].NextReviewDate.Equal(p.NextReviewDate))

	assert.Len(snapshot.Data.TodoItems, 1)
	item := snapshot.Data.TodoItems[0]
	assert.Equal("t1", item.ID)
	assert.NotNil(item.CompletedAt)
	assert.True(todoItems[0].CompletedAt.Equal(*item.CompletedAt))
}

func TestMarshalWritesISODates(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	problems, todoItems := sampleData()
	payload, err := export.Marshal(problems, todoItems)
	assert.NoError(err)

	var raw struct {
		Version int `json:"version"`
		Data    struct {
			Problems []struct {
				NextReviewDate string `json:"nextReviewDate"`
			} `json:"problems"`
		} `json:"data"`
	}
	assert.NoError(json.Unmarshal(payload, &raw))
	assert.Equal(export.SchemaVersion, raw.Version)

	_, err = time.Parse(time.RFC3339, raw.Data.Problems[0].NextReviewDate)
	assert.NoError(err, "nextReviewDate should be RFC 3339")
}

func TestMarshalEmptyCollections(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	payload, err := export.Marshal(nil, nil)
	assert.NoError(err)

	snapshot, err := export.Parse(payload)
	assert.NoError(err)
	assert.Empty(snapshot.Data.Problems)
	// Empty is not absent: the collection is present in the payload.
	assert.NotNil(snapshot.Data.TodoItems)
}

func TestParseRejectsMissingVersion(t *testing.T) {
	t.Parallel()

	_, err := export.Parse([]byte(`{"exportedAt": "2025-01-01T00:00:00Z", "data": {"problems": []}}`))
	assert.ErrorIs(t, err, models.ErrInvalidImport)
}

func TestParseRejectsMissingProblems(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, err := export.Parse([]byte(`{"version": 2, "data": {"todoItems": []}}`))
	assert.ErrorIs(err, models.ErrInvalidImport)

	_, err = export.Parse([]byte(`{"version": 2}`))
	assert.ErrorIs(err, models.ErrInvalidImport)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := export.Parse([]byte("definitely not json"))
	assert.ErrorIs(t, err, models.ErrInvalidImport)
}

func TestParseVersion1LacksTodoItems(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	snapshot, err := export.Parse([]byte(`{
		"version": 1,
		"exportedAt": "2024-01-15T12:00:00Z",
		"data": {"problems": []}
	}`))
	assert.NoError(err)
	assert.Equal(1, snapshot.Version)
	assert.Nil(snapshot.Data.TodoItems)
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	problems, todoItems := sampleData()
	path := filepath.Join(t.TempDir(), "export.xlsx")

	err := export.WriteWorkbook(path, export.DefaultWorkbookConfig(), problems, todoItems)
	assert.NoError(err)
	assert.FileExists(path)
}
