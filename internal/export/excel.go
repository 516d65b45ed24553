package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/myaschmitz/codereps/pkg/models"
)

// WorkbookConfig defines the layout of a spreadsheet export.
type WorkbookConfig struct {
	ProblemSheet string // Sheet with the problem log
	TodoSheet    string // Sheet with the to-do list
	DateFormat   string // Go time layout for date cells
}

// DefaultWorkbookConfig returns the default spreadsheet layout.
func DefaultWorkbookConfig() WorkbookConfig {
	return WorkbookConfig{
		ProblemSheet: "Problems",
		TodoSheet:    "Todo",
		DateFormat:   "2006-01-02",
	}
}

// WriteWorkbook renders the given collections into an Excel workbook at the
// given path. Intended for sharing progress in a human-readable form; the
// JSON snapshot remains the backup format.
func WriteWorkbook(path string, config WorkbookConfig, problems []models.Problem, todoItems []models.TodoItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeProblemSheet(f, config, problems); err != nil {
		return err
	}
	if err := writeTodoSheet(f, config, todoItems); err != nil {
		return err
	}

	// Drop the default sheet left over from NewFile
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeProblemSheet(f *excelize.File, config WorkbookConfig, problems []models.Problem) error {
	if _, err := f.NewSheet(config.ProblemSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", config.ProblemSheet, err)
	}

	headers := []interface{}{"Name", "Number", "Reviews", "Last Difficulty", "Next Review", "Archived"}
	if err := f.SetSheetRow(config.ProblemSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, p := range problems {
		lastDifficulty := ""
		if latest := p.LatestReview(); latest != nil {
			lastDifficulty = latest.Difficulty.String()
		}
		row := []interface{}{
			p.Name,
			p.Number,
			len(p.ReviewHistory),
			lastDifficulty,
			p.NextReviewDate.Format(config.DateFormat),
			p.Archived,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(config.ProblemSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write problem row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeTodoSheet(f *excelize.File, config WorkbookConfig, todoItems []models.TodoItem) error {
	if _, err := f.NewSheet(config.TodoSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", config.TodoSheet, err)
	}

	headers := []interface{}{"Name", "Number", "Note", "Completed", "Completed At"}
	if err := f.SetSheetRow(config.TodoSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, item := range todoItems {
		completedAt := ""
		if item.CompletedAt != nil {
			completedAt = item.CompletedAt.Format(config.DateFormat)
		}
		row := []interface{}{
			item.Name,
			item.Number,
			item.Note,
			item.Completed,
			completedAt,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(config.TodoSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write todo row %d: %w", i+2, err)
		}
	}
	return nil
}
