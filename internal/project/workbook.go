package project

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/Bist0uille/archibot/internal/model"
)

// WorkbookOptions selects the sheet to import.
type WorkbookOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// Row is one project read from a workbook.
type Row struct {
	Line    int // 1-based spreadsheet row
	Project model.ProjectInput
}

// ReadWorkbook imports one project per row. The first row holds dotted
// paths such as "client.nom" or "projet.surfacePlancher"; empty header cells
// and empty values are ignored, and rows with no value at all are skipped.
func ReadWorkbook(path string, opts WorkbookOptions) ([]Row, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "project: open workbook")
	}

	sheet, err := selectSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("project: sheet %q is empty", sheet.Name)
	}

	header := cellStrings(sheet.Rows[0])
	var rows []Row
	for i, r := range sheet.Rows[1:] {
		tree := model.Record(nil)
		for j, text := range cellStrings(r) {
			if j >= len(header) || header[j] == "" || strings.TrimSpace(text) == "" {
				continue
			}
			tree = tree.With(header[j], model.String(strings.TrimSpace(text)))
		}
		if tree.IsEmpty() {
			continue
		}
		rows = append(rows, Row{Line: i + 2, Project: model.NewProjectInput(tree)})
	}
	return rows, nil
}

func selectSheet(f *xlsx.File, opts WorkbookOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("project: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("project: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func cellStrings(row *xlsx.Row) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = strings.TrimSpace(cell.String())
	}
	return cells
}
