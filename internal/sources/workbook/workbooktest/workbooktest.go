// Package workbooktest builds throwaway .xlsx workbooks for tests.
package workbooktest

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named sheet; Rows[0] is the header row.
type Sheet struct {
	Name string
	Rows [][]any
}

// Write saves the sheets, in order, to a workbook under t.TempDir() and
// returns its path.
func Write(t testing.TB, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("create sheet %q: %v", s.Name, err)
		}

		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
				t.Fatalf("write row %d of %q: %v", r, s.Name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "collections.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// Articles returns an Articles sheet with n numbered rows.
func Articles(n int) Sheet {
	rows := [][]any{{"Title", "Author", "Section", "Month", "Page", "Link"}}
	for i := 1; i <= n; i++ {
		rows = append(rows, []any{
			fmt.Sprintf("Article %d", i),
			fmt.Sprintf("Author %d", i%4),
			fmt.Sprintf("%d", 170+i%3),
			[]string{"January", "February", "March"}[i%3],
			i,
			fmt.Sprintf("https://example.com/articles/%d.pdf", i),
		})
	}
	return Sheet{Name: "Articles", Rows: rows}
}

// Standard returns the four known collections with small fixed contents.
func Standard(articles int) []Sheet {
	return []Sheet{
		Articles(articles),
		{
			Name: "Judgements",
			Rows: [][]any{
				{"Title", "Reference", "Section", "Summary", "Month", "Link"},
				{"XYZ Ltd v. Registrar", "NCLAT 12/2023", "188", "Approval of related party contracts", "January", "https://example.com/j/1.pdf"},
				{"ABC Ltd v. Union", "SC 4/2022", "241", "Oppression and mismanagement", "February", ""},
			},
		},
		{
			Name: "Updates",
			Rows: [][]any{
				{"Title", "Type", "Summary", "Month", "Link"},
				{"MCA Circular 01/2024", "Circular", "Extension of AGM timelines", "January", "https://example.com/u/1.pdf"},
			},
		},
		{
			Name: "ROC & RD Adjudication",
			Rows: [][]any{
				{"Title", "Authority", "Section", "Judgement", "Month", "Link"},
				{"Penalty on Foo Pvt Ltd", "ROC Mumbai", "137", "Penalty imposed for late filing", "March", "https://example.com/r/1.pdf"},
			},
		},
	}
}
