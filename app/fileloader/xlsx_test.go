package fileloader

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestReadXLSXRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liste.xlsx")
	writeXLSX(t, path, [][]any{
		{"Nom", "Longueur", "Largeur"},
		{"montant", 2500, 80},
		{"traverse", 1200, 60},
	})

	rows, err := ReadXLSXRows(path)
	if err != nil {
		t.Fatalf("ReadXLSXRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Nom" || rows[0][2] != "Largeur" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "2500" {
		t.Errorf("numeric cells should come back as strings, got %q", rows[1][1])
	}

	t.Run("EmptyPath", func(t *testing.T) {
		if _, err := ReadXLSXRows(""); err == nil {
			t.Error("expected an error for an empty path")
		}
	})

	t.Run("NotAnXLSX", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.xlsx")
		writeGzip(t, bad, "pas un classeur")
		if _, err := ReadXLSXRows(bad); err == nil {
			t.Error("expected an error for a non-XLSX file")
		}
	})
}

func TestJoinRowsAsText(t *testing.T) {
	rows := [][]string{
		{"Nom", "Longueur"},
		{"montant", "2500"},
	}
	want := "Nom;Longueur\nmontant;2500"
	if got := JoinRowsAsText(rows); got != want {
		t.Errorf("JoinRowsAsText = %q, want %q", got, want)
	}
}
