package dxf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dxfgen/app/analyzer"
)

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, nil)

	parts := []analyzer.Part{
		{Name: "montant", Length: 2500, Width: 80, Extras: map[analyzer.Field]string{
			analyzer.FieldCodeSAP: "SAP-1",
			analyzer.FieldRepere:  "R1",
		}},
		{Name: "traverse haute", Length: 1200.5, Width: 60},
		{Name: "cale", Length: 30, Width: 20},
	}

	created, errs := g.Create(parts)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if created != 3 {
		t.Fatalf("expected 3 files, got %d", created)
	}

	wantFiles := []string{
		"montant_2500x80.dxf",
		"traverse haute_1200.5x60.dxf",
		"cale_30x20.dxf",
	}
	for _, name := range wantFiles {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("expected file %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("file %s is empty", name)
		}
	}
}

func TestCreate_EmptyParts(t *testing.T) {
	g := NewGenerator(t.TempDir(), nil)

	created, errs := g.Create(nil)
	if created != 0 || len(errs) != 0 {
		t.Errorf("empty input should produce nothing, got %d files and %v", created, errs)
	}
}

func TestCreate_DrawingContent(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, nil)

	part := analyzer.Part{Name: "montant", Length: 2500, Width: 80, Extras: map[analyzer.Field]string{
		analyzer.FieldPaquet: "P7",
	}}
	created, errs := g.Create([]analyzer.Part{part})
	if created != 1 || len(errs) != 0 {
		t.Fatalf("setup failed: created=%d errs=%v", created, errs)
	}

	data, err := os.ReadFile(filepath.Join(dir, "montant_2500x80.dxf"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	if !strings.Contains(text, layerName) {
		t.Errorf("drawing should declare the %s layer", layerName)
	}
	if !strings.Contains(text, "montant") {
		t.Error("drawing should carry the part name")
	}
	if !strings.Contains(text, "PAQUET: P7") {
		t.Error("drawing should carry the paquet annotation")
	}
	if !strings.Contains(text, "2500 x 80") {
		t.Error("drawing should carry the dimension label")
	}
}

func TestTextSizes(t *testing.T) {
	t.Run("SmallPart", func(t *testing.T) {
		mainSize, infoSize := textSizes(30, 20)
		if mainSize < 2 || mainSize > 4 {
			t.Errorf("small-part main size should stay in [2,4], got %g", mainSize)
		}
		if infoSize < 1.5 {
			t.Errorf("small-part info size should be at least 1.5, got %g", infoSize)
		}
	})

	t.Run("LargePart", func(t *testing.T) {
		mainSize, infoSize := textSizes(2500, 80)
		if mainSize < 5 {
			t.Errorf("large-part main size should be at least 5, got %g", mainSize)
		}
		if infoSize < 2 {
			t.Errorf("large-part info size should be at least 2, got %g", infoSize)
		}
	})
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"montant", "montant"},
		{"traverse haute", "traverse haute"},
		{"pièce n°4", "pièce n4"},
		{"a/b\\c:d", "abcd"},
		{"nom_avec-tiret", "nom_avec-tiret"},
		{"fin   ", "fin"},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
