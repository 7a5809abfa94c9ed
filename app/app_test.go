package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dxfgen/app/analyzer"
	"dxfgen/app/settings"
)

func testApp(t *testing.T) *App {
	t.Helper()
	return NewWithSettings(settings.Settings{
		OutputDir:       filepath.Join(t.TempDir(), "out"),
		CacheMaxEntries: 4,
	}, nil)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "liste.csv",
		"Nom,Longueur,Largeur\nmontant,2500,80\ntraverse,1200,60\n")

	application := testApp(t)
	result, err := application.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("analysis should succeed, got %q", result.Err)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}
	if application.FilePath() != path {
		t.Errorf("file path not recorded, got %q", application.FilePath())
	}
	if application.Result() != result {
		t.Error("Result should return the last analysis")
	}

	t.Run("Missing", func(t *testing.T) {
		if _, err := application.AnalyzeFile(context.Background(), filepath.Join(dir, "absent.csv")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
}

func TestAnalyzeFile_CacheHit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "liste.csv",
		"Nom,Longueur,Largeur,Taille\nmontant,2500,80,99\n")

	application := testApp(t)
	if _, err := application.AnalyzeFile(context.Background(), path); err != nil {
		t.Fatalf("first analysis failed: %v", err)
	}

	// Second run must hit the cache.
	if _, err := application.AnalyzeFile(context.Background(), path); err != nil {
		t.Fatalf("second analysis failed: %v", err)
	}
	hits, _ := application.cache.Stats()
	if hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", hits)
	}

	// A remap still works on the cached analyzer.
	if !application.Remap(analyzer.FieldWidth, "Taille") {
		t.Fatal("remap on a cached analysis should succeed")
	}
	if application.Result().Parts[0].Width != 99 {
		t.Errorf("remap not applied, got %+v", application.Result().Parts[0])
	}
}

func TestRemap_WithoutAnalysis(t *testing.T) {
	application := testApp(t)
	if application.Remap(analyzer.FieldWidth, "Largeur") {
		t.Error("remap without an analysis should fail")
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bonne.csv", "Nom,Longueur,Largeur\nmontant,2500,80\n")
	writeFile(t, dir, "mauvaise.csv", "Colonne1,Colonne2\nx,y\n")

	application := testApp(t)
	summaries, err := application.Batch(context.Background(), filepath.Join(dir, "*.csv"))
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	byName := make(map[string]BatchSummary, len(summaries))
	for _, s := range summaries {
		byName[filepath.Base(s.FilePath)] = s
	}

	good := byName["bonne.csv"]
	if good.Err != "" {
		t.Errorf("bonne.csv should analyze cleanly, got %q", good.Err)
	}
	if good.Parts != 1 || good.Created != 1 {
		t.Errorf("bonne.csv should create 1 drawing, got %+v", good)
	}

	bad := byName["mauvaise.csv"]
	if bad.Err == "" {
		t.Error("mauvaise.csv should report its mapping failure")
	}
	if bad.Created != 0 {
		t.Errorf("mauvaise.csv should create nothing, got %+v", bad)
	}

	// The drawing actually landed in the output directory.
	entries, err := os.ReadDir(application.OutputDir())
	if err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file in output dir, got %d", len(entries))
	}

	t.Run("NoMatch", func(t *testing.T) {
		if _, err := application.Batch(context.Background(), filepath.Join(dir, "*.xlsx")); err == nil {
			t.Error("expected an error when nothing matches")
		}
	})
}
