package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"dxfgen/app/analyzer"
)

func TestKey(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	a := write("a.csv", "Nom,Longueur,Largeur\n")
	b := write("b.csv", "Nom,Longueur,Largeur\n")
	c := write("c.csv", "autre contenu\n")

	keyA, err := Key(a)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	keyB, err := Key(b)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	keyC, err := Key(c)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	// Keys follow content, not path.
	if keyA != keyB {
		t.Errorf("identical content should share a key: %s vs %s", keyA, keyB)
	}
	if keyA == keyC {
		t.Error("different content should yield different keys")
	}

	if _, err := Key(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestCache_PutGet(t *testing.T) {
	c := New(4, nil)

	a := analyzer.New()
	a.AnalyzeBytes(context.Background(), []byte("Nom,Longueur,Largeur\nmontant,2500,80\n"))

	c.Put("k1", a)
	if got := c.Get("k1"); got != a {
		t.Fatal("expected the stored analyzer back")
	}
	if got := c.Get("absent"); got != nil {
		t.Fatal("expected nil for an unknown key")
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}

	// A cache hit still supports remapping: the analyzer keeps its rows.
	if got := c.Get("k1"); !got.Remap(analyzer.FieldLength, "Largeur") {
		t.Error("cached analyzer should still support remapping")
	}
}

func TestCache_Eviction(t *testing.T) {
	c := New(3, nil)

	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("k%d", i), analyzer.New())
	}

	// Touch k0 so k1 becomes the least recently used.
	c.Get("k0")

	c.Put("k3", analyzer.New())
	if c.Len() != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", c.Len())
	}
	if c.Get("k1") != nil {
		t.Error("k1 should have been evicted")
	}
	if c.Get("k0") == nil {
		t.Error("recently used k0 should survive")
	}
	if c.Get("k3") == nil {
		t.Error("fresh k3 should survive")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(4, nil)
	c.Put("k1", analyzer.New())
	c.Put("k2", analyzer.New())

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d entries", c.Len())
	}
}

func TestCache_DefaultCapacity(t *testing.T) {
	c := New(0, nil)
	for i := 0; i < DefaultMaxEntries+5; i++ {
		c.Put(fmt.Sprintf("k%d", i), analyzer.New())
	}
	if c.Len() != DefaultMaxEntries {
		t.Errorf("expected capacity %d, got %d", DefaultMaxEntries, c.Len())
	}
}
