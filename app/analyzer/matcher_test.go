package analyzer

import (
	"strings"
	"testing"
)

func TestResolve_Heuristic(t *testing.T) {
	headers := []string{"Nom Piece", "Longueur (mm)", "largeur_mm", "Code SAP"}

	mapping, diags := Resolve(headers, nil)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if mapping[FieldName] != "Nom Piece" {
		t.Errorf("name should map to 'Nom Piece', got %q", mapping[FieldName])
	}
	if mapping[FieldLength] != "Longueur (mm)" {
		t.Errorf("length should map to 'Longueur (mm)', got %q", mapping[FieldLength])
	}
	if mapping[FieldWidth] != "largeur_mm" {
		t.Errorf("width should map to 'largeur_mm', got %q", mapping[FieldWidth])
	}
	if mapping[FieldCodeSAP] != "Code SAP" {
		t.Errorf("code_sap should map to 'Code SAP', got %q", mapping[FieldCodeSAP])
	}
}

func TestResolve_HeaderClaimedOnce(t *testing.T) {
	// "Longueur pièce" matches both the name group (pièce) and the length
	// group (longueur); file order and claim order decide, and the header
	// must not serve two fields.
	headers := []string{"Longueur pièce", "Largeur"}

	mapping, _ := Resolve(headers, nil)
	claimed := make(map[string]int)
	for _, h := range mapping {
		claimed[h]++
	}
	for h, n := range claimed {
		if n > 1 {
			t.Errorf("header %q claimed by %d fields", h, n)
		}
	}
}

func TestResolve_Guess(t *testing.T) {
	headers := []string{"A", "B", "C", "D"}

	t.Run("CompleteGuessApplied", func(t *testing.T) {
		guess := &FieldGuess{Name: "A", Length: "B", Width: "C", Paquet: "D"}

		mapping, diags := Resolve(headers, guess)
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %v", diags)
		}
		if mapping[FieldName] != "A" || mapping[FieldLength] != "B" || mapping[FieldWidth] != "C" {
			t.Errorf("mandatory guesses not applied: %v", mapping)
		}
		if mapping[FieldPaquet] != "D" {
			t.Errorf("optional guess not applied: %v", mapping)
		}
	})

	t.Run("IncompleteGuessDiscarded", func(t *testing.T) {
		// Width is missing, so the whole guess must be ignored, including
		// the columns it did name.
		guess := &FieldGuess{Name: "A", Length: "B"}

		mapping, _ := Resolve(headers, guess)
		if mapping[FieldName] != "" || mapping[FieldLength] != "" {
			t.Errorf("incomplete guess should be discarded wholesale, got %v", mapping)
		}
	})

	t.Run("HeuristicFillsGaps", func(t *testing.T) {
		headers := []string{"colA", "colB", "colC", "Paquet"}
		guess := &FieldGuess{Name: "colA", Length: "colB", Width: "colC"}

		mapping, _ := Resolve(headers, guess)
		if mapping[FieldPaquet] != "Paquet" {
			t.Errorf("heuristic should fill the paquet field, got %v", mapping)
		}
	})
}

func TestGroundOne(t *testing.T) {
	headers := []string{"Nom Piece", "LONGUEUR", "ref_piece"}

	cases := []struct {
		name      string
		candidate string
		want      string
		ok        bool
	}{
		{"Exact", "Nom Piece", "Nom Piece", true},
		{"CaseInsensitive", "longueur", "LONGUEUR", true},
		{"IgnoringSpaces", "NomPiece", "Nom Piece", true},
		{"IgnoringUnderscores", "ref piece", "ref_piece", true},
		{"NoMatch", "profondeur", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := groundOne(tc.candidate, headers)
			if ok != tc.ok {
				t.Fatalf("groundOne(%q) ok = %v, want %v", tc.candidate, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("groundOne(%q) = %q, want %q", tc.candidate, got, tc.want)
			}
		})
	}

	t.Run("AmbiguousNeverGrounds", func(t *testing.T) {
		// Both headers normalize to the same string on every tier below
		// exact, so no tier yields a unique match.
		headers := []string{"Largeur MM", "largeur mm"}
		got, ok := groundOne("LARGEUR MM", headers)
		if ok {
			t.Errorf("ambiguous candidate should not ground, got %q", got)
		}
	})
}

func TestResolve_GroundingDiagnostic(t *testing.T) {
	headers := []string{"Longeur", "Nom", "Largeur"}
	guess := &FieldGuess{Name: "Nom", Length: "Longueur", Width: "Largeur"}

	mapping, diags := Resolve(headers, guess)
	if mapping[FieldLength] != "" {
		t.Fatalf("ungroundable candidate should be dropped, got %q", mapping[FieldLength])
	}
	if len(diags) == 0 {
		t.Fatal("expected a grounding diagnostic")
	}
	if !strings.Contains(diags[0], "Longueur") {
		t.Errorf("diagnostic should name the candidate, got %q", diags[0])
	}
	if !strings.Contains(diags[0], "Longeur") {
		t.Errorf("diagnostic should list the near header 'Longeur', got %q", diags[0])
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("abc", "abc"); got != 1.0 {
		t.Errorf("identical strings should score 1.0, got %g", got)
	}
	if got := Similarity("abc", "xyz"); got != 0.0 {
		t.Errorf("disjoint strings should score 0.0, got %g", got)
	}
	if got := Similarity("ABC", "abc"); got != 1.0 {
		t.Errorf("similarity should be case-insensitive, got %g", got)
	}
	// {a,b,c} vs {a,b,d}: 2 common out of 4 in the union.
	if got := Similarity("abc", "abd"); got != 0.5 {
		t.Errorf("expected 0.5, got %g", got)
	}
}
