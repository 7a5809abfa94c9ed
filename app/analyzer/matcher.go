package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// keywordGroups drive the heuristic matcher: a lowercased header claims the
// first unresolved field whose group it substring-matches. Group order
// follows AllFields; keyword order within a group is significant only for
// readability.
var keywordGroups = []struct {
	field    Field
	keywords []string
}{
	{FieldName, []string{"blaze", "pièce", "solide", "nom"}},
	{FieldLength, []string{"longueur", "long"}},
	{FieldWidth, []string{"largeur", "larg"}},
	{FieldCodeSAP, []string{"code sap", "sap"}},
	{FieldReferenceKit, []string{"référence kit", "kit"}},
	{FieldReferencePiece, []string{"référence pièce", "ref pièce"}},
	{FieldPaquet, []string{"paquet"}},
	{FieldRepere, []string{"repère", "repere"}},
}

// similarityThreshold is the minimum character-overlap score for a header
// to be named in a grounding-failure diagnostic.
const similarityThreshold = 0.5

// Resolve maps each field to a header of headerSet, or leaves it
// unresolved. When guess carries all three mandatory columns it is applied
// verbatim; fields it leaves open (and all fields when the guess is
// discarded) fall back to keyword heuristics. Every candidate is then
// grounded against headerSet; candidates that cannot be grounded are
// dropped, with a diagnostic naming the closest headers.
func Resolve(headerSet []string, guess *FieldGuess) (Mapping, []string) {
	candidates := make(Mapping)

	if guess.MandatoryComplete() {
		for _, f := range AllFields {
			if v := guess.Value(f); v != "" {
				candidates[f] = v
			}
		}
	}

	matchHeuristic(headerSet, candidates)

	return ground(candidates, headerSet)
}

// matchHeuristic fills unresolved fields of candidates by keyword matching.
// Headers are visited in file order; each header may be claimed by at most
// one field, first match wins. Headers already referenced by an existing
// candidate are not reclaimed.
func matchHeuristic(headerSet []string, candidates Mapping) {
	claimed := make(map[string]bool, len(candidates))
	for _, v := range candidates {
		claimed[normalizeKey(v)] = true
	}

	for _, header := range headerSet {
		clean := strings.TrimSpace(header)
		if clean == "" || claimed[normalizeKey(clean)] {
			continue
		}
		lower := strings.ToLower(clean)
		for _, group := range keywordGroups {
			if candidates[group.field] != "" {
				continue
			}
			if containsAny(lower, group.keywords) {
				candidates[group.field] = clean
				claimed[normalizeKey(clean)] = true
				break
			}
		}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ground confirms every candidate header actually names a member of
// headerSet. Four rules in priority order: exact match, case-insensitive,
// case-insensitive ignoring spaces, case-insensitive ignoring underscores.
// The first rule matching exactly one header wins. Ungroundable candidates
// are removed and reported with their nearest headers by character overlap.
func ground(candidates Mapping, headerSet []string) (Mapping, []string) {
	resolved := make(Mapping, len(candidates))
	var diags []string

	for _, f := range AllFields {
		candidate := candidates[f]
		if candidate == "" {
			continue
		}
		if header, ok := groundOne(candidate, headerSet); ok {
			resolved[f] = header
			continue
		}
		diags = append(diags, groundingDiag(f, candidate, headerSet))
	}

	return resolved, diags
}

// groundingRules are the normalization tiers applied to both sides of the
// comparison, in priority order.
var groundingRules = []func(string) string{
	func(s string) string { return s },
	strings.ToLower,
	func(s string) string { return strings.ToLower(strings.ReplaceAll(s, " ", "")) },
	func(s string) string { return strings.ToLower(strings.ReplaceAll(s, "_", "")) },
}

func groundOne(candidate string, headerSet []string) (string, bool) {
	for _, rule := range groundingRules {
		want := rule(strings.TrimSpace(candidate))
		match := ""
		count := 0
		for _, h := range headerSet {
			if rule(strings.TrimSpace(h)) == want {
				count++
				if count == 1 {
					match = h
				}
			}
		}
		if count == 1 {
			return match, true
		}
	}
	return "", false
}

func groundingDiag(f Field, candidate string, headerSet []string) string {
	type scored struct {
		header string
		score  float64
	}
	var near []scored
	for _, h := range headerSet {
		if s := Similarity(candidate, h); s > similarityThreshold {
			near = append(near, scored{h, s})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].score > near[j].score })

	msg := fmt.Sprintf("impossible de mapper %q pour %s", candidate, f)
	if len(near) > 0 {
		names := make([]string, len(near))
		for i, n := range near {
			names[i] = fmt.Sprintf("%s (%.2f)", n.header, n.score)
		}
		msg += ", candidats proches: " + strings.Join(names, ", ")
	}
	return msg
}

// Similarity scores two strings by character-set overlap:
// |intersection| / |union| over the sets of runes, case-insensitive.
// 1.0 for identical strings, 0.0 when nothing is shared.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	setA := runeSet(strings.ToLower(a))
	setB := runeSet(strings.ToLower(b))

	union := make(map[rune]bool, len(setA)+len(setB))
	common := 0
	for r := range setA {
		union[r] = true
		if setB[r] {
			common++
		}
	}
	for r := range setB {
		union[r] = true
	}
	if len(union) == 0 {
		return 0.0
	}
	return float64(common) / float64(len(union))
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}
