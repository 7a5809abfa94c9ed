package analyzer

import (
	"fmt"
	"strconv"
	"strings"
)

// Part is one validated part record. Invariant: Length > 0, Width > 0 and
// Name is non-empty after trimming; a record violating this is never
// constructed.
type Part struct {
	Name   string
	Length float64
	Width  float64
	// Extras holds the optional fields that resolved and carried a
	// non-empty value, trimmed.
	Extras map[Field]string
}

// rowValues is one data row keyed by field, raw strings as read.
type rowValues map[Field]string

// skipReason explains why a row produced no Part.
type skipReason struct {
	row int
	msg string
}

func (s skipReason) String() string {
	return fmt.Sprintf("ligne %d: %s", s.row, s.msg)
}

// degeneratePositions fixes the column order of the degenerate single-line
// layout. Index 7 (reference_piece) is optional: rows with only 7 fields
// are still accepted.
var degeneratePositions = []Field{
	FieldName,
	FieldLength,
	FieldWidth,
	FieldCodeSAP,
	FieldReferenceKit,
	FieldRepere,
	FieldPaquet,
	FieldReferencePiece,
}

// minDegenerateFields is the minimum field count for a degenerate row to be
// considered at all.
const minDegenerateFields = 7

// extractDegenerate converts raw physical lines into parts using fixed
// positions. Rows with too few fields or failing validation are skipped
// silently: the legacy layout predates diagnostics and existing operator
// workflows rely on the quiet behavior.
func extractDegenerate(lines []string) []Part {
	parts := make([]Part, 0, len(lines))
	for i, line := range lines {
		fields := strings.Split(line, ";")
		if len(fields) < minDegenerateFields {
			continue
		}
		rv := make(rowValues, len(degeneratePositions))
		for pos, f := range degeneratePositions {
			if pos < len(fields) {
				rv[f] = strings.TrimSpace(fields[pos])
			}
		}
		part, skip := coerceRow(rv, i)
		if skip != nil {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

// extractNormal converts keyed records into parts using the grounded
// mapping. Each failed row yields a diagnostic when emitDiagnostics is
// true; either way the run continues. Row order is preserved, nothing is
// deduplicated.
func extractNormal(records [][]string, headerSet []string, mapping Mapping, emitDiagnostics bool) ([]Part, []string) {
	index := headerIndex(headerSet)

	parts := make([]Part, 0, len(records))
	var diags []string

	for i, record := range records {
		rv := make(rowValues, len(mapping))
		for f, header := range mapping {
			pos, ok := index[header]
			if !ok || pos >= len(record) {
				continue
			}
			rv[f] = record[pos]
		}
		part, skip := coerceRow(rv, i)
		if skip != nil {
			if emitDiagnostics {
				diags = append(diags, skip.String())
			}
			continue
		}
		parts = append(parts, part)
	}

	return parts, diags
}

// headerIndex maps each header to its column position. Duplicates keep the
// first occurrence.
func headerIndex(headerSet []string) map[string]int {
	index := make(map[string]int, len(headerSet))
	for i, h := range headerSet {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}
	return index
}

// coerceRow turns one row's raw values into a Part, or a reason to drop the
// row. Coercion order: name (trimmed, checked only at the final gate),
// length, width, positivity, then the single authoritative accept check.
func coerceRow(rv rowValues, row int) (Part, *skipReason) {
	name := strings.TrimSpace(rv[FieldName])

	length, err := parseDimension(rv[FieldLength])
	if err != nil {
		return Part{}, &skipReason{row, fmt.Sprintf("longueur %q non numérique", rv[FieldLength])}
	}
	width, err := parseDimension(rv[FieldWidth])
	if err != nil {
		return Part{}, &skipReason{row, fmt.Sprintf("largeur %q non numérique", rv[FieldWidth])}
	}
	if !(length > 0 && width > 0) {
		return Part{}, &skipReason{row, fmt.Sprintf("dimensions invalides (%gx%g)", length, width)}
	}
	if name == "" {
		return Part{}, &skipReason{row, "nom vide"}
	}

	extras := make(map[Field]string)
	for _, f := range OptionalFields {
		if v, ok := rv[f]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				extras[f] = trimmed
			}
		}
	}

	return Part{Name: name, Length: length, Width: width, Extras: extras}, nil
}

func parseDimension(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
