package analyzer

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// Layout describes which input layout the sniffer identified.
type Layout int

const (
	// LayoutNormal is a regular delimited file with a header row.
	LayoutNormal Layout = iota
	// LayoutDegenerate is the legacy single-line layout: every logical
	// record, header included, occupies one physical line joined with ';',
	// and column roles are positional rather than named.
	LayoutDegenerate
)

// String returns the string representation of Layout.
func (l Layout) String() string {
	if l == LayoutDegenerate {
		return "degenerate"
	}
	return "normal"
}

// legacyHeader is the fixed header applied when a degenerate file exposes
// fewer than 7 fields on its first line. Kept verbatim for compatibility
// with historic exports; this is a deliberate fallback, not a heuristic.
var legacyHeader = []string{
	"LONGUEUR",
	"nom des pièces",
	"LARGEUR",
	"Code SAP",
	"référence kit",
	"repère",
	"paquet",
	"référence pièce",
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// StripBOM removes a leading UTF-8 byte-order mark if present.
func StripBOM(raw []byte) []byte {
	return bytes.TrimPrefix(raw, utf8BOM)
}

// sniffResult is the outcome of format sniffing on raw file text.
type sniffResult struct {
	header    []string
	layout    Layout
	delimiter rune // meaningful for LayoutNormal only
}

// sniff determines the header set and the layout of raw part-list text.
// raw must already be BOM-stripped.
//
// Detection order:
//  1. First line contains ';' and splits into at least 6 fields: the file
//     is in the degenerate single-line layout. The first 8 fields, trimmed,
//     become the header; with fewer than 7 fields the legacy header is
//     substituted.
//  2. Delimiters ';', ',', tab tried in that order; the first whose parse
//     of the first row yields more than one field wins.
//  3. Default comma parsing, accepting whatever the first row holds, even a
//     single field.
func sniff(raw []byte) (sniffResult, error) {
	firstLine := firstLineOf(raw)

	if strings.Contains(firstLine, ";") {
		parts := strings.Split(firstLine, ";")
		if len(parts) >= 6 {
			for i, p := range parts {
				parts[i] = strings.TrimSpace(p)
			}
			if len(parts) < 7 {
				header := make([]string, len(legacyHeader))
				copy(header, legacyHeader)
				return sniffResult{header: header, layout: LayoutDegenerate, delimiter: ';'}, nil
			}
			if len(parts) > 8 {
				parts = parts[:8]
			}
			return sniffResult{header: parts, layout: LayoutDegenerate, delimiter: ';'}, nil
		}
	}

	for _, delim := range []rune{';', ',', '\t'} {
		row, err := readFirstRecord(raw, delim)
		if err != nil {
			continue
		}
		if len(row) > 1 {
			return sniffResult{header: trimAll(row), layout: LayoutNormal, delimiter: delim}, nil
		}
	}

	row, err := readFirstRecord(raw, ',')
	if err != nil {
		return sniffResult{}, err
	}
	return sniffResult{header: trimAll(row), layout: LayoutNormal, delimiter: ','}, nil
}

func firstLineOf(raw []byte) string {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	return strings.TrimRight(string(line), "\r")
}

func readFirstRecord(raw []byte, delim rune) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

// readRecords parses all records of raw using the detected delimiter,
// header row included. Variable field counts are allowed so that damaged
// rows still reach the extractor, which decides row by row.
func readRecords(raw []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// dataLines returns the physical lines after the first one, empty lines
// dropped. Used by the degenerate layout where records are raw lines, not
// CSV records.
func dataLines(raw []byte) []string {
	lines := strings.Split(string(raw), "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(strings.TrimRight(l, "\r"))
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
