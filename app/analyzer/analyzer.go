// Package analyzer implements the part-list analysis pipeline: format
// sniffing, column resolution (advisory and heuristic), tolerant row
// extraction and the result aggregate consumed by the UI and the DXF
// generator.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Advisor proposes a per-field column-name guess for raw file text. It is
// best effort: implementations return nil on any failure and are never
// allowed to block an analysis beyond their own timeout.
type Advisor interface {
	Suggest(ctx context.Context, rawText string) *FieldGuess
}

// Result is the aggregate of one analysis run. It is immutable once
// returned; Remap produces a fresh Result rather than editing one in place.
type Result struct {
	Header      []string
	Mapping     Mapping
	Parts       []Part
	Layout      Layout
	Diagnostics []string
	Success     bool
	Err         string
}

// Analyzer runs the pipeline and retains just enough state to re-extract
// after a manual column remap without re-reading or re-sniffing the file.
// Not safe for concurrent use; re-running an analysis replaces prior state.
type Analyzer struct {
	advisor Advisor
	logger  *zap.Logger

	layout    Layout
	delimiter rune
	header    []string
	records   [][]string // normal layout: data records, header excluded
	lines     []string   // degenerate layout: raw data lines
	result    *Result
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAdvisor sets the advisory client consulted once per analysis.
func WithAdvisor(a Advisor) Option {
	return func(an *Analyzer) { an.advisor = a }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(an *Analyzer) { an.logger = l }
}

// New creates an Analyzer. Without options it runs heuristics only and
// logs nowhere.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result returns the aggregate of the last run, nil before the first one.
func (a *Analyzer) Result() *Result {
	return a.result
}

// AnalyzeBytes runs the full pipeline over raw file bytes (UTF-8, optional
// BOM). It always returns a Result; failures are reported through
// Result.Success and Result.Err, never as a half-populated aggregate.
func (a *Analyzer) AnalyzeBytes(ctx context.Context, raw []byte) *Result {
	raw = StripBOM(raw)

	sniffed, err := sniff(raw)
	if err != nil {
		return a.fail(fmt.Sprintf("lecture du fichier: %v", err))
	}

	a.layout = sniffed.layout
	a.delimiter = sniffed.delimiter
	a.header = sniffed.header

	if a.layout == LayoutDegenerate {
		// Positions are fixed in this layout; neither the advisor nor the
		// keyword matcher can change the outcome.
		a.lines = dataLines(raw)
		a.records = nil
		return a.finishDegenerate()
	}

	records, err := readRecords(raw, a.delimiter)
	if err != nil {
		return a.fail(fmt.Sprintf("lecture du fichier: %v", err))
	}
	if len(records) > 0 {
		records = records[1:]
	}
	a.records = records
	a.lines = nil

	guess := a.consultAdvisor(ctx, raw)
	mapping, diags := Resolve(a.header, guess)

	return a.finishNormal(mapping, diags)
}

// AnalyzeRows runs the pipeline over a pre-parsed table (XLSX input). The
// first row is the header; rawText is the reconstructed file text handed
// to the advisor.
func (a *Analyzer) AnalyzeRows(ctx context.Context, rows [][]string, rawText string) *Result {
	if len(rows) == 0 {
		return a.fail("fichier vide")
	}

	a.layout = LayoutNormal
	a.delimiter = 0
	a.header = trimAll(rows[0])
	a.records = rows[1:]
	a.lines = nil

	guess := a.consultAdvisor(ctx, []byte(rawText))
	mapping, diags := Resolve(a.header, guess)

	return a.finishNormal(mapping, diags)
}

// Remap overwrites one mapping entry with a header known to the current
// header set and re-runs extraction against the retained rows. Returns
// false, leaving prior state untouched, when the header is not a member of
// the header set or when the degenerate layout is loaded (its positions are
// not re-mappable).
func (a *Analyzer) Remap(field Field, header string) bool {
	if a.result == nil || a.layout == LayoutDegenerate {
		return false
	}
	if !contains(a.header, header) {
		return false
	}

	mapping := a.result.Mapping.Clone()
	mapping[field] = header

	a.logger.Info("colonne remappée",
		zap.String("field", string(field)),
		zap.String("header", header))

	a.finishNormal(mapping, nil)
	return true
}

// consultAdvisor invokes the advisory client at most once per analysis.
// Everything that can go wrong degrades to a nil guess.
func (a *Analyzer) consultAdvisor(ctx context.Context, raw []byte) *FieldGuess {
	if a.advisor == nil {
		return nil
	}
	guess := a.advisor.Suggest(ctx, string(raw))
	if guess == nil {
		a.logger.Debug("pas de suggestion du service de détection")
		return nil
	}
	if !guess.MandatoryComplete() {
		a.logger.Debug("suggestion incomplète sur les colonnes obligatoires, ignorée")
		return nil
	}
	return guess
}

func (a *Analyzer) finishDegenerate() *Result {
	parts := extractDegenerate(a.lines)

	mapping := make(Mapping, len(degeneratePositions))
	for pos, f := range degeneratePositions {
		if pos < len(a.header) {
			mapping[f] = a.header[pos]
		}
	}

	a.logger.Info("analyse terminée",
		zap.String("layout", a.layout.String()),
		zap.Int("parts", len(parts)))

	a.result = &Result{
		Header:  a.header,
		Mapping: mapping,
		Parts:   parts,
		Layout:  LayoutDegenerate,
		Success: true,
	}
	return a.result
}

func (a *Analyzer) finishNormal(mapping Mapping, diags []string) *Result {
	if missing := mapping.MissingMandatory(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		errMsg := "colonnes obligatoires manquantes: " + strings.Join(names, ", ")
		a.logger.Warn("extraction annulée", zap.Strings("missing", names))

		a.result = &Result{
			Header:      a.header,
			Mapping:     mapping,
			Layout:      LayoutNormal,
			Diagnostics: diags,
			Success:     false,
			Err:         errMsg,
		}
		return a.result
	}

	parts, rowDiags := extractNormal(a.records, a.header, mapping, true)
	for _, d := range rowDiags {
		a.logger.Debug("ligne ignorée", zap.String("reason", d))
	}
	diags = append(diags, rowDiags...)

	a.logger.Info("analyse terminée",
		zap.String("layout", a.layout.String()),
		zap.Int("parts", len(parts)),
		zap.Int("skipped_rows", len(rowDiags)))

	a.result = &Result{
		Header:      a.header,
		Mapping:     mapping,
		Parts:       parts,
		Layout:      LayoutNormal,
		Diagnostics: diags,
		Success:     true,
	}
	return a.result
}

func (a *Analyzer) fail(msg string) *Result {
	a.logger.Error("analyse échouée", zap.String("error", msg))
	a.result = &Result{Err: msg}
	return a.result
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
