// Package dxf writes one DXF drawing per part: the part rectangle on a
// dedicated layer plus text annotations for the name, the optional metadata
// and the dimensions.
package dxf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"
	"go.uber.org/zap"

	"dxfgen/app/analyzer"
)

// DefaultOutputDir is where drawings land when no output directory is
// configured.
const DefaultOutputDir = "dxf_output"

const layerName = "PIECES"

// Generator creates DXF files from part records.
type Generator struct {
	outputDir string
	logger    *zap.Logger
}

// NewGenerator creates a Generator writing into outputDir (created on
// demand).
func NewGenerator(outputDir string, logger *zap.Logger) *Generator {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{outputDir: outputDir, logger: logger}
}

// OutputDir returns the directory drawings are written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// Create writes one DXF file per part and returns the number of files
// created together with the per-part error strings. A failing part never
// aborts the batch.
func (g *Generator) Create(parts []analyzer.Part) (int, []string) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return 0, []string{fmt.Sprintf("création du répertoire %s: %v", g.outputDir, err)}
	}

	created := 0
	var errs []string
	for _, part := range parts {
		if err := g.createOne(part); err != nil {
			errs = append(errs, fmt.Sprintf("pièce %s (%gx%g): %v", part.Name, part.Length, part.Width, err))
			continue
		}
		created++
	}

	g.logger.Info("génération DXF terminée",
		zap.Int("created", created),
		zap.Int("errors", len(errs)))

	return created, errs
}

func (g *Generator) createOne(part analyzer.Part) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(layerName, color.Red, table.LT_CONTINUOUS, true); err != nil {
		return err
	}

	l, w := part.Length, part.Width
	if _, err := d.LwPolyline(true,
		[]float64{0, 0},
		[]float64{l, 0},
		[]float64{l, w},
		[]float64{0, w},
	); err != nil {
		return err
	}

	mainSize, infoSize := textSizes(l, w)

	// Name in the middle; yofu/dxf has no anchor support, so center by
	// estimated glyph width.
	nameX := l/2 - estimateTextWidth(part.Name, mainSize)/2
	if _, err := d.Text(part.Name, nameX, w/2, 0, mainSize); err != nil {
		return err
	}

	const margin = 2.0
	lineSpacing := infoSize + 0.5
	if lineSpacing < 2 {
		lineSpacing = 2
	}
	y := w - margin - infoSize

	for _, ann := range annotations(part) {
		if _, err := d.Text(ann, margin, y, 0, infoSize); err != nil {
			return err
		}
		y -= lineSpacing
	}

	dims := fmt.Sprintf("%g x %g", l, w)
	dimX := l/2 - estimateTextWidth(dims, infoSize)/2
	if _, err := d.Text(dims, dimX, margin, 0, infoSize); err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%gx%g.dxf", SanitizeName(part.Name), l, w)
	return d.SaveAs(filepath.Join(g.outputDir, filename))
}

// annotations returns the metadata lines to stack below the top edge, in
// display order, only for values the extraction kept.
func annotations(part analyzer.Part) []string {
	var lines []string
	if v := part.Extras[analyzer.FieldCodeSAP]; v != "" {
		lines = append(lines, "CODE SAP: "+v)
	}
	if v := part.Extras[analyzer.FieldReferencePiece]; v != "" {
		lines = append(lines, "REF: "+v)
	}
	if v := part.Extras[analyzer.FieldPaquet]; v != "" {
		lines = append(lines, "PAQUET: "+v)
	}
	if v := part.Extras[analyzer.FieldRepere]; v != "" {
		lines = append(lines, "REPÈRE: "+v)
	}
	return lines
}

// textSizes scales the main and the info text with the part dimensions.
// Small parts (either side under 50) get clamped tighter so labels stay
// inside the rectangle.
func textSizes(l, w float64) (mainSize, infoSize float64) {
	short := l
	if w < short {
		short = w
	}
	if l < 50 || w < 50 {
		mainSize = clamp(short*0.08, 2, 4)
		infoSize = max(1.5, short*0.03)
	} else {
		mainSize = max(5, short*0.04)
		infoSize = max(2, short*0.02)
	}
	return mainSize, infoSize
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// estimateTextWidth approximates rendered width for centering, assuming an
// average glyph advance of 0.6 em.
func estimateTextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}

// SanitizeName strips characters unsafe for file names, keeping letters,
// digits, spaces, dashes and underscores.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
