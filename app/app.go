// Package app wires the pipeline together: settings, the analysis cache,
// the advisory client, the analyzer and the DXF generator. The UI layers
// (interactive terminal, batch command) only ever talk to App.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"dxfgen/app/advisor"
	"dxfgen/app/analyzer"
	"dxfgen/app/cache"
	"dxfgen/app/dxf"
	"dxfgen/app/fileloader"
	"dxfgen/app/settings"
)

// App owns the services and the state of the current analysis. Not safe
// for concurrent use: a new analysis replaces the previous one.
type App struct {
	Settings settings.Settings

	logger    *zap.Logger
	cache     *cache.Cache
	advisor   analyzer.Advisor
	generator *dxf.Generator

	analyzer *analyzer.Analyzer
	filePath string
}

// New builds an App from the effective settings.
func New(logger *zap.Logger) *App {
	return NewWithSettings(settings.GetEffectiveSettings(), logger)
}

// NewWithSettings builds an App from explicit settings.
func NewWithSettings(s settings.Settings, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	var adv analyzer.Advisor
	if s.AdvisoryEnabled {
		adv = advisor.New(
			s.OllamaURL,
			s.OllamaModel,
			time.Duration(s.AdvisoryTimeoutSeconds)*time.Second,
			logger,
		)
	}

	return &App{
		Settings:  s,
		logger:    logger,
		cache:     cache.New(s.CacheMaxEntries, logger),
		advisor:   adv,
		generator: dxf.NewGenerator(s.OutputDir, logger),
	}
}

// AnalyzeFile runs the full pipeline for one part-list file. The returned
// Result reports failures through Success and Err; the error return is
// reserved for being unable to even start (unreadable path).
func (a *App) AnalyzeFile(ctx context.Context, filePath string) (*analyzer.Result, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, err
	}

	key, err := cache.Key(filePath)
	if err != nil {
		return nil, err
	}
	if cached := a.cache.Get(key); cached != nil && cached.Result() != nil {
		a.logger.Debug("résultat servi depuis le cache", zap.String("file", filePath))
		a.analyzer = cached
		a.filePath = filePath
		return cached.Result(), nil
	}

	an := analyzer.New(
		analyzer.WithAdvisor(a.advisor),
		analyzer.WithLogger(a.logger),
	)

	var result *analyzer.Result
	fileType, _ := fileloader.DetectFileTypeAndCompression(filePath)
	switch fileType {
	case fileloader.FileTypeXLSX:
		rows, err := fileloader.ReadXLSXRows(filePath)
		if err != nil {
			return nil, err
		}
		result = an.AnalyzeRows(ctx, rows, fileloader.JoinRowsAsText(rows))
	default:
		raw, warning, err := fileloader.ReadRaw(filePath)
		if err != nil {
			return nil, err
		}
		if warning != "" {
			a.logger.Warn("lecture partielle", zap.String("file", filePath), zap.String("warning", warning))
		}
		result = an.AnalyzeBytes(ctx, raw)
	}

	a.analyzer = an
	a.filePath = filePath
	if result.Success {
		a.cache.Put(key, an)
	}
	return result, nil
}

// Result returns the current analysis aggregate, nil before any analysis.
func (a *App) Result() *analyzer.Result {
	if a.analyzer == nil {
		return nil
	}
	return a.analyzer.Result()
}

// FilePath returns the path of the currently analyzed file.
func (a *App) FilePath() string {
	return a.filePath
}

// Remap overwrites one column mapping entry and re-extracts, without
// re-reading the file or consulting the advisor again. Returns false when
// the header is unknown or no remappable analysis is loaded.
func (a *App) Remap(field analyzer.Field, header string) bool {
	if a.analyzer == nil {
		return false
	}
	return a.analyzer.Remap(field, header)
}

// Generate writes DXF files for the given parts.
func (a *App) Generate(parts []analyzer.Part) (int, []string) {
	return a.generator.Create(parts)
}

// OutputDir returns the DXF output directory.
func (a *App) OutputDir() string {
	return a.generator.OutputDir()
}

// BatchSummary reports the outcome for one file of a batch run.
type BatchSummary struct {
	FilePath string
	Parts    int
	Created  int
	Errors   []string
	Err      string
}

// Batch analyzes and generates drawings for every file matching the
// doublestar pattern. Files failing analysis are reported, not fatal.
func (a *App) Batch(ctx context.Context, pattern string) ([]BatchSummary, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("motif %q invalide: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("aucun fichier ne correspond à %q", pattern)
	}

	summaries := make([]BatchSummary, 0, len(matches))
	for _, path := range matches {
		summary := BatchSummary{FilePath: path}

		result, err := a.AnalyzeFile(ctx, path)
		switch {
		case err != nil:
			summary.Err = err.Error()
		case !result.Success:
			summary.Err = result.Err
		default:
			summary.Parts = len(result.Parts)
			summary.Created, summary.Errors = a.Generate(result.Parts)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
