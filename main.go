package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dxfgen/app"
	"dxfgen/app/analyzer"
	"dxfgen/app/settings"
	"dxfgen/app/ui"
)

// Version is overridden at build time.
var Version = "dev"

var (
	verbose      bool
	yes          bool
	settingsPath string
	logger       *zap.Logger
)

// maxErrorsShown limits how many generation errors are printed before the
// remainder is summarized.
const maxErrorsShown = 3

var rootCmd = &cobra.Command{
	Use:   "dxfgen [fichier]",
	Short: "Générateur de fichiers DXF à partir de listes de débit",
	Long: `dxfgen lit une liste de débit (CSV, variante legacy point-virgule, XLSX,
éventuellement compressée), détecte automatiquement les colonnes (nom,
longueur, largeur et métadonnées optionnelles) par heuristiques et, si
disponible, via un modèle Ollama, puis génère un fichier DXF par pièce.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("run_id", uuid.New().String()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return runInteractive(cmd.Context(), path)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <fichier>",
	Short: "Analyse un fichier et affiche les colonnes détectées",
	Long: `Analyse le fichier sans générer de DXF: affiche le mapping de colonnes,
les diagnostics d'extraction et les pièces retenues.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd.Context(), args[0])
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <fichier>",
	Short: "Analyse un fichier et génère les fichiers DXF sans interaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), args[0])
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <motif>",
	Short: "Analyse et génère pour tous les fichiers correspondant au motif",
	Long: `Analyse chaque fichier correspondant au motif glob (doublestar, par
exemple "listes/**/*.csv") et génère les fichiers DXF sans interaction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Affiche la version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dxfgen %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "journalisation détaillée")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "fichier de réglages yaml alternatif")
	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "ne pas demander de confirmation")
	rootCmd.AddCommand(analyzeCmd, generateCmd, batchCmd, versionCmd)
}

// newApp builds the App from the effective settings, or from the file named
// by --settings when given.
func newApp() (*app.App, error) {
	if settingsPath == "" {
		return app.New(logger), nil
	}
	s, err := settings.LoadFrom(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("lecture des réglages %s: %w", settingsPath, err)
	}
	return app.NewWithSettings(s, logger), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInteractive(ctx context.Context, path string) error {
	ui.Banner("DXF Generator")
	ui.Box("Générateur de fichiers DXF à partir de listes de débit")
	fmt.Println()

	if path == "" {
		path = ui.PromptString("Fichier à analyser:")
		if path == "" {
			ui.Warning("aucun fichier sélectionné")
			return nil
		}
	}

	application, err := newApp()
	if err != nil {
		return err
	}

	ui.Info("Analyse du fichier: %s", filepath.Base(path))
	var result *analyzer.Result
	err = ui.RunWithSpinner("Analyse en cours...", func() error {
		var analyzeErr error
		result, analyzeErr = application.AnalyzeFile(ctx, path)
		return analyzeErr
	})
	if err != nil {
		return fmt.Errorf("analyse de %s: %w", path, err)
	}

	showMapping(result)

	if !result.Success && result.Err != "" {
		ui.Error("%s", result.Err)
	}
	ui.Success("%d pièces extraites", len(result.Parts))
	fmt.Println()

	if canRemap(result) && !yes && ui.Confirm("Modifier les colonnes?", false) {
		result = remapLoop(application, result)
		fmt.Println()
	}

	if len(result.Parts) == 0 {
		ui.Warning("Aucune donnée valide à traiter.")
		return nil
	}

	if !yes && ui.Confirm(fmt.Sprintf("Voir les %d pièces extraites?", len(result.Parts)), false) {
		showParts(result.Parts)
	}

	ui.Info("Génération des fichiers DXF...")
	var created int
	var genErrs []string
	_ = ui.RunWithSpinner("Génération DXF...", func() error {
		created, genErrs = application.Generate(result.Parts)
		return nil
	})

	ui.Success("Génération terminée: %d fichiers créés", created)
	if len(genErrs) > 0 {
		ui.Warning("%d erreurs:", len(genErrs))
		for i, e := range genErrs {
			if i >= maxErrorsShown {
				ui.Warning("  ... et %d autres erreurs", len(genErrs)-maxErrorsShown)
				break
			}
			ui.Error("  %s", e)
		}
	}
	ui.Info("Fichiers sauvegardés dans: %s", application.OutputDir())
	return nil
}

func showMapping(result *analyzer.Result) {
	ui.Box("Colonnes détectées")
	for _, f := range analyzer.AllFields {
		if header := result.Mapping[f]; header != "" {
			ui.Success("  %s: %s", f.Label(), header)
		} else {
			ui.Warning("  %s: non détectée", f.Label())
		}
	}
	fmt.Println()
}

// canRemap reports whether interactive remapping makes sense for the
// result: the degenerate layout is positional and not re-mappable.
func canRemap(result *analyzer.Result) bool {
	return result.Layout == analyzer.LayoutNormal && len(result.Header) > 0
}

func remapLoop(application *app.App, result *analyzer.Result) *analyzer.Result {
	for {
		labels := make([]string, len(analyzer.AllFields))
		for i, f := range analyzer.AllFields {
			current := result.Mapping[f]
			if current == "" {
				current = "non détectée"
			}
			labels[i] = fmt.Sprintf("%s (%s)", f.Label(), current)
		}
		fieldIdx := ui.SelectOption("Champ à modifier:", labels)
		if fieldIdx < 0 {
			return result
		}
		field := analyzer.AllFields[fieldIdx]

		headerIdx := ui.SelectOption("Colonne à utiliser:", result.Header)
		if headerIdx < 0 {
			continue
		}
		header := result.Header[headerIdx]

		if !application.Remap(field, header) {
			ui.Error("colonne %q inconnue, mapping inchangé", header)
			continue
		}
		result = application.Result()
		ui.Success("Colonnes mises à jour: %d pièces extraites", len(result.Parts))

		if !ui.Confirm("Modifier une autre colonne?", false) {
			return result
		}
	}
}

func showParts(parts []analyzer.Part) {
	headers := []string{"Nom", "Longueur", "Largeur", "Code SAP", "Réf. pièce", "Paquet", "Repère"}
	rows := make([][]string, len(parts))
	for i, p := range parts {
		rows[i] = []string{
			p.Name,
			fmt.Sprintf("%g", p.Length),
			fmt.Sprintf("%g", p.Width),
			p.Extras[analyzer.FieldCodeSAP],
			p.Extras[analyzer.FieldReferencePiece],
			p.Extras[analyzer.FieldPaquet],
			p.Extras[analyzer.FieldRepere],
		}
	}
	ui.PrintTable(headers, rows)
	fmt.Println()
}

func runAnalyze(ctx context.Context, path string) error {
	application, err := newApp()
	if err != nil {
		return err
	}

	result, err := application.AnalyzeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("analyse de %s: %w", path, err)
	}

	showMapping(result)
	if !result.Success {
		ui.Error("%s", result.Err)
	}
	for _, d := range result.Diagnostics {
		ui.Warning("%s", d)
	}
	ui.Success("%d pièces extraites", len(result.Parts))
	if len(result.Parts) > 0 {
		showParts(result.Parts)
	}
	return nil
}

func runGenerate(ctx context.Context, path string) error {
	application, err := newApp()
	if err != nil {
		return err
	}

	result, err := application.AnalyzeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("analyse de %s: %w", path, err)
	}
	if !result.Success {
		return fmt.Errorf("analyse de %s: %s", path, result.Err)
	}
	if len(result.Parts) == 0 {
		ui.Warning("Aucune donnée valide à traiter.")
		return nil
	}

	created, genErrs := application.Generate(result.Parts)
	ui.Success("%d fichiers créés dans %s", created, application.OutputDir())
	for _, e := range genErrs {
		ui.Error("%s", e)
	}
	if len(genErrs) > 0 {
		return fmt.Errorf("%d pièce(s) en échec sur %d", len(genErrs), len(result.Parts))
	}
	return nil
}

func runBatch(ctx context.Context, pattern string) error {
	application, err := newApp()
	if err != nil {
		return err
	}

	summaries, err := application.Batch(ctx, pattern)
	if err != nil {
		return err
	}

	failed := 0
	for _, s := range summaries {
		switch {
		case s.Err != "":
			failed++
			ui.Error("%s: %s", s.FilePath, s.Err)
		case len(s.Errors) > 0:
			ui.Warning("%s: %d pièces, %d fichiers créés, %d erreurs", s.FilePath, s.Parts, s.Created, len(s.Errors))
		default:
			ui.Success("%s: %d pièces, %d fichiers créés", s.FilePath, s.Parts, s.Created)
		}
	}
	ui.Info("Fichiers sauvegardés dans: %s", application.OutputDir())

	if failed > 0 {
		return fmt.Errorf("%d fichier(s) en échec sur %d", failed, len(summaries))
	}
	return nil
}
