package settings

// Settings holds application settings that can be overridden by the user
// through the settings file.
type Settings struct {
	// OutputDir is where generated DXF files are written.
	OutputDir string `yaml:"output_dir"`
	// OllamaURL is the base URL of the advisory Ollama server.
	OllamaURL string `yaml:"ollama_url"`
	// OllamaModel names the model consulted for column detection.
	OllamaModel string `yaml:"ollama_model"`
	// AdvisoryEnabled toggles the advisory call; heuristics always run.
	AdvisoryEnabled bool `yaml:"advisory_enabled"`
	// AdvisoryTimeoutSeconds bounds the advisory round trip.
	AdvisoryTimeoutSeconds int `yaml:"advisory_timeout_seconds"`
	// CacheMaxEntries caps the analysis result cache.
	CacheMaxEntries int `yaml:"cache_max_entries"`
	// InstanceID is a unique identifier for this installation, generated on
	// first save.
	InstanceID string `yaml:"instance_id,omitempty"`
}

// defaultSettings defines the built-in defaults.
var defaultSettings = Settings{
	OutputDir:              "dxf_output",
	OllamaURL:              "http://localhost:11434",
	OllamaModel:            "gpt-oss:20b",
	AdvisoryEnabled:        true,
	AdvisoryTimeoutSeconds: 30,
	CacheMaxEntries:        32,
}
