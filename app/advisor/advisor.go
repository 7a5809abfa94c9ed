// Package advisor implements the optional column-naming advisory client.
// It asks an Ollama-compatible endpoint to identify the part-list columns
// in raw file text. The client is strictly best effort: any transport,
// status or parse defect yields a nil guess, never an error.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"

	"dxfgen/app/analyzer"
)

// DefaultTimeout bounds the advisory round trip. Once exceeded the analysis
// proceeds on heuristics alone; there is no retry within a run.
const DefaultTimeout = 30 * time.Second

// Client talks to an Ollama-style /api/generate endpoint.
type Client struct {
	client  *http.Client
	baseURL string
	model   string
	logger  *zap.Logger
}

// New creates an advisory client. baseURL is the server root
// (e.g. http://localhost:11434); model names the served model.
func New(baseURL, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		logger:  logger,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Suggest asks the advisory model which headers fill each semantic field.
// It returns nil on any failure; callers treat nil as "no guess".
func (c *Client) Suggest(ctx context.Context, rawText string) *analyzer.FieldGuess {
	reqBody, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: buildPrompt(rawText),
		Stream: false,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("appel au service de détection échoué", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("réponse du service de détection rejetée", zap.Int("status", resp.StatusCode))
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	return parseResponse(body, c.logger)
}

// parseResponse extracts the guess from a /api/generate response body. The
// model reply lives in the "response" string and may wrap the JSON object
// in free text, so parsing is restricted to the substring between the first
// '{' and the last '}'. No further repair is attempted.
func parseResponse(body []byte, logger *zap.Logger) *analyzer.FieldGuess {
	parsed, err := oj.Parse(body)
	if err != nil {
		return nil
	}
	envelope, ok := parsed.(map[string]any)
	if !ok {
		return nil
	}
	text, _ := envelope["response"].(string)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	obj, err := oj.ParseString(text[start : end+1])
	if err != nil {
		logger.Debug("suggestion illisible", zap.Error(err))
		return nil
	}
	fields, ok := obj.(map[string]any)
	if !ok {
		return nil
	}

	str := func(key string) string {
		if v, ok := fields[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}

	return &analyzer.FieldGuess{
		Name:           str("name_column"),
		Length:         str("length_column"),
		Width:          str("width_column"),
		CodeSAP:        str("code_sap_column"),
		ReferenceKit:   str("reference_kit_column"),
		ReferencePiece: str("reference_piece_column"),
		Paquet:         str("paquet_column"),
		Repere:         str("repere_column"),
	}
}
