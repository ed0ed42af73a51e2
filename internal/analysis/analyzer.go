// Package analysis builds the inspection prompt, calls the completion service and
// interprets its output.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hyperjump/inspekt/internal/llm"
	"github.com/hyperjump/inspekt/internal/models"
	"github.com/hyperjump/inspekt/pkg/utils"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

// previewBytes bounds how much model output is copied into debug logs.
const previewBytes = 200

// Analyzer turns report text into structured findings.
type Analyzer struct {
	completer llm.Completer
	schema    *jsonschema.Schema
	logger    *zap.Logger
}

// NewAnalyzer returns an Analyzer that sends prompts to completer.
func NewAnalyzer(completer llm.Completer, logger *zap.Logger) (*Analyzer, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{completer: completer, schema: schema, logger: logger}, nil
}

// Analyze sends text to the completion service and returns the parsed result.
// Whitespace-only text fails with models.ErrNoText before any call is made.
func (a *Analyzer) Analyze(ctx context.Context, text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrNoText
	}
	prompt := BuildPrompt(text)
	a.logger.Debug("requesting completion", zap.Int("prompt_bytes", len(prompt)))
	output, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return a.parse(output), nil
}

// parse returns output verbatim when it is valid JSON and {"summary": output} otherwise.
// Valid output is kept raw so the client sees the model's key order and numbers unchanged.
func (a *Analyzer) parse(output string) any {
	raw := bytes.TrimSpace([]byte(output))
	if !json.Valid(raw) {
		if looksLikeJSON(raw) {
			a.logger.Warn("completion looks like truncated JSON, returning raw text as summary",
				zap.Int("output_bytes", len(raw)))
		} else {
			a.logger.Debug("completion is not JSON, returning raw text as summary",
				zap.String("preview", utils.Truncate(output, previewBytes)))
		}
		return models.FallbackAnalysis(output)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err == nil {
		if err := a.schema.Validate(doc); err != nil {
			a.logger.Warn("completion does not match the requested shape", zap.Error(err))
		}
	}
	return json.RawMessage(raw)
}

func looksLikeJSON(b []byte) bool {
	return len(b) > 0 && (b[0] == '{' || b[0] == '[')
}

// CombineText joins the submitted text field and extracted document text with a newline.
func CombineText(text, extracted string) string {
	return text + "\n" + extracted
}
