package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrMissingAPIKey = errors.New("llm api key not configured")

// Options describe el proveedor a construir.
type Options struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// New construye el cliente del proveedor indicado ("gemini" u "openai").
// Sin Model se usa el default de cada proveedor.
func New(ctx context.Context, opts Options, logger *zap.Logger) (LLMClient, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	switch opts.Provider {
	case "", "gemini":
		c, err := NewGeminiClient(ctx, GeminiConfig{APIKey: opts.APIKey, Model: opts.Model}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openai":
		return NewHTTPClient(opts.BaseURL, opts.APIKey, opts.Model, logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
