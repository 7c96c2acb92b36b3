package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/daktarbari/doctor-directory-api/pkg/config"
)

// Translator converts text into the given target language. Implementations
// must be safe for concurrent use; callers treat failures as non-fatal.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// HTTPTranslator talks to a LibreTranslate-compatible endpoint.
type HTTPTranslator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPTranslator builds a translator client with a per-request timeout.
func NewHTTPTranslator(cfg config.TranslatorConfig) *HTTPTranslator {
	return &HTTPTranslator{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.RequestTimeout},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate requests a translation. Any transport or decode failure is
// returned to the caller, which falls back to the original text.
func (t *HTTPTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	payload, err := json.Marshal(translateRequest{Q: text, Source: "auto", Target: targetLang, Format: "text"})
	if err != nil {
		return "", fmt.Errorf("encode translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call translator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translator returned status %d", resp.StatusCode)
	}

	var decoded translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode translation response: %w", err)
	}
	if decoded.TranslatedText == "" {
		return "", fmt.Errorf("translator returned empty text")
	}
	return decoded.TranslatedText, nil
}
