// Package nlp holds the language-facing pieces of the AI search pipeline:
// best-effort prompt normalization and LLM-backed criteria extraction.
package nlp

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// banglaThreshold is the share of Bengali-script letters above which a prompt
// is treated as predominantly Bangla and sent for translation.
const banglaThreshold = 0.3

// FallbackRecorder counts normalizations that fell back to the original
// prompt after a translation failure.
type FallbackRecorder interface {
	RecordTranslationFallback()
}

// Normalizer rewrites non-English prompts into English before extraction.
// It never blocks the pipeline: on any failure the original text passes
// through unchanged.
type Normalizer struct {
	translator Translator
	targetLang string
	logger     *zap.Logger
	fallbacks  FallbackRecorder
}

// NewNormalizer constructs a Normalizer. translator may be nil, in which case
// every prompt passes through untouched.
func NewNormalizer(translator Translator, targetLang string, logger *zap.Logger, fallbacks FallbackRecorder) *Normalizer {
	if targetLang == "" {
		targetLang = "en"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{translator: translator, targetLang: targetLang, logger: logger, fallbacks: fallbacks}
}

// Normalize returns an English rendering of the prompt when it is detected as
// Bangla, and the prompt itself otherwise or on any translation failure.
func (n *Normalizer) Normalize(ctx context.Context, text string) string {
	if n == nil || n.translator == nil {
		return text
	}
	if strings.TrimSpace(text) == "" || !isPredominantlyBangla(text) {
		return text
	}

	translated, err := n.translator.Translate(ctx, text, n.targetLang)
	if err != nil {
		n.logger.Warn("translation failed, using original prompt", zap.Error(err))
		if n.fallbacks != nil {
			n.fallbacks.RecordTranslationFallback()
		}
		return text
	}
	return translated
}

// isPredominantlyBangla reports whether most letters fall in the Bengali
// Unicode block (U+0980–U+09FF).
func isPredominantlyBangla(text string) bool {
	var letters, bangla int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r >= 0x0980 && r <= 0x09FF {
			bangla++
		}
	}
	if letters == 0 {
		return false
	}
	return float64(bangla)/float64(letters) >= banglaThreshold
}
