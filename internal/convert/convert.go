// Package convert maps wire DTOs to domain types and back.
package convert

import (
	"github.com/and161185/goph-passgen/internal/api"
	"github.com/and161185/goph-passgen/internal/errs"
	"github.com/and161185/goph-passgen/internal/model"
	"github.com/and161185/goph-passgen/internal/session"
)

// FromGenerateRequest validates the request shape and builds a GenerationConfig.
// Semantic checks (length range, empty pool, separator) are left to the generator,
// which reports them as *errs.ConfigError.
func FromGenerateRequest(req api.GenerateRequest) (model.GenerationConfig, error) {
	mode, ok := model.ParseMode(req.Mode)
	if !ok {
		return model.GenerationConfig{}, errs.NewConfigError(errs.KindUnknownMode, "mode", "unknown mode %q", req.Mode)
	}

	cfg := model.GenerationConfig{Mode: mode}
	if mode == model.ModePassphrase {
		cfg.Passphrase = model.PassphraseOptions{
			WordCount:       req.WordCount,
			Separator:       req.Separator,
			CapitalizeWords: req.Capitalize,
		}
		return cfg, nil
	}

	cfg.Length = req.Length
	cfg.ExcludeAmbiguous = req.ExcludeSimilar
	cfg.CustomSymbols = req.CustomSymbols
	if req.Uppercase {
		cfg.Categories |= model.Uppercase
	}
	if req.Lowercase {
		cfg.Categories |= model.Lowercase
	}
	if req.Numbers {
		cfg.Categories |= model.Digit
	}
	if req.Symbols {
		cfg.Categories |= model.Symbol
	}
	if cfg.Length < 1 {
		return model.GenerationConfig{}, errs.NewConfigError(errs.KindInvalidLength, "length", "must be >= 1, got %d", cfg.Length)
	}
	if cfg.Categories == 0 {
		return model.GenerationConfig{}, errs.NewConfigError(errs.KindNoCharacterType, "categories", "select at least one character type")
	}
	return cfg, nil
}

// FromPassphraseRequest builds a passphrase GenerationConfig.
func FromPassphraseRequest(req api.PassphraseRequest) model.GenerationConfig {
	return model.GenerationConfig{
		Mode: model.ModePassphrase,
		Passphrase: model.PassphraseOptions{
			WordCount:       req.WordCount,
			Separator:       req.Separator,
			CapitalizeWords: req.Capitalize,
		},
	}
}

// ToGenerateResponse renders a generation result.
func ToGenerateResponse(g model.Generation) api.GenerateResponse {
	r := ToStrengthReport(g.Strength)
	return api.GenerateResponse{
		Password:              g.Credential.Value,
		ID:                    g.Credential.ID.String(),
		Mode:                  g.Credential.Config.Mode.String(),
		CreatedAt:             g.Credential.CreatedAt,
		Strength:              &r,
		PassphraseEntropyBits: g.PassphraseEntropyBits,
	}
}

// ToStrengthReport renders a strength report; Feedback is never nil.
func ToStrengthReport(r model.StrengthReport) api.StrengthReport {
	fb := append([]string{}, r.Feedback...)
	return api.StrengthReport{
		CategoryScore:     r.CategoryScore,
		LengthBonus:       r.LengthBonus,
		TotalScore:        r.TotalScore,
		EntropyBits:       r.EntropyBits,
		UniqueEntropyBits: r.UniqueEntropyBits,
		CrackTime:         r.CrackTime.String(),
		CrackTimeBucket:   int(r.CrackTime),
		Label:             r.Label,
		Persona:           r.Persona,
		Feedback:          fb,
		IsCommon:          r.IsCommon,
		CommonPattern:     r.CommonPattern,
	}
}

// ToHistoryResponse renders history entries in the given order.
func ToHistoryResponse(items []model.Credential) api.HistoryResponse {
	out := api.HistoryResponse{Items: make([]api.HistoryItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, api.HistoryItem{
			ID:        it.ID.String(),
			Password:  it.Value,
			Mode:      it.Config.Mode.String(),
			CreatedAt: it.CreatedAt,
		})
	}
	return out
}

// ToSessionResponse renders an issued session token.
func ToSessionResponse(t session.Token) api.SessionResponse {
	return api.SessionResponse{Token: t.Value, SessionID: t.SessionID.String(), ExpiresAt: t.ExpiresAt}
}
