package convert

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/and161185/goph-passgen/internal/api"
	"github.com/and161185/goph-passgen/internal/errs"
	"github.com/and161185/goph-passgen/internal/model"
	"github.com/and161185/goph-passgen/internal/session"
)

func TestFromGenerateRequest_Random(t *testing.T) {
	t.Parallel()

	cfg, err := FromGenerateRequest(api.GenerateRequest{
		Length: 16, Uppercase: true, Numbers: true, ExcludeSimilar: true, CustomSymbols: "#",
	})
	require.NoError(t, err)
	assert.Equal(t, model.GenerationConfig{
		Length:           16,
		Categories:       model.Uppercase | model.Digit,
		ExcludeAmbiguous: true,
		CustomSymbols:    "#",
		Mode:             model.ModeRandom,
	}, cfg)
}

func TestFromGenerateRequest_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		req  api.GenerateRequest
		kind errs.Kind
	}{
		"zero_length":   {req: api.GenerateRequest{Length: 0, Lowercase: true}, kind: errs.KindInvalidLength},
		"negative":      {req: api.GenerateRequest{Length: -1, Lowercase: true}, kind: errs.KindInvalidLength},
		"no_categories": {req: api.GenerateRequest{Length: 8}, kind: errs.KindNoCharacterType},
		"bad_mode":      {req: api.GenerateRequest{Length: 8, Lowercase: true, Mode: "emoji"}, kind: errs.KindUnknownMode},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromGenerateRequest(tc.req)
			require.ErrorIs(t, err, errs.ErrInvalidConfig)
			var ce *errs.ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.kind, ce.Kind)
		})
	}
}

func TestFromGenerateRequest_PassphraseIgnoresCharacterFlags(t *testing.T) {
	t.Parallel()

	cfg, err := FromGenerateRequest(api.GenerateRequest{Mode: "passphrase", WordCount: 5, Separator: "_", Capitalize: true})
	require.NoError(t, err)
	assert.Equal(t, model.ModePassphrase, cfg.Mode)
	assert.Equal(t, model.PassphraseOptions{WordCount: 5, Separator: "_", CapitalizeWords: true}, cfg.Passphrase)
	assert.Zero(t, cfg.Length)

	assert.Equal(t, cfg, FromPassphraseRequest(api.PassphraseRequest{WordCount: 5, Separator: "_", Capitalize: true}))
}

func TestToGenerateResponse(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	resp := ToGenerateResponse(model.Generation{
		Credential: model.Credential{ID: id, Value: "abc", CreatedAt: at, Config: model.GenerationConfig{Mode: model.ModePassphrase}},
		Strength:   model.StrengthReport{TotalScore: 3, CrackTime: model.CrackHoursToDays},
	})
	assert.Equal(t, "abc", resp.Password)
	assert.Equal(t, id.String(), resp.ID)
	assert.Equal(t, "passphrase", resp.Mode)
	assert.Equal(t, at, resp.CreatedAt)
	require.NotNil(t, resp.Strength)
	assert.Equal(t, "hours to days", resp.Strength.CrackTime)
	assert.Equal(t, 3, resp.Strength.CrackTimeBucket)
	assert.NotNil(t, resp.Strength.Feedback)
}

func TestToHistoryResponse(t *testing.T) {
	t.Parallel()

	out := ToHistoryResponse(nil)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)

	out = ToHistoryResponse([]model.Credential{{Value: "b"}, {Value: "a"}})
	require.Len(t, out.Items, 2)
	assert.Equal(t, "b", out.Items[0].Password)
	assert.Equal(t, "random", out.Items[0].Mode)
}

func TestToSessionResponse(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())
	exp := time.Now().Add(time.Hour)
	out := ToSessionResponse(session.Token{Value: "tok", SessionID: id, ExpiresAt: exp})
	assert.Equal(t, api.SessionResponse{Token: "tok", SessionID: id.String(), ExpiresAt: exp}, out)
}
