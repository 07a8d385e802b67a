package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/goph-passgen/internal/crypto"
	"github.com/and161185/goph-passgen/internal/errs"
	"github.com/and161185/goph-passgen/internal/generator"
	"github.com/and161185/goph-passgen/internal/history"
	"github.com/and161185/goph-passgen/internal/model"
	"github.com/and161185/goph-passgen/internal/session"
	"github.com/and161185/goph-passgen/internal/strength"
)

var strongCfg = model.GenerationConfig{
	Length:           16,
	Categories:       model.Uppercase | model.Lowercase | model.Digit | model.Symbol,
	ExcludeAmbiguous: true,
}

func newTestService(t *testing.T, opts ...history.Option) *PassServiceImpl {
	t.Helper()
	iss, err := session.NewIssuer([]byte("test-key"), time.Hour)
	require.NoError(t, err)
	return NewPassService(
		generator.New(),
		strength.Default(),
		iss,
		history.NewRegistry(time.Hour, opts...),
		crypto.NewFingerprinter([]byte("fp-key")),
		zaptest.NewLogger(t),
	)
}

func TestPassService_Generate(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	g, err := s.Generate(context.Background(), uuid.Nil, strongCfg)
	require.NoError(t, err)
	assert.Len(t, g.Credential.Value, 16)
	assert.Equal(t, 6, g.Strength.TotalScore)
	assert.Zero(t, g.PassphraseEntropyBits)
}

func TestPassService_GenerateInvalid(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	sid := uuid.Must(uuid.NewV4())

	_, err := s.Generate(context.Background(), sid, model.GenerationConfig{Length: 12})
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	items, err := s.History(context.Background(), sid)
	require.NoError(t, err)
	assert.Empty(t, items, "failed generation must not be recorded")
}

func TestPassService_GenerateCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService(t).Generate(ctx, uuid.Nil, strongCfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPassService_Passphrase(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	g, err := s.Generate(context.Background(), uuid.Nil, model.GenerationConfig{
		Mode:       model.ModePassphrase,
		Passphrase: model.PassphraseOptions{WordCount: 4, Separator: "-", CapitalizeWords: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(g.Credential.Value, "-"))
	assert.InDelta(t, generator.PassphraseEntropyBits(4, len(generator.DefaultWords)), g.PassphraseEntropyBits, 1e-9)
	assert.Greater(t, g.Strength.EntropyBits, g.PassphraseEntropyBits, "charset entropy overstates a small word list")
}

func TestPassService_HistoryPerSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestService(t)

	tok, err := s.NewSession(ctx)
	require.NoError(t, err)
	other, err := s.NewSession(ctx)
	require.NoError(t, err)

	var generated []string
	for i := 0; i < 7; i++ {
		g, err := s.Generate(ctx, tok.SessionID, strongCfg)
		require.NoError(t, err)
		generated = append(generated, g.Credential.Value)
	}
	_, err = s.Generate(ctx, uuid.Nil, strongCfg)
	require.NoError(t, err)

	items, err := s.History(ctx, tok.SessionID)
	require.NoError(t, err)
	require.Len(t, items, 5)
	for i, it := range items {
		assert.Equal(t, generated[6-i], it.Value)
	}

	otherItems, err := s.History(ctx, other.SessionID)
	require.NoError(t, err)
	assert.Empty(t, otherItems)

	var buf bytes.Buffer
	require.NoError(t, s.ExportHistory(ctx, tok.SessionID, &buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, history.CSVHeader, lines[0])

	require.NoError(t, s.ClearHistory(ctx, tok.SessionID))
	items, err = s.History(ctx, tok.SessionID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPassService_HistoryRequiresSession(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	_, err := s.History(ctx, uuid.Nil)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.ErrorIs(t, s.ClearHistory(ctx, uuid.Nil), errs.ErrUnauthorized)
	assert.ErrorIs(t, s.ExportHistory(ctx, uuid.Nil, &bytes.Buffer{}), errs.ErrUnauthorized)
}

func TestPassService_HistoryDedup(t *testing.T) {
	t.Parallel()

	s := newTestService(t, history.WithDedup(true))
	ctx := context.Background()
	sid := uuid.Must(uuid.NewV4())

	cfg := model.GenerationConfig{Length: 1, Categories: model.Digit, ExcludeAmbiguous: true}
	for i := 0; i < 40; i++ {
		_, err := s.Generate(ctx, sid, cfg)
		require.NoError(t, err)
	}
	items, err := s.History(ctx, sid)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, it := range items {
		assert.False(t, seen[it.Value], "duplicate %q with dedup on", it.Value)
		seen[it.Value] = true
	}
}

func TestPassService_OnGenerated(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	var events []Event
	s.OnGenerated(func(ev Event) { events = append(events, ev) })

	sid := uuid.Must(uuid.NewV4())
	g, err := s.Generate(context.Background(), sid, strongCfg)
	require.NoError(t, err)
	_, err = s.Generate(context.Background(), sid, model.GenerationConfig{})
	require.Error(t, err)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, g.Credential.ID, ev.CredentialID)
	assert.Equal(t, sid, ev.SessionID)
	assert.Equal(t, model.ModeRandom, ev.Mode)
	assert.Equal(t, 6, ev.TotalScore)
	assert.Equal(t, crypto.NewFingerprinter([]byte("fp-key")).Fingerprint(g.Credential.Value), ev.Fingerprint)
	assert.NotContains(t, ev.Fingerprint, g.Credential.Value)
}

func TestPassService_Evaluate(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	r := s.Evaluate(context.Background(), "Password123")
	assert.True(t, r.IsCommon)
	assert.Equal(t, 3, r.TotalScore)
	assert.Zero(t, s.Evaluate(context.Background(), "").TotalScore)
}
