// Package service contains the application service for credential generation,
// strength evaluation and per-session history.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/goph-passgen/internal/crypto"
	"github.com/and161185/goph-passgen/internal/errs"
	"github.com/and161185/goph-passgen/internal/generator"
	"github.com/and161185/goph-passgen/internal/history"
	"github.com/and161185/goph-passgen/internal/metrics"
	"github.com/and161185/goph-passgen/internal/model"
	"github.com/and161185/goph-passgen/internal/session"
	"github.com/and161185/goph-passgen/internal/strength"
)

// PassService defines generation, evaluation and history operations.
type PassService interface {
	// Generate creates a credential; with a non-nil sessionID it is recorded in that session's history.
	Generate(ctx context.Context, sessionID uuid.UUID, cfg model.GenerationConfig) (model.Generation, error)
	// Evaluate scores a caller-supplied string.
	Evaluate(ctx context.Context, password string) model.StrengthReport
	// NewSession starts a history session.
	NewSession(ctx context.Context) (session.Token, error)
	// History lists the session's credentials, newest first.
	History(ctx context.Context, sessionID uuid.UUID) ([]model.Credential, error)
	// ClearHistory empties the session's history.
	ClearHistory(ctx context.Context, sessionID uuid.UUID) error
	// ExportHistory writes the session's history as CSV.
	ExportHistory(ctx context.Context, sessionID uuid.UUID, w io.Writer) error
}

// Event describes a generated credential without its value.
type Event struct {
	CredentialID uuid.UUID
	SessionID    uuid.UUID
	Mode         model.Mode
	Fingerprint  string
	TotalScore   int
	CreatedAt    time.Time
}

// Listener receives an Event after every successful generation.
type Listener func(Event)

type PassServiceImpl struct {
	gen      *generator.Generator
	est      *strength.Estimator
	sessions *session.Issuer
	history  *history.Registry
	fp       *crypto.Fingerprinter
	log      *zap.Logger

	mu        sync.RWMutex
	listeners []Listener
}

// NewPassService wires the service. A nil logger disables logging.
func NewPassService(
	gen *generator.Generator,
	est *strength.Estimator,
	sessions *session.Issuer,
	hist *history.Registry,
	fp *crypto.Fingerprinter,
	log *zap.Logger,
) *PassServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &PassServiceImpl{gen: gen, est: est, sessions: sessions, history: hist, fp: fp, log: log}
}

// OnGenerated registers l. Listeners run synchronously, in registration order.
func (s *PassServiceImpl) OnGenerated(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Generate validates cfg, generates, scores and optionally records the credential.
func (s *PassServiceImpl) Generate(ctx context.Context, sessionID uuid.UUID, cfg model.GenerationConfig) (model.Generation, error) {
	if err := ctx.Err(); err != nil {
		return model.Generation{}, err
	}
	cred, err := s.gen.Generate(cfg)
	if err != nil {
		var ce *errs.ConfigError
		if errors.As(err, &ce) {
			metrics.GenerationErrorsTotal.WithLabelValues(string(ce.Kind)).Inc()
			s.log.Debug("generation rejected", zap.String("kind", string(ce.Kind)), zap.String("field", ce.Field))
			return model.Generation{}, err
		}
		metrics.GenerationErrorsTotal.WithLabelValues("internal").Inc()
		s.log.Error("generation failed", zap.Error(err))
		return model.Generation{}, fmt.Errorf("generate: %w", err)
	}

	out := model.Generation{Credential: cred, Strength: s.est.Evaluate(cred.Value)}
	if cred.Config.Mode == model.ModePassphrase {
		out.PassphraseEntropyBits = generator.PassphraseEntropyBits(cred.Config.Passphrase.WordCount, s.gen.WordListSize())
	}

	if sessionID != uuid.Nil {
		s.history.Get(sessionID).Record(cred)
	}

	metrics.GeneratedTotal.WithLabelValues(cred.Config.Mode.String()).Inc()
	metrics.StrengthScore.Observe(float64(out.Strength.TotalScore))

	ev := Event{
		CredentialID: cred.ID,
		SessionID:    sessionID,
		Mode:         cred.Config.Mode,
		Fingerprint:  s.fp.Fingerprint(cred.Value),
		TotalScore:   out.Strength.TotalScore,
		CreatedAt:    cred.CreatedAt,
	}
	s.log.Info("generated",
		zap.String("id", ev.CredentialID.String()),
		zap.String("mode", ev.Mode.String()),
		zap.String("fingerprint", ev.Fingerprint),
		zap.Int("score", ev.TotalScore),
		zap.Bool("recorded", sessionID != uuid.Nil),
	)
	s.notify(ev)
	return out, nil
}

// Evaluate scores password.
func (s *PassServiceImpl) Evaluate(_ context.Context, password string) model.StrengthReport {
	r := s.est.Evaluate(password)
	metrics.EvaluatedTotal.Inc()
	if r.IsCommon {
		metrics.CommonDetectedTotal.Inc()
	}
	return r
}

// NewSession issues a session token.
func (s *PassServiceImpl) NewSession(_ context.Context) (session.Token, error) {
	tok, err := s.sessions.Issue()
	if err != nil {
		return session.Token{}, err
	}
	s.log.Info("session started", zap.String("session", tok.SessionID.String()))
	return tok, nil
}

// History returns the session's credentials; an unknown session has an empty history.
func (s *PassServiceImpl) History(_ context.Context, sessionID uuid.UUID) ([]model.Credential, error) {
	if sessionID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	st, ok := s.history.Lookup(sessionID)
	if !ok {
		return []model.Credential{}, nil
	}
	return st.List(), nil
}

// ClearHistory empties the session's history.
func (s *PassServiceImpl) ClearHistory(_ context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return errs.ErrUnauthorized
	}
	if st, ok := s.history.Lookup(sessionID); ok {
		st.Clear()
	}
	return nil
}

// ExportHistory writes the session's history as CSV, newest first.
func (s *PassServiceImpl) ExportHistory(ctx context.Context, sessionID uuid.UUID, w io.Writer) error {
	items, err := s.History(ctx, sessionID)
	if err != nil {
		return err
	}
	return history.WriteCSV(w, items)
}

func (s *PassServiceImpl) notify(ev Event) {
	s.mu.RLock()
	ls := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, l := range ls {
		l(ev)
	}
}
