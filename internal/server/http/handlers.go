package httpserver

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/and161185/goph-passgen/internal/api"
	"github.com/and161185/goph-passgen/internal/convert"
)

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req api.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cfg, err := convert.FromGenerateRequest(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	sid, _ := sessionIDFrom(r.Context())
	g, err := h.svc.Generate(r.Context(), sid, cfg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToGenerateResponse(g))
}

func (h *Handler) passphrase(w http.ResponseWriter, r *http.Request) {
	var req api.PassphraseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sid, _ := sessionIDFrom(r.Context())
	g, err := h.svc.Generate(r.Context(), sid, convert.FromPassphraseRequest(req))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToGenerateResponse(g))
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req api.EvaluateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, convert.ToStrengthReport(h.svc.Evaluate(r.Context(), req.Password)))
}

func (h *Handler) newSession(w http.ResponseWriter, r *http.Request) {
	tok, err := h.svc.NewSession(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, convert.ToSessionResponse(tok))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFrom(r.Context())
	items, err := h.svc.History(r.Context(), sid)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToHistoryResponse(items))
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFrom(r.Context())
	if err := h.svc.ClearHistory(r.Context(), sid); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFrom(r.Context())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="passgen-history.csv"`)
	w.Header().Set("Cache-Control", "no-store")
	if err := h.svc.ExportHistory(r.Context(), sid, w); err != nil {
		// headers may already be out; nothing useful to send
		h.log.Warn("history export failed", zap.Error(err))
	}
}
