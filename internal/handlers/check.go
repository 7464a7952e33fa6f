package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/TwigBush/keyrules-go/internal/authz"
	"github.com/TwigBush/keyrules-go/internal/httpx"
	"github.com/TwigBush/keyrules-go/internal/policy"
	"github.com/TwigBush/keyrules-go/internal/trace"
)

type CheckHandler struct {
	be authz.Backend
}

func NewCheckHandler(be authz.Backend) *CheckHandler {
	return &CheckHandler{be: be}
}

type subjectFacts struct {
	Username string   `json:"username"`
	Groups   []string `json:"groups"`
	Local    bool     `json:"local"`
	Active   bool     `json:"active"`
}

type checkRequest struct {
	Action  string       `json:"action"`
	Subject subjectFacts `json:"subject"`
}

type checkResponse struct {
	DecisionID string         `json:"decision_id"`
	Outcome    policy.Outcome `json:"outcome"`
	Reason     string         `json:"reason,omitempty"`
}

func (h *CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Action == "" {
		httpx.WriteError(w, http.StatusBadRequest, "action is required")
		return
	}

	id := uuid.NewString()

	// A request without a resolved subject must never be authorized:
	// the check does not run on a partial context.
	if req.Subject.Username == "" {
		slog.Warn("check without resolved subject",
			"trace", trace.From(r.Context()), "decision_id", id, "action", req.Action)
		httpx.WriteJSON(w, http.StatusOK, checkResponse{
			DecisionID: id,
			Outcome:    policy.OutcomeNotAuthorized,
			Reason:     "subject_unresolved",
		})
		return
	}

	sub := policy.Subject{
		Username: req.Subject.Username,
		Groups:   req.Subject.Groups,
		Local:    req.Subject.Local,
		Active:   req.Subject.Active,
	}
	out, err := h.be.Check(r.Context(), authz.Request{Action: req.Action, Subject: sub})
	if err != nil {
		// Backend failure fails closed.
		slog.Error("check failed",
			"trace", trace.From(r.Context()), "decision_id", id, "action", req.Action, "err", err)
		httpx.WriteJSON(w, http.StatusOK, checkResponse{
			DecisionID: id,
			Outcome:    policy.OutcomeNotAuthorized,
			Reason:     "backend_error",
		})
		return
	}

	slog.Info("decision",
		"trace", trace.From(r.Context()),
		"decision_id", id,
		"action", req.Action,
		"user", sub.Username,
		"outcome", out.String(),
	)
	httpx.WriteJSON(w, http.StatusOK, checkResponse{DecisionID: id, Outcome: out})
}
