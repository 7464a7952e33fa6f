package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/TwigBush/keyrules-go/internal/authz"
	"github.com/TwigBush/keyrules-go/internal/httpx"
	"github.com/TwigBush/keyrules-go/internal/policy"
)

type AdminsHandler struct {
	be authz.Backend
}

func NewAdminsHandler(be authz.Backend) *AdminsHandler {
	return &AdminsHandler{be: be}
}

type adminsRequest struct {
	Subject subjectFacts `json:"subject"`
}

type adminsResponse struct {
	Identities []policy.Identity `json:"identities"`
}

func (h *AdminsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The subject is optional here: admin rules contribute regardless.
	var req adminsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub := policy.Subject{
		Username: req.Subject.Username,
		Groups:   req.Subject.Groups,
		Local:    req.Subject.Local,
		Active:   req.Subject.Active,
	}
	ids, err := h.be.Admins(r.Context(), sub)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "admin resolution failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminsResponse{Identities: ids})
}
