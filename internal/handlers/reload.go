package handlers

import (
	"net/http"

	"github.com/TwigBush/keyrules-go/internal/authority"
	"github.com/TwigBush/keyrules-go/internal/httpx"
)

type ReloadHandler struct {
	a *authority.Authority
}

func NewReloadHandler(a *authority.Authority) *ReloadHandler {
	return &ReloadHandler{a: a}
}

type reloadResponse struct {
	Files int `json:"files"`
}

func (h *ReloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.a.Reload()
	httpx.WriteJSON(w, http.StatusOK, reloadResponse{Files: h.a.Ruleset().Len()})
}
