package handlers

import (
	"net/http"

	"github.com/TwigBush/keyrules-go/internal/httpx"
	"github.com/TwigBush/keyrules-go/internal/version"
)

func Version(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, version.Get())
}
