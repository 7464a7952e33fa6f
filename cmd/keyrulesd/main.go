package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/TwigBush/keyrules-go/internal/authority"
	"github.com/TwigBush/keyrules-go/internal/di"
	"github.com/TwigBush/keyrules-go/internal/server"
)

func main() {
	be := di.ProvideBackend()

	deps := server.Deps{Backend: be}
	if a, ok := be.(*authority.Authority); ok {
		deps.Authority = a
	}

	h := server.BuildRouter(deps, server.Options{})

	addr := listenAddr()
	slog.Info("keyrulesd listening", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, h))
}

func listenAddr() string {
	if v := os.Getenv("KEYRULESD_ADDR"); v != "" {
		return v
	}
	return ":8185"
}
