package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/muster/muster/internal/core/service"
)

type Handler struct {
	Coordinator *service.Coordinator
	StaticPath  string
	ReadLimit   int64
}

func NewHandler(coordinator *service.Coordinator, staticPath string, readLimit int64) *Handler {
	return &Handler{
		Coordinator: coordinator,
		StaticPath:  staticPath,
		ReadLimit:   readLimit,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/ws", h.ServeWS)

	fs := http.FileServer(http.Dir(h.StaticPath))
	r.Handle("/*", fs)

	return r
}
