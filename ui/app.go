package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"curelab/ai"
	"curelab/domain/advisor"
	"curelab/domain/dataset"
	"curelab/domain/histogram"
	"curelab/internal"
)

// maxAdviceInFlight bounds concurrent language-model calls; a new anchor
// selection supersedes but does not cancel an in-flight request.
const maxAdviceInFlight = 2

// App is the HTTP surface over the advisory, histogram and prompt engines.
type App struct {
	router    *chi.Mux
	store     *dataset.Store
	advisor   *advisor.Engine
	histogram *histogram.Builder
	client    ai.AdviceClient
	model     string
	port      string
	adviceSem *semaphore.Weighted
	logger    *internal.Logger
}

// Config holds UI application configuration.
type Config struct {
	Port  string
	Model string
}

// NewApp wires the engines into a router. A nil client means the advice
// feature is disabled, not broken; the handler reports that explicitly.
func NewApp(cfg Config, store *dataset.Store, adv *advisor.Engine, hist *histogram.Builder, client ai.AdviceClient) *App {
	app := &App{
		router:    chi.NewRouter(),
		store:     store,
		advisor:   adv,
		histogram: hist,
		client:    client,
		model:     cfg.Model,
		port:      cfg.Port,
		adviceSem: semaphore.NewWeighted(maxAdviceInFlight),
		logger:    internal.NewDefaultLogger(),
	}
	app.routes()
	return app
}

func (a *App) routes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/records", a.handleRecords)
		r.Get("/advisory", a.handleAdvisory)
		r.Get("/histogram", a.handleHistogram)
		r.Get("/prompt", a.handlePrompt)
		r.Get("/profile", a.handleProfile)
		r.Post("/advice", a.handleAdvice)
	})
}

// Router exposes the handler for serving and tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Serve blocks on the HTTP listener.
func (a *App) Serve() error {
	addr := ":" + a.port
	a.logger.Info("listening on %s (dataset snapshot %s, %d records)",
		addr, a.store.SnapshotID, len(a.store.Records))
	if err := http.ListenAndServe(addr, a.router); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
