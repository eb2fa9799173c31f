package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"simlab/adapters/stats/tests"
	"simlab/app"
	"simlab/domain/core"
	"simlab/domain/simulation"
	"simlab/internal/errors"
)

// App is the JSON API surface: simulate, list stored runs, download
// workbook exports.
type App struct {
	router  *chi.Mux
	service *app.SimulationService
	battery *tests.Battery
}

// NewApp creates the API application
func NewApp(service *app.SimulationService, battery *tests.Battery) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		battery: battery,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/simulate", a.handleSimulate)
		r.Get("/tests", a.handleListTests)
		r.Get("/runs", a.handleListRuns)
		r.Get("/runs/{id}", a.handleGetRun)
		r.Get("/runs/{id}/export", a.handleExportRun)
	})
}

// Start starts the API server
func (a *App) Start(addr string) error {
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the mux for tests
func (a *App) Router() http.Handler {
	return a.router
}

// handleSimulate runs a simulation for the posted parameters and returns
// the run without its trial-level series
func (a *App) handleSimulate(w http.ResponseWriter, r *http.Request) {
	params := simulation.DefaultParams()
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid simulation parameters")
		return
	}

	run, err := a.service.RunSimulation(r.Context(), params)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	// Trial-level series can run to megabytes; the export endpoint
	// carries those.
	run.Series = nil
	a.writeJSON(w, http.StatusOK, run)
}

// handleListTests describes the procedures in the battery
func (a *App) handleListTests(w http.ResponseWriter, r *http.Request) {
	type testInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	descriptions := a.battery.Descriptions()
	out := make([]testInfo, 0, len(descriptions))
	for _, name := range a.battery.Names() {
		out = append(out, testInfo{Name: name, Description: descriptions[name]})
	}
	a.writeJSON(w, http.StatusOK, out)
}

// handleListRuns returns recent stored runs
func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := a.service.ListRuns(r.Context(), limit)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, runs)
}

// handleGetRun fetches one stored run
func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := a.service.GetRun(r.Context(), id)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, run)
}

// handleExportRun re-executes a stored run's parameters and streams the
// workbook. Re-running restores the trial-level series, which the store
// deliberately does not keep; the seed makes the replay exact.
func (a *App) handleExportRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := a.service.GetRun(r.Context(), id)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	run, err := a.service.ReplayRun(r.Context(), stored)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", a.service.ExportContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="run-%s.%s"`, id, a.service.ExportFileExtension()))

	if err := a.service.ExportRun(run, w); err != nil {
		// Headers may already be out; log-level concerns stay in the service
		a.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding failure", http.StatusInternalServerError)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps AppError codes to HTTP statuses
func (a *App) writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidParams:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeDatabaseError:
		status = http.StatusServiceUnavailable
	}
	a.writeError(w, status, err.Error())
}
