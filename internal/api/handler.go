package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"farmaapp/m/domain"
	"farmaapp/m/internal/report"
	"farmaapp/m/internal/repository"
	"farmaapp/m/internal/settings"
)

// Handler bundles dependencies for HTTP handlers. The UI calls these
// endpoints synchronously and renders returned data or surfaced errors.
type Handler struct {
	items     *repository.Repository
	settings  *settings.Store
	reports   *report.Exporter
	exportDir string
	log       *zap.SugaredLogger
}

// New constructs a Handler.
func New(items *repository.Repository, st *settings.Store, reports *report.Exporter, exportDir string, log *zap.SugaredLogger) *Handler {
	return &Handler{items: items, settings: st, reports: reports, exportDir: exportDir, log: log}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.listItems)
		r.Post("/", h.addItem)
		r.Put("/{id}", h.updateItem)
		r.Delete("/{id}", h.deleteItem)
	})

	r.Get("/types", h.listTypes)

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.getSettings)
		r.Put("/", h.saveSettings)
	})

	r.Post("/export", h.exportPDF)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Item handlers

func filterFromQuery(r *http.Request) *repository.ExpiryRange {
	atoi := func(key string) int {
		n, _ := strconv.Atoi(r.URL.Query().Get(key))
		return n
	}
	return &repository.ExpiryRange{
		StartMonth: atoi("start_month"),
		StartYear:  atoi("start_year"),
		EndMonth:   atoi("end_month"),
		EndYear:    atoi("end_year"),
	}
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(filterFromQuery(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var input domain.ItemInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.items.Add(input)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var input domain.ItemInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.items.Update(id, input); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if err := h.items.Delete(id); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.items.ListTypes()
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// Settings handlers

type settingsRequest struct {
	PharmacyName string `json:"pharmacy_name"`
	PhoneNumber  string `json:"phone_number"`
	DoctorName   string `json:"doctor_name"`
	DoctorPhone  string `json:"doctor_phone"`
	DarkMode     bool   `json:"dark_mode"`
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.settings.Load())
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	theme := domain.ThemeLight
	if req.DarkMode {
		theme = domain.ThemeDark
	}
	in := domain.Settings{
		PharmacyName: req.PharmacyName,
		PhoneNumber:  req.PhoneNumber,
		DoctorName:   req.DoctorName,
		DoctorPhone:  req.DoctorPhone,
		ThemeMode:    theme,
	}
	if err := h.settings.Save(in); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.settings.Load())
}

// Export handler

type exportRequest struct {
	repository.ExpiryRange
	Dir string `json:"dir"`
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.items.List(&req.ExpiryRange)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	if len(items) == 0 {
		respondError(w, http.StatusBadRequest, "no data to export")
		return
	}

	dir := req.Dir
	if dir == "" {
		dir = h.exportDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.log.Errorw("unable to create export directory", "dir", dir, "error", err)
		respondError(w, http.StatusInternalServerError, "unable to create export directory")
		return
	}

	path := filepath.Join(dir, report.Filename(time.Now()))
	if err := h.reports.Export(items, h.settings.Load(), path); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"path": path})
}

// Helpers

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error(), "field": ve.Field})
		return
	}
	if domain.IsNotFound(err) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.log.Errorw("operation failed", "error", err)
	respondError(w, http.StatusInternalServerError, err.Error())
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
