package handlers

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/infrastructure/config"
	"github.com/alchemorsel/menugen/internal/infrastructure/security"
	"github.com/alchemorsel/menugen/internal/ports/inbound"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/alchemorsel/menugen/pkg/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxRequestBody = 4 << 10

// MenuHandlers serves the session-backed weekly menu API
type MenuHandlers struct {
	menus      inbound.MenuService
	exporter   inbound.ExportService
	catalog    inbound.CatalogService
	sessions   outbound.MenuSessionRepository
	validation *security.ValidationService
	sessionCfg config.SessionConfig
	menuCfg    config.MenuConfig
	logger     *zap.Logger
	now        func() time.Time

	// one writer per session at a time
	locks [64]sync.Mutex
}

// NewMenuHandlers creates a new menu handlers instance
func NewMenuHandlers(
	menus inbound.MenuService,
	exporter inbound.ExportService,
	catalog inbound.CatalogService,
	sessions outbound.MenuSessionRepository,
	validation *security.ValidationService,
	cfg *config.Config,
	logger *zap.Logger,
) *MenuHandlers {
	return &MenuHandlers{
		menus:      menus,
		exporter:   exporter,
		catalog:    catalog,
		sessions:   sessions,
		validation: validation,
		sessionCfg: cfg.Session,
		menuCfg:    cfg.Menu,
		logger:     logger.Named("menu-handlers"),
		now:        time.Now,
	}
}

// Routes mounts the menu and catalog endpoints on r
func (h *MenuHandlers) Routes(r chi.Router) {
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.GetMenu)
		r.Post("/generate", h.GenerateMenu)
		r.Post("/days/{index}/regenerate", h.RegenerateDay)
		r.Post("/breakfast-special/regenerate", h.RegenerateBreakfastSpecial)
		r.Get("/export", h.ExportMenu)
		r.Get("/export/download", h.DownloadMenu)
	})
	r.Get("/catalog", h.GetCatalog)
}

// DefaultWeekLabel formats t as its ISO year and week, e.g. 2024-09
func DefaultWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}

// GenerateMenu handles POST /api/v1/menu/generate
func (h *MenuHandlers) GenerateMenu(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.GenerateMenuCommand
	if r.ContentLength != 0 {
		body := http.MaxBytesReader(w, r.Body, maxRequestBody)
		if err := json.NewDecoder(body).Decode(&cmd); err != nil && err != io.EOF {
			writeError(w, r, h.logger, errors.NewBadRequestError("Request body must be a JSON object").WithCause(err))
			return
		}
	}

	cmd.Week = h.validation.SanitizeWeekLabel(cmd.Week)
	if err := h.validation.ValidateStruct(cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if cmd.Week == "" {
		cmd.Week = DefaultWeekLabel(h.now())
	}
	if cmd.ServingSize == 0 {
		cmd.ServingSize = h.menuCfg.DefaultServingSize
	}

	sessionID := h.ensureSession(w, r)
	unlock := h.lock(sessionID)
	defer unlock()

	m, err := h.menus.GenerateWeeklyMenu(r.Context(), cmd.Week, cmd.ServingSize)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.sessions.Save(r.Context(), sessionID, m); err != nil {
		writeError(w, r, h.logger, errors.NewStorageError("save session menu", err))
		return
	}

	writeSuccess(w, h.logger, http.StatusOK, m, "Weekly menu generated")
}

// GetMenu handles GET /api/v1/menu
func (h *MenuHandlers) GetMenu(w http.ResponseWriter, r *http.Request) {
	m, ok := h.loadMenu(w, r, sessionID(r, h.sessionCfg.CookieName))
	if !ok {
		return
	}
	if m == nil {
		writeError(w, r, h.logger, errors.NewNoMenuError())
		return
	}

	writeSuccess(w, h.logger, http.StatusOK, m, "")
}

// RegenerateDay handles POST /api/v1/menu/days/{index}/regenerate
func (h *MenuHandlers) RegenerateDay(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, h.logger, errors.NewAppError(
			errors.CodeInvalidIndex,
			"Invalid day index",
			fmt.Sprintf("Day index %q is not a number", raw),
		).WithCause(menu.ErrInvalidDayIndex))
		return
	}

	h.mutate(w, r, "Day regenerated", func(current *menu.WeeklyMenu) (*menu.WeeklyMenu, error) {
		return h.menus.RegenerateSingleDay(r.Context(), current, index)
	})
}

// RegenerateBreakfastSpecial handles POST /api/v1/menu/breakfast-special/regenerate
func (h *MenuHandlers) RegenerateBreakfastSpecial(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Weekly breakfast special regenerated", func(current *menu.WeeklyMenu) (*menu.WeeklyMenu, error) {
		return h.menus.RegenerateWeeklyBreakfastSP(r.Context(), current)
	})
}

// ExportMenu handles GET /api/v1/menu/export and returns the payload base64
// encoded in a JSON envelope.
func (h *MenuHandlers) ExportMenu(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.export(w, r)
	if !ok {
		return
	}

	writeSuccess(w, h.logger, http.StatusOK, payload, "Menu exported")
}

// DownloadMenu handles GET /api/v1/menu/export/download
func (h *MenuHandlers) DownloadMenu(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.export(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", payload.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload.Data); err != nil {
		h.logger.Warn("Failed to write export download", zap.Error(err))
	}
}

// GetCatalog handles GET /api/v1/catalog
func (h *MenuHandlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.logger, http.StatusOK, h.catalog.Summary(r.Context()), "")
}

func (h *MenuHandlers) export(w http.ResponseWriter, r *http.Request) (*inbound.ExportPayload, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "text"
	}

	m, ok := h.loadMenu(w, r, sessionID(r, h.sessionCfg.CookieName))
	if !ok {
		return nil, false
	}

	payload, err := h.exporter.Export(r.Context(), m, format)
	if err != nil {
		writeError(w, r, h.logger, err)
		return nil, false
	}
	return payload, true
}

// mutate runs op against the session's menu under the session lock and
// stores the result. A missing menu is passed as nil so op decides the error.
func (h *MenuHandlers) mutate(w http.ResponseWriter, r *http.Request, message string, op func(*menu.WeeklyMenu) (*menu.WeeklyMenu, error)) {
	id := sessionID(r, h.sessionCfg.CookieName)
	unlock := h.lock(id)
	defer unlock()

	current, ok := h.loadMenu(w, r, id)
	if !ok {
		return
	}

	updated, err := op(current)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.sessions.Save(r.Context(), id, updated); err != nil {
		writeError(w, r, h.logger, errors.NewStorageError("save session menu", err))
		return
	}

	writeSuccess(w, h.logger, http.StatusOK, updated, message)
}

func (h *MenuHandlers) loadMenu(w http.ResponseWriter, r *http.Request, id string) (*menu.WeeklyMenu, bool) {
	if id == "" {
		return nil, true
	}

	m, err := h.sessions.Load(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, errors.NewStorageError("load session menu", err))
		return nil, false
	}
	return m, true
}

func (h *MenuHandlers) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := sessionID(r, h.sessionCfg.CookieName); id != "" {
		return id
	}

	id := h.sessions.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionCfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.sessionCfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *MenuHandlers) lock(id string) func() {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(id))
	mu := &h.locks[hash.Sum32()%uint32(len(h.locks))]
	mu.Lock()
	return mu.Unlock
}

func sessionID(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
