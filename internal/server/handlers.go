package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wcharczuk/go-chart/v2"

	"salesdash/internal/config"
	"salesdash/internal/dispatch"
	"salesdash/internal/reports"
	"salesdash/internal/storage"
	"salesdash/internal/surface"
)

var errSurfaceNotFound = errors.New("surface not found")

const loginPage = `<!DOCTYPE html>
<html lang="es"><head><meta charset="UTF-8"><title>Iniciar sesión</title></head>
<body><h1>Iniciar sesión</h1><p>Tu sesión ha expirado. Vuelve a iniciar sesión para ver el dashboard.</p></body></html>`

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	page := ""
	if p := s.Controller.Page(); p != nil {
		page = p.Route
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"theme":     s.Controller.Theme(),
		"page":      page,
	})
}

// HandleLogin is where unauthorized loads are redirected.
func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(loginPage))
}

// HandlePage navigates to the requested page, loads every chart and serves
// the page shell.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	route := "/" + chi.URLParam(r, "page")

	s.pageMu.Lock()
	defer s.pageMu.Unlock()

	page, err := s.Controller.Navigate(ctx, route)
	if errors.Is(err, dispatch.ErrUnknownRoute) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("Navigation failed", err, map[string]interface{}{"route": route})
		http.Error(w, "Navigation failed", http.StatusInternalServerError)
		return
	}

	if err := s.Controller.LoadPage(ctx); err != nil {
		s.log.Error("Page load failed", err, map[string]interface{}{"route": route})
		http.Error(w, "Page load failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var out, redirect string
	err = s.Controller.Do(ctx, func(doc *surface.Document) error {
		if redirect = doc.RedirectTarget(); redirect != "" {
			return nil
		}
		var err error
		out, err = s.Builder.BuildPage(page, s.Controller.Registry().Pages(), doc, s.Controller.Theme())
		return err
	})
	if err != nil {
		s.log.Error("Page render failed", err, map[string]interface{}{"route": route})
		http.Error(w, "Page render failed", http.StatusInternalServerError)
		return
	}
	if redirect != "" {
		http.Redirect(w, r, redirect, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// HandleThemeToggle switches the theme, re-renders the current page and
// sends the browser back to it.
func (s *Server) HandleThemeToggle(w http.ResponseWriter, r *http.Request) {
	s.pageMu.Lock()
	next, err := s.Controller.ToggleTheme(r.Context())
	current := s.Controller.Page()
	s.pageMu.Unlock()
	if err != nil {
		s.log.Error("Theme reload failed", err, map[string]interface{}{"theme": next})
		http.Error(w, "Theme reload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	target := "/dashboard"
	if current != nil {
		target = current.Route
	}
	if ret := r.FormValue("return"); ret != "" {
		if _, ok := s.Controller.Registry().Lookup(ret); ok {
			target = ret
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// HandleSurface serves one surface of the current page: {id}.svg and
// {id}.png export a vector surface, a bare {id} serves a canvas frame.
func (s *Server) HandleSurface(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	id := strings.TrimSuffix(file, ext)

	var (
		body        bytes.Buffer
		contentType string
	)
	err := s.Controller.Do(r.Context(), func(doc *surface.Document) error {
		surf, ok := doc.Surface(id)
		if !ok {
			return errSurfaceNotFound
		}
		theme := s.Controller.Theme()
		switch {
		case ext == ".png":
			contentType = storage.GetContentType(file)
			return surf.Export(&body, chart.PNG, reports.ExportBackground(theme))
		case ext == ".svg" || (ext == "" && surf.Kind() == surface.Vector):
			contentType = storage.GetContentType(id + ".svg")
			return surf.WriteSVG(&body)
		case ext == "":
			out, err := s.Builder.BuildCanvasHTML(surf, theme)
			if err != nil {
				return err
			}
			contentType = "text/html; charset=utf-8"
			body.WriteString(out)
			return nil
		default:
			return errSurfaceNotFound
		}
	})
	if errors.Is(err, errSurfaceNotFound) || errors.Is(err, dispatch.ErrNoPage) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("Surface export failed", err, map[string]interface{}{"surface": id})
		http.Error(w, "Surface export failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body.Bytes())
}

// HandleSnapshot archives every surface of the current page.
func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.snapshotMutex.TryLock() {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":  "Snapshot already in progress",
			"status": "conflict",
		})
		return
	}
	defer s.snapshotMutex.Unlock()

	ctx := r.Context()
	s.pageMu.Lock()
	var snap *reports.Snapshot
	err := s.Controller.Do(ctx, func(doc *surface.Document) error {
		var err error
		snap, err = s.Builder.CollectSnapshot(s.Controller.Page(), s.Controller.Registry().Pages(), doc, s.Controller.Theme())
		return err
	})
	s.pageMu.Unlock()
	if errors.Is(err, dispatch.ErrNoPage) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":  "No page loaded",
			"status": "conflict",
		})
		return
	}
	if err != nil {
		s.log.Error("Snapshot collection failed", err)
		http.Error(w, "Snapshot failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	manifest, err := s.Snapshots.StoreSnapshot(ctx, snap, time.Now())
	if err != nil {
		s.log.Error("Snapshot storage failed", err, map[string]interface{}{"route": snap.Route})
		http.Error(w, "Snapshot failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, manifest)
}

// HandleListSnapshots lists recent snapshots
func (s *Server) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := fmt.Sscanf(limitStr, "%d", &limit); err != nil || parsed != 1 || limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}
	}

	manifests, err := s.Snapshots.ListSnapshots(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list snapshots", err)
		http.Error(w, "Failed to list snapshots: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": manifests,
		"count":     len(manifests),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves stored snapshot files from local storage or GCS
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	filePath := chi.URLParam(r, "*")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		s.log.Warn("File not found in storage", map[string]interface{}{"path": filePath, "error": err.Error()})
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	_, _ = w.Write(fileData)
}
