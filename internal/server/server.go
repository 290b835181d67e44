package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"salesdash/internal/config"
	"salesdash/internal/dispatch"
	"salesdash/internal/fetchers"
	"salesdash/internal/logger"
	"salesdash/internal/mocks"
	"salesdash/internal/reports"
	"salesdash/internal/storage"
	"salesdash/internal/theme"
)

// Server represents the main application server
type Server struct {
	Config     *config.Config
	Controller *dispatch.Controller
	Builder    *reports.HTMLBuilder
	Storage    storage.StorageClient
	Snapshots  *reports.StorageOrchestrator

	loop         *dispatch.Loop
	mockListener net.Listener
	log          *logger.Logger

	// pageMu keeps navigate, load and serialise of one request together.
	pageMu        sync.Mutex
	snapshotMutex sync.Mutex
}

// NewServer wires the render pipeline from cfg. In mockup mode the bundled
// fixtures are served on a loopback listener and used as the backend.
func NewServer(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithComponent("server")

	store, err := theme.NewStore(cfg.DefaultTheme)
	if err != nil {
		return nil, err
	}
	if cfg.ThemeFile != "" {
		if err := store.LoadFile(cfg.ThemeFile); err != nil {
			return nil, fmt.Errorf("failed to load theme file: %w", err)
		}
		log.Info("Theme file loaded", map[string]interface{}{"path": cfg.ThemeFile})
	}

	s := &Server{Config: cfg, log: log}

	baseURL := cfg.APIBaseURL
	if cfg.MockupMode {
		mock := mocks.NewMockService(cfg.MockToken, log)
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return nil, fmt.Errorf("failed to start mock backend: %w", err)
		}
		s.mockListener = ln
		go func() {
			if err := http.Serve(ln, mock.Handler()); err != nil && !errors.Is(err, net.ErrClosed) {
				log.Error("Mock backend stopped", err)
			}
		}()
		baseURL = "http://" + ln.Addr().String()
		log.Info("Mockup mode enabled", map[string]interface{}{"backend": baseURL, "resources": len(mock.Resources())})
	}

	guard := fetchers.NewGuard(fetchers.Options{
		BaseURL:   baseURL,
		Token:     cfg.APIToken,
		LoginPath: cfg.LoginPath,
		Timeout:   cfg.FetchTimeout,
	}, log)

	s.loop = dispatch.NewLoop()
	s.Controller = dispatch.NewController(
		dispatch.DefaultRegistry(dispatch.NewPalette(cfg.ScatterColorMode)),
		store, guard, s.loop,
		dispatch.Options{SettleDelay: cfg.ThemeSettleDelay, DiscardStale: cfg.DiscardStaleLoads},
		log,
	)

	s.Builder, err = reports.NewHTMLBuilder()
	if err != nil {
		s.Close()
		return nil, err
	}

	s.Storage, err = storage.NewStorageClient(ctx, cfg, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Snapshots = reports.NewStorageOrchestrator(s.Storage, log)

	return s, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.HandleHealth)
	r.Get("/login", s.HandleLogin)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	r.Post("/theme/toggle", s.HandleThemeToggle)
	r.Get("/surfaces/{file}", s.HandleSurface)
	r.Post("/snapshots", s.HandleSnapshot)
	r.Get("/snapshots", s.HandleListSnapshots)
	r.Get("/files/*", s.HandleFileProxy)
	r.Get("/{page}", s.HandlePage)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("Request served", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		})
	})
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Controller != nil {
		s.Controller.Close()
	}
	if s.loop != nil {
		s.loop.Close()
	}
	if s.mockListener != nil {
		s.mockListener.Close()
	}
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
