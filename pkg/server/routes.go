package server

import (
	"net/http"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/riandyrn/otelchi"

	"github.com/nerlens/nerlens/internal"
	"github.com/nerlens/nerlens/pkg/auth"
	"github.com/nerlens/nerlens/pkg/models"
	"github.com/nerlens/nerlens/pkg/ner"
	"github.com/nerlens/nerlens/pkg/server/apihandlers"
)

var log = internal.GetLogger()

const RouterName = "nerlens"

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) (*http.Server, error) {
	router, err := setupRouter(appState)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              appState.Config.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: appState.Config.Server.ReadHeaderTimeout,
	}, nil
}

// @title			nerlens REST API
// @version		0.x
// @BasePath		/api/v1
// @schemes		http https
func setupRouter(appState *models.AppState) (*chi.Mux, error) {
	cfg := appState.Config
	maxRequestSize, err := cfg.Server.MaxRequestBytes()
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(ApplyCustomHeaders(cfg.Server.CustomHeaders))
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(middleware.RequestSize(maxRequestSize))
	router.Use(otelchi.Middleware(
		RouterName,
		otelchi.WithChiRoutes(router),
		otelchi.WithRequestMethodInSpanName(true),
	))

	if cfg.Auth.Required {
		log.Info("JWT authentication required")
		verifier, err := auth.JWTVerifier(cfg)
		if err != nil {
			return nil, err
		}
		router.Use(verifier)
		router.Use(jwtauth.Authenticator)
	}

	pipeline := ner.NewPipeline(
		appState.Recognizer,
		ner.WithMaxTextLength(cfg.NER.MaxTextLength),
	)

	// Unversioned path kept for existing clients
	router.Post("/analyze", apihandlers.AnalyzeHandler(pipeline))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/analyze", func(r chi.Router) {
			r.Post("/", apihandlers.AnalyzeHandler(pipeline))
			r.Post("/summary", apihandlers.AnalyzeSummaryHandler(pipeline))
		})
	})

	return router, nil
}
