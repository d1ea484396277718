// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	complaintdetailsfeature "github.com/cyvox/console/internal/app/features/complaintdetails"
	complaintsfeature "github.com/cyvox/console/internal/app/features/complaints"
	dashboardfeature "github.com/cyvox/console/internal/app/features/dashboard"
	errorsfeature "github.com/cyvox/console/internal/app/features/errors"
	healthfeature "github.com/cyvox/console/internal/app/features/health"
	loginfeature "github.com/cyvox/console/internal/app/features/login"
	logoutfeature "github.com/cyvox/console/internal/app/features/logout"
	shellfeature "github.com/cyvox/console/internal/app/features/shell"
	usersfeature "github.com/cyvox/console/internal/app/features/users"
	loginstore "github.com/cyvox/console/internal/app/store/logins"
	"github.com/cyvox/console/internal/app/system/auth"
	"github.com/cyvox/console/internal/app/system/metrics"
	"github.com/cyvox/console/internal/app/system/viewroute"
	"github.com/cyvox/console/internal/cyvox"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, and any Startup
// hooks have completed. It creates the session manager and authenticator,
// boots the template engine, builds the CyVox API client, and mounts every
// feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	authenticator, err := auth.NewAuthenticator(appCfg.AdminEmail, appCfg.AdminPassword, logger)
	if err != nil {
		logger.Error("authenticator init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	client := cyvox.New(appCfg.APIBaseURL, nil, logger)

	logins := loginstore.New(deps.AuditMongoDatabase)

	// Every resolved navigation is logged and counted.
	nav := viewroute.NewNavigator()
	nav.Subscribe(func(rt viewroute.Route) {
		metrics.NavigationsTotal.WithLabelValues(string(rt.View)).Inc()
		logger.Debug("navigated",
			zap.String("view", string(rt.View)),
			zap.String("fragment", rt.Fragment()))
	})

	r := chi.NewRouter()

	// Global auth middleware: loads the Principal into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.AuditMongoClient, appCfg.APIBaseURL, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(authenticator, sessionMgr, logins, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logins, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Console views
	dashboardHandler := dashboardfeature.NewHandler(client, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(client, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	complaintsHandler := complaintsfeature.NewHandler(client, logger)
	r.Mount("/complaints", complaintsfeature.Routes(complaintsHandler, sessionMgr))

	detailsHandler := complaintdetailsfeature.NewHandler(client, logger)
	r.Mount("/complaint-details", complaintdetailsfeature.Routes(detailsHandler, sessionMgr))

	// Shell page and fragment navigation
	shellHandler := shellfeature.NewHandler(nav, logger)
	shellHandler.Register(viewroute.ViewDashboard, dashboardHandler.ServeContent)
	shellHandler.Register(viewroute.ViewUsers, usersHandler.ServeContent)
	shellHandler.Register(viewroute.ViewComplaints, complaintsHandler.ServeContent)
	shellHandler.Register(viewroute.ViewComplaintDetails, detailsHandler.ServeContent)
	r.Mount("/", shellfeature.Routes(shellHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	return r, nil
}
