package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/verdant-studio/portal-api/internal/application/auth"
	"github.com/verdant-studio/portal-api/internal/application/content"
	fileapp "github.com/verdant-studio/portal-api/internal/application/file"
	"github.com/verdant-studio/portal-api/internal/application/message"
	"github.com/verdant-studio/portal-api/internal/application/object"
	"github.com/verdant-studio/portal-api/internal/application/project"
	"github.com/verdant-studio/portal-api/internal/application/user"
	"github.com/verdant-studio/portal-api/internal/config"
	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/infrastructure/dynamo"
	"github.com/verdant-studio/portal-api/internal/infrastructure/google"
	jwtinfra "github.com/verdant-studio/portal-api/internal/infrastructure/jwt"
	s3infra "github.com/verdant-studio/portal-api/internal/infrastructure/s3"
	"github.com/verdant-studio/portal-api/internal/infrastructure/smtp"
	"github.com/verdant-studio/portal-api/internal/infrastructure/sns"
	"github.com/verdant-studio/portal-api/internal/transport/http/handler"
	appmiddleware "github.com/verdant-studio/portal-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	VerificationRepo *dynamo.VerificationRepo
	ObjectRepo       *dynamo.ObjectRepo
	ProjectRepo      *dynamo.ProjectRepo
	FileRepo         *dynamo.FileRepo
	MessageRepo      *dynamo.MessageRepo
	MapPointRepo     *dynamo.MapPointRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	GoogleVerifier   *google.Verifier
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to the login endpoints.
	loginRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:         deps.UserRepo,
		VerificationRepo: deps.VerificationRepo,
		Tokens:           deps.JWTProvider,
		Mailer:           deps.Mailer,
		SMSSender:        deps.SMSSender,
		GoogleVerifier:   googleOrNil(deps.GoogleVerifier),
		CodeTTL:          cfg.LoginCodeTTL,
	})
	userSvc := user.NewService(deps.UserRepo)
	objectSvc := object.NewService(deps.ObjectRepo)
	projectSvc := project.NewService(project.ServiceDeps{Projects: deps.ProjectRepo, Objects: deps.ObjectRepo})
	fileSvc := fileapp.NewService(fileapp.ServiceDeps{Files: deps.FileRepo, Objects: deps.ObjectRepo, Blobs: deps.S3Store})
	messageSvc := message.NewService(message.ServiceDeps{Messages: deps.MessageRepo, Objects: deps.ObjectRepo})
	contentSvc := content.NewService(deps.MapPointRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	objectH := handler.NewObjectHandler(objectSvc)
	projectH := handler.NewProjectHandler(projectSvc)
	fileH := handler.NewFileHandler(fileSvc)
	messageH := handler.NewMessageHandler(messageSvc)
	mapH := handler.NewMapPointHandler(contentSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Ping)
		r.With(loginRL.Limit).Post("/auth/login", authH.Login)
		r.With(loginRL.Limit).Post("/auth/master/login", authH.MasterLogin)
		r.With(loginRL.Limit).Post("/auth/code", authH.RequestCode)
		r.With(loginRL.Limit).Post("/auth/code/verify", authH.VerifyCode)
		r.With(loginRL.Limit).Post("/auth/google", authH.GoogleLogin)
		r.Get("/map-points", mapH.List)
		r.Get("/portfolio", fileH.ListPortfolio)
		r.Get("/portfolio/{id}", fileH.ServePortfolio)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/me", userH.Me)
			r.Get("/objects/mine", objectH.ListMine)
			r.Get("/objects/{id}", objectH.Get)
			r.Get("/objects/{objectID}/projects", projectH.ListByObject)
			r.Get("/objects/{objectID}/files", fileH.ListByObject)
			r.Get("/objects/{objectID}/messages", messageH.ListByObject)
			r.Post("/objects/{objectID}/messages", messageH.Post)
			r.Get("/projects/{id}", projectH.Get)
			r.Get("/files/{id}", fileH.Download)

			// Staff routes (admin and master)
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.StaffRoles...))

				r.Get("/users", userH.List)
				r.Get("/users/exists", userH.Exists)
				r.Get("/users/{id}", userH.Get)
				r.Put("/users/{id}", userH.Update)

				r.Get("/objects", objectH.List)
				r.Post("/objects", objectH.Create)
				r.Put("/objects/{id}", objectH.Update)
				r.Delete("/objects/{id}", objectH.Delete)

				r.Post("/objects/{objectID}/projects", projectH.Create)
				r.Put("/projects/{id}", projectH.Update)
				r.Delete("/projects/{id}", projectH.Delete)

				r.Post("/files/{folder}", fileH.Upload)
				r.Delete("/files/{id}", fileH.Delete)

				r.Post("/map-points", mapH.Create)
				r.Put("/map-points/{id}", mapH.Update)
				r.Delete("/map-points/{id}", mapH.Delete)
			})

			// Master-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleMaster))

				r.Post("/users", userH.Create)
				r.Delete("/users/{id}", userH.Delete)
				r.Post("/users/{id}/reset-password", userH.ResetPassword)
			})
		})
	})

	return r
}

// googleOrNil keeps the auth service's verifier nil when Google login is not
// configured, so the typed-nil pointer never masquerades as a live verifier.
func googleOrNil(v *google.Verifier) auth.GoogleVerifier {
	if v == nil {
		return nil
	}
	return v
}
