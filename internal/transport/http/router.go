package http

import (
	"net/http"
	"time"

	"edublog/internal/domain"
	"edublog/internal/httpx"
	"edublog/internal/observability/middleware"
	"edublog/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Auth        service.AuthService
	Posts       service.PostService
	Reads       service.PostReadService
	Disciplines service.DisciplineService
}

type Options struct {
	CORSOrigins    []string
	LoginRateLimit int // per client IP per minute; 0 disables
	RequestTimeout time.Duration
	Now            func() time.Time
}

func NewRouter(svc Services, opts Options) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	h := &handler{
		auth:        svc.Auth,
		posts:       svc.Posts,
		reads:       svc.Reads,
		disciplines: svc.Disciplines,
		now:         opts.Now,
	}
	authn := NewAuthenticator(svc.Auth)
	teacherOnly := RequireRole(domain.RoleTeacher)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestAndTrace)
	r.Use(middleware.WithMetrics)
	r.Use(chimw.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.HeaderRequestID, middleware.HeaderTraceID},
		ExposedHeaders: []string{middleware.HeaderRequestID, middleware.HeaderTraceID},
		MaxAge:         300,
	}))

	r.NotFound(httpx.StatusHandler(http.StatusNotFound, msgRouteNotFound))
	r.MethodNotAllowed(httpx.StatusHandler(http.StatusMethodNotAllowed, msgMethodNotAllow))

	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.LoginRateLimit > 0 {
				r.Use(httprate.Limit(opts.LoginRateLimit, time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(httpx.StatusHandler(http.StatusTooManyRequests, msgTooManyLogins)),
				))
			}
			r.Post("/login", h.login)
		})
		r.With(authn.Require).Post("/logout", h.logout)
	})

	r.Route("/posts", func(r chi.Router) {
		r.With(authn.Optional).Get("/", h.listPosts)
		r.With(authn.Optional).Get("/search", h.searchPosts)

		r.Group(func(r chi.Router) {
			r.Use(authn.Require)
			r.Get("/{id}", h.getPost)
			r.Post("/{id}/read", h.markRead)
			r.Get("/{id}/read", h.checkRead)

			r.With(teacherOnly).Post("/", h.createPost)
			r.With(teacherOnly).Put("/{id}", h.updatePost)
			r.With(teacherOnly).Delete("/{id}", h.deletePost)
		})
	})

	r.With(authn.Require).Get("/disciplines", h.listDisciplines)

	return r
}
