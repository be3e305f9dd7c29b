package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vacinafacil/api/internal/auth"
	"github.com/vacinafacil/api/internal/calendar"
	"github.com/vacinafacil/api/internal/config"
	httpmiddleware "github.com/vacinafacil/api/internal/http/middleware"
	"github.com/vacinafacil/api/internal/http/respond"
	"github.com/vacinafacil/api/internal/reservation"
	"github.com/vacinafacil/api/internal/storage"
	"github.com/vacinafacil/api/internal/user"
	"github.com/vacinafacil/api/internal/vaccination"
	"github.com/vacinafacil/api/internal/vaccine"
	"github.com/vacinafacil/api/internal/validate"
)

// NewRouter monta os repositórios, serviços e handlers e devolve o roteador
// configurado com a árvore de rotas completa.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, tokens *auth.TokenManager) (http.Handler, error) {
	store, err := storage.NewDiskStore(cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxBytes)
	if err != nil {
		return nil, err
	}

	validator := validate.New()

	userRepo := user.NewRepository(pool)
	userService := user.NewService(userRepo, tokens, cfg.Admin)
	userHandler := user.NewHandler(userService, validator, store, cfg.Upload.MaxBytes)

	vaccineRepo := vaccine.NewRepository(pool)
	vaccineService := vaccine.NewService(vaccineRepo)
	vaccineHandler := vaccine.NewHandler(vaccineService, validator)

	calendarRepo := calendar.NewRepository(pool)
	calendarService := calendar.NewService(calendarRepo, vaccineRepo)
	calendarHandler := calendar.NewHandler(calendarService, validator)

	reservationRepo := reservation.NewRepository(pool)
	reservationService := reservation.NewService(reservationRepo, calendarRepo)
	reservationHandler := reservation.NewHandler(reservationService, validator)

	vaccinationRepo := vaccination.NewRepository(pool)
	vaccinationService := vaccination.NewService(vaccinationRepo, vaccineRepo)
	vaccinationHandler := vaccination.NewHandler(vaccinationService, validator)

	publicLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	authLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(publicLimiter))

		public.Get("/health", health)
		public.Get("/ready", ready(pool))

		public.Post("/user", userHandler.Register)
		public.Post("/user/authentication", userHandler.Authenticate)
		public.Post("/user/authenticationAdmin", userHandler.AuthenticateAdmin)
		public.Post("/user/resetPassword", userHandler.ResetPassword)
	})

	fileServer := http.StripPrefix(cfg.Upload.PublicPath+"/", http.FileServer(http.Dir(store.Dir())))
	r.Get(cfg.Upload.PublicPath+"/*", fileServer.ServeHTTP)

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(tokens, auth.RoleUser))
		private.Use(httpmiddleware.SubjectRateLimit(authLimiter))

		private.Get("/user/profile", userHandler.Profile)
		private.Put("/user/update", userHandler.Update)
		private.Patch("/user/upload", userHandler.Upload)

		private.Post("/reservation", reservationHandler.Create)
		private.Get("/reservation", reservationHandler.List)
		private.Put("/reservation/update/{id}", reservationHandler.Update)
		private.Delete("/reservation/remove/{id}", reservationHandler.Delete)

		private.Post("/vaccination", vaccinationHandler.Create)
		private.Get("/vaccination", vaccinationHandler.List)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(httpmiddleware.Auth(tokens, auth.RoleAdmin))
		admin.Use(httpmiddleware.SubjectRateLimit(authLimiter))

		admin.Get("/user", userHandler.List)
		admin.Delete("/user/remove/{id}", userHandler.Delete)

		admin.Post("/vaccine", vaccineHandler.Create)
		admin.Patch("/vaccine/update/{id}", vaccineHandler.Update)
		admin.Delete("/vaccine/remove/{id}", vaccineHandler.Delete)

		admin.Post("/vaccine-calendar", calendarHandler.Create)
		admin.Put("/vaccine-calendar/update/{id}", calendarHandler.Update)
		admin.Delete("/vaccine-calendar/remove/{id}", calendarHandler.Delete)

		admin.Patch("/reservation/update/status/{id}", reservationHandler.UpdateStatus)
	})

	// Leituras de catálogo aceitam token de qualquer papel.
	r.Group(func(anyToken chi.Router) {
		anyToken.Use(httpmiddleware.AuthAny(tokens))
		anyToken.Use(httpmiddleware.SubjectRateLimit(authLimiter))

		anyToken.Get("/vaccine", vaccineHandler.List)
		anyToken.Get("/vaccine/{id}", vaccineHandler.Get)
		anyToken.Get("/vaccine-calendar", calendarHandler.List)
		anyToken.Get("/vaccine-calendar/{id}", calendarHandler.Get)
	})

	return r, nil
}

func health(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func ready(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			respond.WriteError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		respond.WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
	}
}
