package router

import (
	"net/http"
	"time"

	"medassist/docs"
	"medassist/internal/adapters/storage/kvgateway"
	mem "medassist/internal/adapters/storage/memory"
	"medassist/internal/domain/medications"
	"medassist/internal/domain/profile"
	"medassist/internal/middleware"
	"medassist/internal/platform/logger"
	"medassist/internal/platform/metrics"
	"medassist/internal/ports/kv"
	"medassist/internal/ports/notifications"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, in-memory.
	Store kv.Store

	Alarms   notifications.Scheduler // puede ser nil: no se programan alertas
	Logger   logger.Logger
	Metrics  *metrics.Metrics
	Location *time.Location
	Limits   medications.Limits
}

// App es el router más los services, para que main pueda restaurar alarmas.
type App struct {
	Handler     http.Handler
	Medications *medications.Service
	Profiles    *profile.Service
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = mem.NewKVStore()
	}

	gw := kvgateway.New(store, log, opts.Metrics)

	// Services por módulo
	profilesSvc := profile.NewService(gw.Profiles(), log)
	medsSvc := medications.NewService(gw, medications.Options{
		Alarms:   opts.Alarms,
		Logger:   log,
		Metrics:  opts.Metrics,
		Limits:   opts.Limits,
		Location: opts.Location,
	})
	medsSvc.OnChange(func(s medications.Snapshot) {
		opts.Metrics.SetInventory(s.Inventory())
	})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	// Rutas por módulo
	profile.RegisterRoutes(r, profilesSvc)

	// Sin perfil no se entra a la app.
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.RequireProfile(profilesSvc.Exists))
		medications.RegisterRoutes(gr, medsSvc)
	})

	return &App{
		Handler:     r,
		Medications: medsSvc,
		Profiles:    profilesSvc,
	}
}

func NewRouter(opts Options) http.Handler {
	return New(opts).Handler
}
