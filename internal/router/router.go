package router

import (
	"database/sql"
	"encoding/json"
	"net/http"

	_ "clinic-scheduling/docs"
	mem "clinic-scheduling/internal/adapters/storage/memory"
	pg "clinic-scheduling/internal/adapters/storage/postgres"
	"clinic-scheduling/internal/domain/patients"
	"clinic-scheduling/internal/domain/schedules"
	"clinic-scheduling/internal/middleware"
	"clinic-scheduling/internal/platform/logger"
	"clinic-scheduling/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// nil => logger.Nop()
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Cero => schedules.DefaultLimits.
	Limits schedules.Limits

	// RateLimitRPS <= 0 desactiva el limitador por IP.
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	limits := opts.Limits
	if limits.PerDay <= 0 || limits.PerSlot <= 0 {
		limits = schedules.DefaultLimits
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		patientRepo  patients.Repository
		scheduleRepo schedules.Repository
	)
	if opts.DB != nil {
		patientRepo = pg.NewPatientsRepo(opts.DB)
		scheduleRepo = pg.NewSchedulesRepo(opts.DB)
	} else {
		patientRepo = mem.NewPatientRepo()
		scheduleRepo = mem.NewScheduleRepo()
	}

	// schedules lee pacientes del repo; patients borra en cascada vía schedules
	schedulesSvc := schedules.NewService(scheduleRepo, patientRepo,
		schedules.WithLimits(limits),
		schedules.WithLogger(log.With(map[string]any{"module": "schedules"})),
	)
	patientsSvc := patients.NewService(patientRepo, schedulesSvc,
		patients.WithLogger(log.With(map[string]any{"module": "patients"})),
	)

	patients.RegisterRoutes(r, patientsSvc)
	schedules.RegisterRoutes(r, schedulesSvc)

	return r
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "route not found"})
}
