package httpserver

import (
	"net/http"
	"time"

	"cafeteria-qr-go/internal/config"
	"cafeteria-qr-go/internal/metrics"
	"cafeteria-qr-go/internal/transport/httpserver/handler"
	"cafeteria-qr-go/internal/transport/httpserver/middleware"
	"cafeteria-qr-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(m.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.AllowedOrigins))

	r.Get("/health", handlers.Health)
	if cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/generar_qr/{alumno_id:[0-9]+}", handlers.GenerateQR)
	r.Post("/registrar_consumo", handlers.RegisterConsumption)

	r.Get("/alumnos", handlers.ListStudents)
	r.Get("/alumnos/{id_alumno:[0-9]+}", handlers.GetStudent)
	r.Get("/alumnos/{id_alumno:[0-9]+}/consumos", handlers.ListStudentConsumption)

	r.Get("/paquetes", handlers.ListPackages)

	r.Get("/pagos", handlers.ListPayments)
	r.Post("/pagos", handlers.CreatePayment)

	return r
}
