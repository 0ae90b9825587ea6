package uploadhttp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/sir_venger/upload_demo/internal/config"
	"github.com/sir_venger/upload_demo/internal/logger"
	"github.com/sir_venger/upload_demo/internal/usecase/uploadsvc"
	"github.com/sir_venger/upload_demo/pkg/uploadproto"
)

// maxFieldBytes ограничивает размер обычного (не файлового) поля формы.
const maxFieldBytes = 1 << 20

type Server struct {
	Uploads uploadsvc.Service
	Cfg     *config.Config
	Log     *slog.Logger

	tracer   trace.Tracer
	registry *prometheus.Registry
	metrics  *metrics
}

// Option настраивает Server.
type Option func(*Server)

// WithService подменяет сервис загрузок, например заглушкой в тестах.
func WithService(svc uploadsvc.Service) Option {
	return func(s *Server) {
		s.Uploads = svc
	}
}

// WithLogger задаёт логгер сервера.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.Log = log
	}
}

// WithTracer задаёт трассировщик сервиса загрузок; по умолчанию берётся глобальный провайдер otel.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = tracer
	}
}

// WithRegistry задаёт реестр Prometheus, в котором регистрируются метрики.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer конструктор
func NewServer(cfg *config.Config, opts ...Option) (http.Handler, *Server, error) {
	srv := &Server{Cfg: cfg}
	for _, opt := range opts {
		opt(srv)
	}

	if srv.Log == nil {
		srv.Log = logger.Discard()
	}
	if srv.registry == nil {
		srv.registry = prometheus.NewRegistry()
		srv.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if srv.Uploads == nil {
		srv.Uploads = uploadsvc.New(uploadsvc.Deps{
			Dir:    cfg.UploadDir,
			Log:    srv.Log,
			Tracer: srv.tracer,
		})
	}

	m, err := newMetrics(srv.registry)
	if err != nil {
		return nil, nil, err
	}
	srv.metrics = m

	return srv.routes(), srv, nil
}

// routes регистрирует эндпоинты загрузки, здоровья, GC и метрик.
func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID, middleware.RealIP, s.accessLog, middleware.Recoverer)

	rtr.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("multipart/form-data"), s.limitBody)

		r.Post(uploadproto.PathStream, s.uploadStream)
		r.Post(uploadproto.PathCompleted, s.uploadCompleted)
		r.Post(uploadproto.PathBytes, s.uploadBytes)
	})

	rtr.Get("/health", s.health)
	rtr.Post("/admin/gc", s.gcOnce)

	metricsPath := s.Cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	rtr.Handle(metricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return rtr
}
