package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/fitprogram/internal/config"
	"github.com/2beens/fitprogram/internal/db"
	"github.com/2beens/fitprogram/internal/middleware"
	"github.com/2beens/fitprogram/internal/program/codec"
	"github.com/2beens/fitprogram/internal/program/handler"
	"github.com/2beens/fitprogram/internal/program/repo"
	"github.com/2beens/fitprogram/internal/program/service"
	"github.com/2beens/fitprogram/internal/telemetry/metrics"
	"github.com/2beens/fitprogram/internal/telemetry/tracing"
	"github.com/2beens/fitprogram/pkg"
)

const redisKeyPrefix = "fitprogram::"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config         *config.Config
	dbPool         *pgxpool.Pool
	redisClient    *redis.Client
	rateLimiter    middleware.RequestRateLimiter
	programHandler *handler.Handler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitprogram-backend")
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		MaxConns:       cfg.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	s := &Server{
		config:         cfg,
		dbPool:         dbPool,
		versionInfo:    params.VersionInfo,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.RedisHost != "" {
		s.redisClient = newRedisClient(ctx, cfg, params.RedisPassword, params.HoneycombTracingEnabled)
		s.rateLimiter = redis_rate.NewLimiter(s.redisClient)
	}

	var locker service.Locker
	if cfg.DistributedLocks {
		locker = service.NewRedisLocker(s.redisClient, redisKeyPrefix, cfg.LockTTL.Duration)
		log.Debugf("using redis program locks, ttl %s", cfg.LockTTL)
	} else {
		locker = service.NewKeyedLocker()
		log.Debugln("using in-process program locks")
	}

	programRepo := repo.NewRepo(dbPool, codec.New(metricsManager.CounterDecodeFailures))
	programService := service.New(service.Params{
		Store:     programRepo,
		Templates: repo.NewTemplateCache(programRepo, cfg.TemplateCacheSizeMB, metricsManager.CounterTemplateCacheHits),
		Locker:    locker,
		Metrics:   metricsManager,
	})
	s.programHandler = handler.NewHandler(programService)

	return s, nil
}

func newRedisClient(ctx context.Context, cfg *config.Config, password string, tracingEnabled bool) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: password,
		DB:       0, // use default DB
	})
	if tracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}
	return rdb
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET", "OPTIONS").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")
	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	s.programHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	if s.rateLimiter != nil && s.config.RateLimitPerMinute > 0 {
		r.Use(middleware.RateLimit(s.rateLimiter, "main", s.config.RateLimitPerMinute, s.metricsManager))
	}
	r.Use(middleware.LimitAndDrainBody(s.config.MaxBodyKB << 10))

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.Text, "I'm OK, thanks ;)", http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.Text, s.versionInfo, http.StatusOK)
}

// handleHealth reports whether postgres (and redis, when configured) answer.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.dbPool != nil {
		if err := s.dbPool.Ping(ctx); err != nil {
			log.Errorf("health: ping db: %s", err)
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			log.Errorf("health: ping redis: %s", err)
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	pkg.WriteResponse(w, pkg.ContentType.Text, "ok", http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:           s.routerSetup(),
		Addr:              ipAndPort,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      time.Minute,
		ReadTimeout:       time.Minute,
		ConnState:         s.connStateMetrics,
	}
	s.metricsHttpServer = s.newMetricsServer()

	go listenAndServe("main service", s.httpServer)
	go listenAndServe("metrics service", s.metricsHttpServer)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) newMetricsServer() *http.Server {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	return &http.Server{
		Addr:              net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort),
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func listenAndServe(name string, srv *http.Server) {
	log.Infof(" > %s listening on: [%s]", name, srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("%s, listen and serve: %s", name, err)
	}
}

func shutdownServer(ctx context.Context, name string, srv *http.Server) {
	if srv == nil {
		return
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf(" >>> failed to gracefully shutdown %s: %s", name, err)
		return
	}
	log.Warnf("%s shut down", name)
}

// GracefulShutdown stops taking requests first; in-flight ones still need
// the db pool and redis, which are closed after.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	shutdownServer(ctx, "main service", s.httpServer)
	shutdownServer(ctx, "metrics service", s.metricsHttpServer)

	s.otelShutdown()

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}
	if s.dbPool != nil {
		s.dbPool.Close() // waits for acquired conns
		log.Debugln("db pool closed")
	}

	if !sentry.Flush(5 * time.Second) {
		log.Debugln("sentry flush timed out")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
