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
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fitmatchai/backend/internal/adherence"
	"github.com/fitmatchai/backend/internal/auth"
	"github.com/fitmatchai/backend/internal/config"
	"github.com/fitmatchai/backend/internal/db"
	"github.com/fitmatchai/backend/internal/middleware"
	"github.com/fitmatchai/backend/internal/progress"
	"github.com/fitmatchai/backend/internal/progression"
	"github.com/fitmatchai/backend/internal/telemetry/metrics"
	"github.com/fitmatchai/backend/internal/telemetry/tracing"
	"github.com/fitmatchai/backend/internal/trainlog"
	"github.com/fitmatchai/backend/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	mobileAppSecret   string
	predictorAPIKey   string
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	trainlogRepo *trainlog.Repo
	watcher      *trainlog.Watcher
	aggregator   *adherence.Aggregator
	summaries    *adherence.Repo
	analyzer     *progress.Analyzer
	features     *progression.FeaturesRepo
	predictor    *progression.Predictor
	controller   *progression.Controller

	redisClient  *redis.Client
	authService  *auth.Service
	loginChecker *auth.LoginChecker

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config            *config.Config
	PredictorAPIKey   string
	MobileAppSecret   string
	VersionInfo       string
	AdminUsername     string
	AdminPasswordHash string
	RedisPassword     string
	TracingEnabled    bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitmatch", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	otelShutdown, err := tracing.Setup(params.TracingEnabled, "fitmatch-backend")
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Duration(params.Config.PredictorTimeoutSecs) * time.Second,
	}

	trainlogRepo := trainlog.NewRepo(dbPool)
	aggregator := adherence.NewAggregator(trainlogRepo)
	summaries := adherence.NewRepo(dbPool)
	features := progression.NewFeaturesRepo(dbPool)
	predictor := progression.NewPredictor(
		params.Config.PredictorBaseURL,
		params.PredictorAPIKey,
		params.Config.PredictorCacheSizeMB,
		tracedHttpClient,
	)

	s := &Server{
		config:          params.Config,
		dbPool:          dbPool,
		mobileAppSecret: params.MobileAppSecret,
		predictorAPIKey: params.PredictorAPIKey,
		versionInfo:     params.VersionInfo,

		trainlogRepo: trainlogRepo,
		watcher: trainlog.NewWatcher(
			trainlogRepo,
			time.Duration(params.Config.WatchPollIntervalSecs)*time.Second,
		),
		aggregator: aggregator,
		summaries:  summaries,
		analyzer:   progress.NewAnalyzer(trainlogRepo),
		features:   features,
		predictor:  predictor,
		controller: progression.NewController(
			aggregator,
			summaries,
			features,
			predictor,
			metricsManager,
		),

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, "I'm OK, thanks ;)", http.StatusOK)
	}).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, s.versionInfo, http.StatusOK)
	}).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.authService)
	authHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitPerMin)

	trainlogHandler := trainlog.NewHandler(s.trainlogRepo, s.watcher, s.metricsManager)
	r.HandleFunc("/trainlog", trainlogHandler.HandleUpsert).Methods("POST", "OPTIONS").Name("new-day-log")
	r.HandleFunc("/trainlog/plan/{planID}", trainlogHandler.HandleList).Methods("GET", "OPTIONS").Name("list-day-logs")
	r.HandleFunc("/trainlog/plan/{planID}/day/{dateKey}", trainlogHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-day-log")
	r.HandleFunc("/trainlog/plan/{planID}/day/{dateKey}", trainlogHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-day-log")
	r.HandleFunc("/trainlog/plan/{planID}/watch", trainlogHandler.HandleWatch).Methods("GET", "OPTIONS").Name("watch-day-logs")

	adherenceHandler := adherence.NewHandler(s.aggregator, s.trainlogRepo)
	r.HandleFunc("/adherence/plan/{planID}/week", adherenceHandler.HandleWeek).Methods("GET", "OPTIONS").Name("adherence-week")
	r.HandleFunc("/adherence/plan/{planID}/day/{dateKey}", adherenceHandler.HandleDay).Methods("GET", "OPTIONS").Name("adherence-day")

	progressHandler := progress.NewHandler(s.analyzer)
	r.HandleFunc("/progress/plan/{planID}", progressHandler.HandleOverview).Methods("GET", "OPTIONS").Name("progress-overview")

	progressionHandler := progression.NewHandler(s.controller, s.features)
	r.HandleFunc("/progression/plan/{planID}/finalize-week", progressionHandler.HandleFinalizeWeek).Methods("POST", "OPTIONS").Name("finalize-week")
	r.HandleFunc("/progression/features/{userID}", progressionHandler.HandleGetFeatures).Methods("GET", "OPTIONS").Name("get-features")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.mobileAppSecret,
		s.loginChecker,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
