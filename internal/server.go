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

	"github.com/2beens/liftly/internal/auth"
	"github.com/2beens/liftly/internal/clients"
	"github.com/2beens/liftly/internal/config"
	"github.com/2beens/liftly/internal/db"
	"github.com/2beens/liftly/internal/middleware"
	"github.com/2beens/liftly/internal/progress"
	"github.com/2beens/liftly/internal/sessions"
	"github.com/2beens/liftly/internal/telemetry/metrics"
	"github.com/2beens/liftly/internal/telemetry/tracing"
	"github.com/2beens/liftly/internal/templates"
	"github.com/2beens/liftly/internal/workouts"
	"github.com/2beens/liftly/pkg"
)

const (
	sessionsCleanupInterval = 8 * time.Hour
	draftsSweepInterval     = 10 * time.Minute
	draftIdleTTL            = 2 * time.Hour
	maxRequestBodyBytes     = 1 << 20
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	sessionStore *auth.SessionStore
	authService  *auth.Service
	drafts       *workouts.DraftManager
	countsCache  *sessions.CountsCache

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	JWTSecret               string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	if params.JWTSecret == "" {
		return nil, errors.New("jwt secret not set")
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
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
	metricsManager := metrics.NewManager("liftly", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftly-backend", rdb)
	if err != nil {
		return nil, err
	}

	sessionStore := auth.NewSessionStore(params.Config.SessionTTL(), rdb)
	authService := auth.NewService(
		auth.NewRepo(dbPool),
		sessionStore,
		auth.NewTokenIssuer([]byte(params.JWTSecret), params.Config.SessionTTL()),
	)

	drafts := workouts.NewDraftManager(workouts.NewRepo(dbPool), workouts.AutoSaverOptions{
		QuietWindow:    params.Config.AutosaveQuietWindow(),
		// timer flushes must outlive the root ctx, which is cancelled before shutdown
		BaseContext:    context.WithoutCancel(ctx),
		MetricsManager: metricsManager,
	})

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,

		sessionStore: sessionStore,
		authService:  authService,
		drafts:       drafts,
		countsCache:  sessions.NewCountsCache(params.Config.CalendarCacheMB),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("liftly-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET", "OPTIONS").Name("version")

	authHandler := auth.NewHandler(s.authService, s.metricsManager)
	r.HandleFunc("/auth/signout", authHandler.HandleSignOut).Methods("POST", "OPTIONS").Name("signout")
	r.HandleFunc("/auth/me", authHandler.HandleMe).Methods("GET", "OPTIONS").Name("me")

	signInSubrouter := r.PathPrefix("/auth").Subrouter()
	signInSubrouter.HandleFunc("/signup/trainer", authHandler.HandleSignUpTrainer).Methods("POST", "OPTIONS").Name("signup-trainer")
	signInSubrouter.HandleFunc("/signup/client", authHandler.HandleSignUpClient).Methods("POST", "OPTIONS").Name("signup-client")
	signInSubrouter.HandleFunc("/signin", authHandler.HandleSignIn).Methods("POST", "OPTIONS").Name("signin")
	signInSubrouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"signin",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	workoutsHandler := workouts.NewHandler(workouts.NewRepo(s.dbPool), s.drafts, s.metricsManager)
	progressHandler := progress.NewHandler(progress.NewRepo(s.dbPool))

	// trainers and clients, access to a client's data is checked by the handlers
	r.HandleFunc("/clients/{clientId:[0-9]+}/workouts", workoutsHandler.HandleListClientWorkouts).Methods("GET", "OPTIONS").Name("list-client-workouts")
	r.HandleFunc("/workouts/{id:[0-9]+}/exercises", workoutsHandler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-workout-exercises")
	r.HandleFunc("/sessions/{id:[0-9]+}/sets", workoutsHandler.HandleGetSessionSets).Methods("GET", "OPTIONS").Name("get-session-sets")
	r.HandleFunc("/sessions/{id:[0-9]+}/sets", workoutsHandler.HandleReplaceSessionSets).Methods("PUT", "OPTIONS").Name("replace-session-sets")
	r.HandleFunc("/sessions/{id:[0-9]+}/plan", workoutsHandler.HandleGetSessionPlan).Methods("GET", "OPTIONS").Name("get-session-plan")
	r.HandleFunc("/clients/{clientId:[0-9]+}/progress", progressHandler.HandleGetProgress).Methods("GET", "OPTIONS").Name("get-progress")
	r.HandleFunc("/clients/{clientId:[0-9]+}/measurements", progressHandler.HandleAddMeasurement).Methods("POST", "OPTIONS").Name("add-measurement")
	r.HandleFunc("/clients/{clientId:[0-9]+}/records", progressHandler.HandleAddPersonalRecord).Methods("POST", "OPTIONS").Name("add-personal-record")
	r.HandleFunc("/clients/{clientId:[0-9]+}/records/{id:[0-9]+}", progressHandler.HandleDeletePersonalRecord).Methods("DELETE", "OPTIONS").Name("delete-personal-record")

	trainer := r.NewRoute().Subrouter()
	trainer.Use(middleware.RequireRole(auth.RoleTrainer))

	clientsHandler := clients.NewHandler(clients.NewRepo(s.dbPool))
	trainer.HandleFunc("/clients", clientsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-clients")
	trainer.HandleFunc("/clients", clientsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("add-client")
	trainer.HandleFunc("/clients/{id:[0-9]+}", clientsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-client")
	trainer.HandleFunc("/clients/{id:[0-9]+}", clientsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-client")
	trainer.HandleFunc("/clients/{id:[0-9]+}", clientsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-client")

	sessionsHandler := sessions.NewHandler(
		sessions.NewService(sessions.NewRepo(s.dbPool), s.countsCache),
		s.metricsManager,
	)
	// fixed paths before /sessions/{id}
	trainer.HandleFunc("/sessions/calendar", sessionsHandler.HandleCalendar).Methods("GET", "OPTIONS").Name("sessions-calendar")
	trainer.HandleFunc("/sessions/slots", sessionsHandler.HandleDaySlots).Methods("GET", "OPTIONS").Name("sessions-day-slots")
	trainer.HandleFunc("/sessions/book", sessionsHandler.HandleBook).Methods("POST", "OPTIONS").Name("book-session")
	trainer.HandleFunc("/sessions", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	trainer.HandleFunc("/sessions", sessionsHandler.HandleSchedule).Methods("POST", "OPTIONS").Name("schedule-session")
	trainer.HandleFunc("/sessions/{id:[0-9]+}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	trainer.HandleFunc("/sessions/{id:[0-9]+}/cancel", sessionsHandler.HandleCancel).Methods("POST", "OPTIONS").Name("cancel-session")

	templatesHandler := templates.NewHandler(templates.NewService(templates.NewRepo(s.dbPool)))
	trainer.HandleFunc("/templates", templatesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-templates")
	trainer.HandleFunc("/templates", templatesHandler.HandleCreate).Methods("POST", "OPTIONS").Name("create-template")
	trainer.HandleFunc("/templates/{id:[0-9]+}", templatesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-template")
	trainer.HandleFunc("/templates/{id:[0-9]+}", templatesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-template")
	trainer.HandleFunc("/templates/{id:[0-9]+}", templatesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-template")
	trainer.HandleFunc("/templates/{id:[0-9]+}/assignments", templatesHandler.HandleAssign).Methods("PUT", "OPTIONS").Name("assign-template")

	trainer.HandleFunc("/workouts", workoutsHandler.HandleLogWorkout).Methods("POST", "OPTIONS").Name("log-workout")
	trainer.HandleFunc("/workouts/{id:[0-9]+}", workoutsHandler.HandleDeleteWorkout).Methods("DELETE", "OPTIONS").Name("delete-workout")
	trainer.HandleFunc("/workouts/drafts", workoutsHandler.HandleOpenDraft).Methods("POST", "OPTIONS").Name("open-draft")
	trainer.HandleFunc("/workouts/drafts/{id}", workoutsHandler.HandleGetDraft).Methods("GET", "OPTIONS").Name("get-draft")
	trainer.HandleFunc("/workouts/drafts/{id}", workoutsHandler.HandleCloseDraft).Methods("DELETE", "OPTIONS").Name("close-draft")
	trainer.HandleFunc("/workouts/drafts/{id}/save", workoutsHandler.HandleSaveDraft).Methods("POST", "OPTIONS").Name("save-draft")
	trainer.HandleFunc("/workouts/drafts/{id}/exercises", workoutsHandler.HandleAddDraftExercise).Methods("POST", "OPTIONS").Name("add-draft-exercise")
	trainer.HandleFunc("/workouts/drafts/{id}/exercises/{index:[0-9]+}", workoutsHandler.HandleUpdateDraftExercise).Methods("PUT", "OPTIONS").Name("update-draft-exercise")
	trainer.HandleFunc("/workouts/drafts/{id}/exercises/{index:[0-9]+}", workoutsHandler.HandleRemoveDraftExercise).Methods("DELETE", "OPTIONS").Name("remove-draft-exercise")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(maxRequestBodyBytes))

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
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

	go s.cleanSessionsPeriodically(ctx, sessionsCleanupInterval)
	go s.closeIdleDraftsPeriodically(ctx, draftsSweepInterval)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) cleanSessionsPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sessionStore.ScanAndClean(ctx)
		}
	}
}

func (s *Server) closeIdleDraftsPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if closed := s.drafts.CloseIdle(draftIdleTTL); closed > 0 {
				log.Debugf("closed %d idle workout drafts", closed)
			}
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	ctx, timeoutCancel := context.WithTimeout(context.Background(), s.config.ShutdownWait())
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	// pending autosaves still need the db
	if err := s.drafts.Shutdown(ctx); err != nil {
		log.Errorf("flush workout drafts: %s", err)
	}

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
