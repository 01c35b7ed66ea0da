package startup

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/go-redis/redis"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"gopkg.in/natefinch/lumberjack.v2"

	"inspection_service/casbinAuthorization"
	"inspection_service/handlers"
	application "inspection_service/service"
	"inspection_service/startup/config"
	store2 "inspection_service/store"
)

type Server struct {
	config *config.Config
	logger *logrus.Logger
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
		logger: initLogger(config.LogFile),
	}
}

func initLogger(logFile string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if logFile != "" {
		logger.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}))
	}
	return logger
}

func (server *Server) Start() {
	ctx := context.Background()

	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("inspection_service")

	mongoClient := server.initMongoClient()
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		err := mongoClient.Disconnect(ctx)
		if err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}(mongoClient, ctx)

	redisClient := server.initRedisClient()

	sessionCache := store2.NewSessionRedisCache(redisClient, tracer)
	userStore := store2.NewUserMongoDBStore(mongoClient, tracer)
	credentialsStore := store2.NewCredentialsMongoDBStore(mongoClient, tracer)
	accommodationStore := store2.NewAccommodationMongoDBStore(mongoClient, tracer)

	var mailer *application.DecisionMailer
	if server.config.NotificationsEnabled {
		mailer = application.NewDecisionMailer()
	}

	authService := application.NewAuthService(userStore, credentialsStore, sessionCache, tracer)
	userService := application.NewUserService(userStore, tracer)
	submissionService := application.NewSubmissionService(accommodationStore, tracer, server.logger)
	statusService := application.NewStatusService(accommodationStore, mailer, tracer, server.logger)
	reportService := application.NewReportService(accommodationStore, tracer)

	authHandler := handlers.NewAuthHandler(authService, server.logger, tracer)
	userHandler := handlers.NewUserHandler(userService, server.logger, tracer)
	accommodationHandler := handlers.NewAccommodationHandler(submissionService, authService, server.logger, tracer)
	statusHandler := handlers.NewStatusHandler(statusService, server.logger, tracer)
	reportHandler := handlers.NewReportHandler(reportService, tracer)

	server.start(authHandler, userHandler, accommodationHandler, statusHandler, reportHandler)
}

func (server *Server) initMongoClient() *mongo.Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	client, err := store2.GetClientWithHTTPConfig(server.config.InspectionDBHost, server.config.InspectionDBPort, httpClient)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store2.GetRedisClient(server.config.SessionCacheHost, server.config.SessionCachePort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) start(handlerList ...interface{ Init(*mux.Router) }) {
	enforcer, err := casbin.NewEnforcerSafe(server.config.CasbinModelPath, server.config.CasbinPolicyPath)
	if err != nil {
		log.Fatal(err)
	}
	server.logger.Info("successful init of casbin enforcer")

	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)
	router.Use(handlers.ExtractTraceInfoMiddleware)

	for _, handler := range handlerList {
		handler.Init(router)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: casbinAuthorization.CasbinMiddleware(enforcer, server.logger)(router),
	}

	wait := time.Second * 15
	go func() {
		server.logger.Infof("server listening on port %s", server.config.Port)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("inspection_service"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}
