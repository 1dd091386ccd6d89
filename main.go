package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"go-retrofit/cart"
	"go-retrofit/config"
	"go-retrofit/controllers"
	"go-retrofit/middleware"
	"go-retrofit/repository"
	"go-retrofit/routes"
	"go-retrofit/storage"
	"go-retrofit/utils"
)

const uploadsPrefix = "/uploads/"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := utils.NewLogger(os.Getenv("LOG_LEVEL"))

	// Load environment variables from .env file
	cfg, err := config.Load(log)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log = utils.NewLogger(cfg.LogLevel)

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)
	passwordHash, err := cfg.PasswordHash()
	if err != nil {
		log.WithError(err).Fatal("admin password not configured")
	}

	if cfg.EnableTracing {
		tp := initTracing(log)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.WithError(err).Warn("failed to shut down tracer provider")
			}
		}()
	}

	// Connect to the blob store
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := storage.Open(openCtx, cfg.StorageOptions())
	cancel()
	if err != nil {
		log.WithError(err).WithField("backend", cfg.StorageBackend).Fatal("failed to open storage")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.WithError(err).Error("failed to close storage")
		}
	}()
	log.WithField("backend", cfg.StorageBackend).Info("storage ready")

	// Initialize EmailService
	mailer, err := utils.NewMailer(cfg.Mail(), log)
	if err != nil {
		log.WithError(err).Fatal("failed to configure mail provider")
	}
	emailService := utils.NewEmailService(mailer, cfg.NotifyEmail)

	// Initialize repositories and controllers
	vehicles := repository.NewVehicleRepository(store)
	services := repository.NewServiceRepository(store)
	orders := repository.NewOrderRepository(store)
	carts := cart.NewSessionStore(store, cart.SameVehicle)

	ctrls := routes.Controllers{
		Vehicles: controllers.NewVehicleController(vehicles),
		Services: controllers.NewServiceController(services),
		Cart:     controllers.NewCartController(carts, services, orders, emailService),
		Orders:   controllers.NewOrderController(orders, vehicles, emailService),
		Admin:    controllers.NewAdminController(passwordHash, cfg.CookieSecure),
		Upload:   controllers.NewUploadController(cfg.UploadDir, uploadsPrefix),
		Health:   controllers.Health(store),
	}

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, ctrls, middleware.NewRateLimiter(cfg.OrderRatePerMinute))
	router.PathPrefix(uploadsPrefix).Handler(http.StripPrefix(uploadsPrefix, http.FileServer(http.Dir(cfg.UploadDir))))

	var handler http.Handler = router
	handler = middleware.Logger(log)(handler) // add logging
	handler = middleware.EnsureSession(handler) // add session ID
	handler = middleware.CORS(cfg.CORSOrigin)(handler)
	if cfg.EnableTracing {
		handler = otelhttp.NewHandler(handler, "retrofit") // add OTel tracing
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.Infof("Server is running on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("server stopped")
	}
}

func initTracing(log logrus.FieldLogger) *sdktrace.TracerProvider {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{}))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)
	log.Info("Tracing provider initialized (no exporter configured)")
	return tp
}
