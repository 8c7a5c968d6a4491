package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	// needed for profiling
	_ "net/http/pprof"

	"github.com/asaskevich/govalidator"
	"github.com/ebuy-platform/payment-go/cmd"
	appctx "github.com/ebuy-platform/payment-go/libs/context"
	"github.com/ebuy-platform/payment-go/libs/handlers"
	"github.com/ebuy-platform/payment-go/libs/logging"
	"github.com/ebuy-platform/payment-go/libs/middleware"
	"github.com/ebuy-platform/payment-go/payment"
	sentry "github.com/getsentry/sentry-go"
	"github.com/go-chi/chi"
	chiware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// PaymentServerCmd start up the payment server
	PaymentServerCmd = &cobra.Command{
		Use:   "payment",
		Short: "subcommand to start up payment server",
		Run:   cmd.Perform("payment", RunPaymentServer),
	}
)

func init() {
	cmd.ServeCmd.AddCommand(PaymentServerCmd)

	flagBuilder := cmd.NewFlagBuilder(PaymentServerCmd)

	flagBuilder.String("datastore", "",
		"the postgres datastore url").
		Bind("datastore").
		Env("DATABASE_URL")

	flagBuilder.Bool("enable-migration", false,
		"apply database migrations on startup").
		Bind("enable-migration").
		Env("ENABLE_MIGRATION")

	flagBuilder.Int("rate-per-min", 180,
		"requests per minute allowed from a single ip").
		Bind("rate-per-min").
		Env("RATE_PER_MIN")

	flagBuilder.String("cors-allowed-origins", "*",
		"comma separated allowed origins for cors").
		Bind("cors-allowed-origins").
		Env("CORS_ALLOWED_ORIGINS")
}

func setupRouter(ctx context.Context, logger *zerolog.Logger) (context.Context, *chi.Mux, *payment.Service) {
	buildTime := ctx.Value(appctx.BuildTimeCTXKey).(string)
	commit := ctx.Value(appctx.CommitCTXKey).(string)
	version := ctx.Value(appctx.VersionCTXKey).(string)

	govalidator.SetFieldsRequiredByDefault(true)

	r := chi.NewRouter()

	r.Use(chiware.RequestID)
	r.Use(middleware.RequestIDTransfer)

	// NOTE: This uses standard forwarding headers, note that this puts implicit trust in the header values
	// provided to us. In particular it uses the first element.
	// Consequently we should consider the request IP as primarily "informational".
	r.Use(chiware.RealIP)

	r.Use(chiware.Heartbeat("/"))
	// log and recover here
	if logger != nil {
		// Also handles panic recovery
		r.Use(hlog.NewHandler(*logger))
		r.Use(hlog.UserAgentHandler("user_agent"))
		r.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
		r.Use(middleware.RequestLogger(logger))
	}
	// now we have middlewares we want included in logging
	r.Use(chiware.Timeout(15 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{viper.GetString("cors-allowed-origins")},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if os.Getenv("ENV") == "production" {
		r.Use(middleware.RateLimiter(ctx, viper.GetInt("rate-per-min")))
	}

	db, err := payment.NewPostgres(
		viper.GetString("datastore"),
		viper.GetBool("enable-migration"),
		"payment_db",
	)
	if err != nil {
		sentry.CaptureException(err)
		logger.Panic().Err(err).Msg("Must be able to init postgres connection to start")
	}
	ctx = context.WithValue(ctx, appctx.DatastoreCTXKey, db)

	paymentService, err := payment.InitService(ctx, db)
	if err != nil {
		sentry.CaptureException(err)
		logger.Panic().Err(err).Msg("Payment service initialization failed")
	}
	ctx = context.WithValue(ctx, appctx.ServiceKey, paymentService)

	r.Mount("/v1/payments", payment.Router(paymentService))
	r.Mount("/v1/orders", payment.OrdersRouter(paymentService))

	// add profiling flag to enable profiling routes
	if os.Getenv("PPROF_ENABLED") != "" {
		// pprof attaches routes to default serve mux
		// host:6061/debug/pprof/
		go func() {
			log.Error().Err(http.ListenAndServe(":6061", http.DefaultServeMux))
		}()
	}

	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("buildTime", buildTime).
		Msg("server starting up")

	r.Get("/health-check", handlers.HealthCheckHandler(version, buildTime, commit, nil))

	return ctx, r, paymentService
}

// RunPaymentServer is the runner for starting up the payment server
func RunPaymentServer(command *cobra.Command, args []string) error {
	ctx := command.Context()
	address, err := command.Flags().GetString("address")
	if err != nil {
		address = viper.GetString("address")
	}
	return PaymentServer(ctx, address)
}

// PaymentServer runs the payment server
func PaymentServer(ctx context.Context, address string) error {
	logger, err := appctx.GetLogger(ctx)
	if err != nil {
		ctx, logger = logging.SetupLogger(ctx)
	}

	sentryDsn := os.Getenv("SENTRY_DSN")
	if sentryDsn != "" {
		buildTime := ctx.Value(appctx.BuildTimeCTXKey).(string)
		commit := ctx.Value(appctx.CommitCTXKey).(string)
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     sentryDsn,
			Release: fmt.Sprintf("payment-go@%s-%s", commit, buildTime),
		})
		defer sentry.Flush(2 * time.Second)
		if err != nil {
			logger.Panic().Err(err).Msg("unable to setup reporting!")
		}
	}
	logger.Info().
		Str("prefix", "main").
		Msg("Starting server")

	// catalog cache tunables for the service
	ctx = context.WithValue(ctx, appctx.CatalogCacheExpiryDurationCTXKey, viper.GetDuration("catalog-cache-expiry"))
	ctx = context.WithValue(ctx, appctx.CatalogCachePurgeDurationCTXKey, viper.GetDuration("catalog-cache-purge"))

	ctx, r, _ := setupRouter(ctx, logger)

	go func() {
		err := http.ListenAndServe(":9090", middleware.Metrics())
		if err != nil {
			sentry.CaptureException(err)
			logger.Panic().Err(err).Msg("metrics HTTP server start failed!")
		}
	}()

	if address == "" {
		address = ":3333"
	}

	srv := http.Server{
		Addr:         address,
		Handler:      chi.ServerBaseContext(ctx, r),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 20 * time.Second,
	}
	err = srv.ListenAndServe()
	if err != nil {
		sentry.CaptureException(err)
		logger.Panic().Err(err).Msg("HTTP server start failed!")
	}
	return nil
}
