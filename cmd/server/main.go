// Command server runs the Contexta authentication API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/contexta-app/contexta/modules/auth"
	"github.com/contexta-app/contexta/pkg/config"
	"github.com/contexta-app/contexta/pkg/cookie"
	"github.com/contexta-app/contexta/pkg/email"
	"github.com/contexta-app/contexta/pkg/httpserver"
	"github.com/contexta-app/contexta/pkg/jwt"
	"github.com/contexta-app/contexta/pkg/logger"
	"github.com/contexta-app/contexta/pkg/mongo"
	"github.com/contexta-app/contexta/pkg/ratelimit"
	"github.com/contexta-app/contexta/pkg/redis"
	"github.com/contexta-app/contexta/pkg/requestid"
)

type appConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET,required"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET,required"`
	JWTAccessTTL     time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	JWTRefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`

	Log    logger.Config
	HTTP   httpserver.Config
	Mongo  mongo.Config
	Redis  redis.Config
	Cookie cookie.Config
	Email  email.Config
	Auth   auth.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithService("contexta"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.Env == "development" {
		logOpts = append(logOpts, logger.WithDevelopment())
	}
	log := logger.NewFromConfig(cfg.Log, logOpts...)
	logger.SetAsDefault(log)

	mongoClient, err := mongo.New(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Close(mongoClient, 10*time.Second); err != nil {
			log.Error("mongo disconnect failed", logger.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.Mongo.Database)

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("redis disconnect failed", logger.Error(err))
		}
	}()

	codec, err := jwt.New(cfg.JWTAccessSecret, cfg.JWTRefreshSecret,
		jwt.WithAccessTTL(cfg.JWTAccessTTL),
		jwt.WithRefreshTTL(cfg.JWTRefreshTTL),
	)
	if err != nil {
		return err
	}

	var mailer email.EmailSender
	if cfg.Email.PostmarkServerToken != "" {
		mailer, err = email.NewPostmarkClient(cfg.Email)
		if err != nil {
			return err
		}
	} else {
		log.Warn("postmark token not set, writing emails to disk", "dir", cfg.Email.DevDir)
		mailer = email.NewDevSender(cfg.Email.DevDir)
	}

	storage, err := auth.NewMongoStorage(ctx, db)
	if err != nil {
		return err
	}

	limitStore, err := ratelimit.NewRedisStore(redisClient)
	if err != nil {
		return err
	}
	limiter, err := ratelimit.NewSlidingWindow(limitStore, cfg.Auth.RateLimit, cfg.Auth.RateWindow)
	if err != nil {
		return err
	}

	cookies := cookie.NewFromConfig(cfg.Cookie)
	svc := auth.NewService(cfg.Auth, storage, codec, mailer, log)
	gate := auth.NewGate(storage, codec, log)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Mount("/api/auth", auth.Router(svc, gate, codec, cookies, limiter, log))

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log,
		mongo.Healthcheck(mongoClient),
		redis.Healthcheck(redisClient),
	))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Not found"}`))
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
