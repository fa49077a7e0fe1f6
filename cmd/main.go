package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/storefront-server/internal/api/http/context"
	"github.com/dtroode/storefront-server/internal/api/http/handler"
	"github.com/dtroode/storefront-server/internal/api/http/router"
	httpserver "github.com/dtroode/storefront-server/internal/api/http/server"
	"github.com/dtroode/storefront-server/internal/config"
	natsevents "github.com/dtroode/storefront-server/internal/events/nats"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/orderstate"
	"github.com/dtroode/storefront-server/internal/password"
	"github.com/dtroode/storefront-server/internal/repository/mongodb"
	"github.com/dtroode/storefront-server/internal/repository/postgres"
	"github.com/dtroode/storefront-server/internal/repository/redis"
	"github.com/dtroode/storefront-server/internal/server"
	"github.com/dtroode/storefront-server/internal/service"
	storage "github.com/dtroode/storefront-server/internal/storage/minio"
	"github.com/dtroode/storefront-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// stores holds the persistence layer chosen by DATABASE_DRIVER.
type stores struct {
	users      model.UserStore
	categories model.CategoryStore
	products   model.ProductStore
	orders     model.OrderStore
	checkout   model.CheckoutStore
	db         handler.Pinger
	close      func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	st, err := openStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	photos, err := storage.NewClient(ctx, storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	// Both stay nil interfaces when their backend is not configured.
	var denylist model.TokenDenylist
	if cfg.Redis.Addr != "" {
		client, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("failed to connect to redis", "addr", cfg.Redis.Addr, "error", err)
		}
		defer client.Close()
		denylist = redis.NewDenylist(client)
	} else {
		logger.Warn("REDIS_ADDR is empty, signed out tokens stay valid until expiry")
	}

	var events model.EventPublisher
	if cfg.NATS.URL != "" {
		conn, err := natsevents.Connect(cfg.NATS.URL)
		if err != nil {
			logger.Fatal("failed to connect to nats", "url", cfg.NATS.URL, "error", err)
		}
		defer func() { _ = conn.Drain() }()
		events = natsevents.NewPublisher(conn, cfg.NATS.SubjectPrefix)
	}

	states, err := orderstate.New(cfg.Order.Statuses, cfg.Order.ForwardOnly)
	if err != nil {
		logger.Fatal("invalid order statuses", "error", err)
	}
	logger.Info("order statuses loaded", "statuses", cfg.Order.Statuses, "forward_only", states.ForwardOnly())

	tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret), denylist, cfg.JWT.TTL, logger)
	hasher := password.NewHasher(password.NewKDFParams(cfg.KDF.Time, cfg.KDF.MemKiB, cfg.KDF.Par))

	services := router.Services{
		Auth:     service.NewAuth(st.users, hasher, tokenService, logger),
		User:     service.NewUser(st.users, st.orders, logger),
		Product:  service.NewProduct(st.products, st.categories, photos, events, cfg.Product.MaxPhotoSize, logger),
		Order:    service.NewOrder(st.orders, st.checkout, st.products, st.users, states, events, logger),
		Category: service.NewCategory(st.categories, logger),
		Token:    tokenService,
		Database: st.db,
	}
	options := router.Options{
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		SecureCookie:   cfg.HTTP.SecureCookie,
	}
	engine := router.New(services, options, httpctx.NewManager(), logger.With("component", "http")).Register()

	httpServer := httpserver.NewHTTPServer(engine, fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg config.Database) (stores, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		conn, err := mongodb.NewConnection(ctx, cfg.DSN, cfg.Name)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:      mongodb.NewUserRepository(conn),
			categories: mongodb.NewCategoryRepository(conn),
			products:   mongodb.NewProductRepository(conn),
			orders:     mongodb.NewOrderRepository(conn),
			checkout:   mongodb.NewCheckoutRepository(conn),
			db:         conn,
			close:      conn.Close,
		}, nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:      postgres.NewUserRepository(conn),
			categories: postgres.NewCategoryRepository(conn),
			products:   postgres.NewProductRepository(conn),
			orders:     postgres.NewOrderRepository(conn),
			checkout:   postgres.NewCheckoutRepository(conn),
			db:         conn,
			close:      conn.Close,
		}, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
