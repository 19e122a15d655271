package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kone-backend/internal/auth"
	"kone-backend/internal/cache"
	"kone-backend/internal/catalog"
	"kone-backend/internal/chat"
	"kone-backend/internal/config"
	"kone-backend/internal/db"
	"kone-backend/internal/gateway"
	"kone-backend/internal/handlers"
	"kone-backend/internal/health"
	h "kone-backend/internal/http"
	"kone-backend/internal/metrics"
	"kone-backend/internal/middleware"
	"kone-backend/internal/realtime"
	"kone-backend/internal/repositories"
	"kone-backend/internal/services"
	"kone-backend/internal/state"
	"kone-backend/internal/stream"
)

// bridgeSubscriber adapts the realtime bridge to the coordinator's
// subscription seam, counting notifications per table along the way.
type bridgeSubscriber struct {
	bridge *realtime.Bridge
}

func (s bridgeSubscriber) Subscribe(table string, onChange func()) state.Unsubscriber {
	return s.bridge.Subscribe(table, func() {
		metrics.ChangeNotificationsTotal.WithLabelValues(table).Inc()
		onChange()
	})
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Reference data is required; a broken catalog file is a startup error.
	catK1, err := catalog.Load(cfg.Catalog.K1Path)
	if err != nil {
		log.Fatal("k1 catalog load failed", zap.Error(err))
	}
	catEcob, err := catalog.Load(cfg.Catalog.EcobPath)
	if err != nil {
		log.Fatal("ecob catalog load failed", zap.Error(err))
	}
	catalogs := handlers.Catalogs{
		state.TabK1:   catK1,
		state.TabEcob: catEcob,
	}

	// Database is optional: without it the service runs on the built-in
	// fallback dataset and sign-in is disabled.
	pool := db.Connect(cfg, log)
	if pool != nil {
		defer pool.Close()
	}

	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Warn("cache unavailable, login will use bcrypt only", zap.Error(err))
	} else {
		log.Info("cache connected")
	}

	// Data plane: paginated reads plus the LISTEN/NOTIFY bridge.
	gw := gateway.New(gateway.NewPoolPager(pool), log)
	sheets := gateway.NewSheetsClient(cfg.Sheets.BaseURL, cfg.Sheets.SheetID, cfg.Sheets.InternalGID, log)

	var connector realtime.ConnectFunc
	if cfg.DatabaseConfigured() {
		connector = realtime.PgxConnector(cfg.DSN())
	}
	bridge := realtime.New(connector, log)

	store := state.NewStore(gw, sheets, bridgeSubscriber{bridge: bridge}, log)

	hub := stream.NewHub(log)
	defer hub.Close()
	store.SetEventHandler(func(e state.Event) {
		metrics.CollectionRefreshTotal.WithLabelValues(e.Collection, string(e.Source)).Inc()
		if e.Collection == "stock" {
			cache.InvalidateSummaries(context.Background())
		}
		hub.PublishRefresh(e)
	})
	bridge.SetStaleHandler(hub.PublishStaleness)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bridge.Start(ctx)
	defer bridge.Close()
	store.Start(ctx)
	defer store.Close()

	// Auth plumbing. The repo is nil in simulation mode; the role resolver
	// then falls back to the email heuristic on every lookup.
	jwtManager := auth.NewJWTManager(cfg)
	var userRepo *repositories.UserRepository
	var roleSource auth.RoleSource
	if pool != nil {
		userRepo = repositories.NewUserRepository(pool)
		roleSource = userRepo
	}
	roleResolver := auth.NewRoleResolver(roleSource, cfg.Auth.AdminEmail, log)
	authService := services.NewAuthService(userRepo, jwtManager, roleResolver, log)

	chatClient := chat.New(cfg.Chat.WebhookURL, log)
	if !chatClient.Configured() {
		log.Warn("chat webhook not configured, assistant replies with the failure message")
	}

	healthChecker := health.NewHealthChecker(pool, bridge)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewDashboardHandler(store, catalogs),
		handlers.NewStockHandler(store, catalogs),
		handlers.NewDealHandler(store, catalogs),
		handlers.NewNewItemHandler(store, catalogs),
		handlers.NewAssemblyHandler(store, catalogs),
		handlers.NewContactHandler(store),
		handlers.NewAuditLogHandler(store),
		handlers.NewChatHandler(chatClient),
		handlers.NewReportHandler(store, catalogs),
		handlers.NewHealthHandler(healthChecker),
		hub,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(log)(
		middleware.MetricsMiddleware(
			corsMiddleware(
				middleware.RequestLogging(log)(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		log.Info("server running", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown incomplete", zap.Error(err))
	}
}
