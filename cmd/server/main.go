package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/fipify-backend/internal/adapter/fipe"
	grpcadapter "github.com/simaogato/fipify-backend/internal/adapter/grpc"
	"github.com/simaogato/fipify-backend/internal/adapter/httpapi"
	"github.com/simaogato/fipify-backend/internal/adapter/pdf"
	"github.com/simaogato/fipify-backend/internal/adapter/repository/memory"
	"github.com/simaogato/fipify-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/fipify-backend/internal/config"
	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/logging"
	"github.com/simaogato/fipify-backend/internal/metrics"
	"github.com/simaogato/fipify-backend/internal/usecase/lookup"
	"github.com/simaogato/fipify-backend/internal/usecase/report"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load(os.Getenv("FIPIFY_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	loc, _ := cfg.Location()

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 2. Initialize Repository (Postgres or in-memory)
	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open repository", zap.Error(err))
	}
	defer closeRepo()

	// 3. Initialize Services (Use Cases)
	m := metrics.New()

	lookupService := lookup.NewLookupService(fipe.NewClient(cfg.FIPEConfig()), repo)

	reportService := report.NewReportService(repo, pdf.NewRenderer())
	reportService.Observer = m
	reportService.Now = func() time.Time { return time.Now().In(loc) }

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger, m),
			grpcadapter.AuthInterceptor(cfg.GRPC.APIToken),
		),
	)
	grpcadapter.RegisterVehicleReportServer(grpcServer, grpcadapter.NewServer(lookupService, reportService, logger))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", cfg.GRPC.Addr), zap.Error(err))
	}

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPC.Addr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("Failed to serve gRPC server", zap.Error(err))
		}
	}()

	// 5. Start HTTP Server (health, metrics, report download)
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(reportService, logger), m.Handler(), m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve HTTP server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	logger.Info("Servers stopped")
}

// openRepository returns the configured record store and its release func
func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.ValuationRepository, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("Using in-memory repository; records are lost on restart")
		return memory.NewValuationRepository(), func() {}, nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database.ConnStr)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return postgres.NewValuationRepository(db), func() { _ = db.Close() }, nil
}
