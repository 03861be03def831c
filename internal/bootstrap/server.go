package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/tripmates/api"
	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/middleware"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

const swaggerDocURL = "/swagger/trips.swagger.json"

// Run starts the HTTP server and, when an address is configured, the gRPC
// health server. It blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, fn api.TripFunction, db api.Pinger) error {
	srv := newServer(cfg, fn, db)

	errCh := make(chan error, 2)

	var (
		grpcSrv *grpc.Server
		hs      *health.Server
	)
	if cfg.GRPC.Address != "" {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		hs = health.NewServer()
		grpcSrv = newGRPCServer(hs)

		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()
		go watchHealth(watchCtx, hs, db, healthCheckInterval)

		go func() {
			log.WithField("addr", lis.Addr().String()).Info("grpc health server listening")
			errCh <- grpcSrv.Serve(lis)
		}()
	}

	go func() {
		log.WithField("addr", cfg.HTTP.Address).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if grpcSrv != nil {
			grpcSrv.Stop()
			_ = srv.Close()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if grpcSrv != nil {
			hs.Shutdown()
			grpcSrv.GracefulStop()
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, fn api.TripFunction, db api.Pinger) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, fn, db),
	}
}

func newRouter(cfg *config.Config, fn api.TripFunction, db api.Pinger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(nil))

	api.NewHealthHandler(db).Register(router)

	trips := api.NewTripHandler(fn)
	trips.Register(router.Group("/trips"))
	router.NoRoute(trips.NoRoute)

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerDocURL))))
	}

	return router
}
