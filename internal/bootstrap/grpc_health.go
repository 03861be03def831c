package bootstrap

import (
	"context"
	"time"

	"github.com/Domenick1991/tripmates/api"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// TripsHealthService is the service name reported next to the overall ("")
// status.
const TripsHealthService = "tripmates.Trips"

const healthCheckInterval = 10 * time.Second

func newGRPCServer(hs *health.Server) *grpc.Server {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// updateHealth pings the store once and publishes the result for both the
// overall and the trips service status.
func updateHealth(ctx context.Context, hs *health.Server, db api.Pinger) {
	status := healthpb.HealthCheckResponse_SERVING
	if db != nil {
		if err := db.Ping(ctx); err != nil {
			log.WithError(err).Warn("grpc health: database ping failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	hs.SetServingStatus("", status)
	hs.SetServingStatus(TripsHealthService, status)
}

func watchHealth(ctx context.Context, hs *health.Server, db api.Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		updateHealth(ctx, hs, db)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
