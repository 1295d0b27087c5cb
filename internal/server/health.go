package server

import (
	"context"
	"log/slog"
	"time"

	"countrydata/cli/internal/dataset"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the service name reported for the country data endpoint. The
// empty service name reports the process as a whole.
const HealthService = "countrydata.CountryData"

// DefaultPingInterval is how often the dataset is pinged.
const DefaultPingInterval = 10 * time.Second

// watchDataset keeps the health status of HealthService in line with the dataset
// until ctx is done.
func watchDataset(ctx context.Context, hs *health.Server, src dataset.Source, every time.Duration, log *slog.Logger) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, every)
		defer cancel()
		status := healthpb.HealthCheckResponse_SERVING
		if err := src.Ping(pctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("dataset unavailable", "kind", src.Kind(), "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus(HealthService, status)
	}

	check()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			check()
		}
	}
}
