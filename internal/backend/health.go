package backend

import (
	"context"
	"time"

	apperrors "countrydata/cli/internal/errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// HealthDialTimeout bounds a health check when ctx has no deadline.
const HealthDialTimeout = 5 * time.Second

// CheckHealth asks the gRPC health service at addr for the status of service. The
// empty service name asks about the server as a whole. The development server
// listens without TLS.
func CheckHealth(ctx context.Context, addr, service string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, HealthDialTimeout)
		defer cancel()
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindNetwork, "health dial failed", err)
	}
	defer conn.Close()

	res, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service}, grpc.WaitForReady(true))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", apperrors.Wrap(apperrors.KindServer, "unknown health service "+service, err)
		}
		return "", apperrors.Wrap(apperrors.KindNetwork, "health check failed", err)
	}
	return res.GetStatus().String(), nil
}
