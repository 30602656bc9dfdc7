package shelfdiscovery

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCHealthChecker checks reachability over the standard gRPC health
// protocol (grpc.health.v1.Health/Check) rather than any bespoke
// ping format — reusing the wire-level building block every gRPC-based
// service already exposes, instead of hand-rolling a discovery protocol.
type GRPCHealthChecker struct {
	// Service is the health service name to check, empty meaning
	// "the server as a whole".
	Service string

	dialOptions []grpc.DialOption
}

// NewGRPCHealthChecker builds a checker dialing with insecure transport
// credentials. Pass dialOptions to add TLS or other per-cluster dial
// configuration (auth handshake specifics are out of scope here, per the
// transport Non-goal — shelfauth governs credentials on the data path).
func NewGRPCHealthChecker(service string, dialOptions ...grpc.DialOption) *GRPCHealthChecker {
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, dialOptions...)
	return &GRPCHealthChecker{Service: service, dialOptions: opts}
}

// Check dials address and issues a single Health/Check RPC, returning nil
// only if the server reports SERVING.
func (c *GRPCHealthChecker) Check(ctx context.Context, address string) error {
	conn, err := grpc.NewClient(address, c.dialOptions...)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", address, err)
	}
	defer conn.Close()

	client := grpc_health_v1.NewHealthClient(conn)
	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: c.Service})
	if err != nil {
		return fmt.Errorf("health check against %s: %w", address, err)
	}
	if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("%s reports status %s", address, resp.Status)
	}
	return nil
}
