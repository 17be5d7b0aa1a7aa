package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

const requestIDHeader = "x-request-id"

// ReportClient calls ReportService over an existing connection.
type ReportClient struct {
	cc grpc.ClientConnInterface
}

func NewReportClient(cc grpc.ClientConnInterface) *ReportClient {
	return &ReportClient{cc: cc}
}

func (c *ReportClient) call(ctx context.Context, method string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ReportClient) ParseFile(ctx context.Context, path string) (*structpb.Struct, error) {
	return c.call(ctx, "ParseFile", map[string]any{"path": path})
}

func (c *ReportClient) ParseDirectory(ctx context.Context, dir string) (*structpb.Struct, error) {
	return c.call(ctx, "ParseDirectory", map[string]any{"dir": dir})
}

func (c *ReportClient) ListReports(ctx context.Context, reportType string) (*structpb.Struct, error) {
	return c.call(ctx, "ListReports", map[string]any{"report_type": reportType})
}

// RequestIDInterceptor tags each call with the caller's x-request-id or a
// fresh uuid, and logs the call.
func RequestIDInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(requestIDHeader); len(v) > 0 {
				id = v[0]
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		ctx = common.WithRequestID(ctx, id)

		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			logger.Warn("rpc failed", "method", info.FullMethod, "request_id", id, "error", err,
				"duration_ms", time.Since(start).Milliseconds())
		} else {
			logger.Debug("rpc ok", "method", info.FullMethod, "request_id", id,
				"duration_ms", time.Since(start).Milliseconds())
		}
		return resp, err
	}
}
