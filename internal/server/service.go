package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/repository"
)

const ServiceName = "cuervointel.v1.ReportService"

// Parser is the processing surface the servers expose.
type Parser interface {
	ProcessFile(ctx context.Context, path string) (core.Outcome, error)
	ProcessDirectory(ctx context.Context, dir string) ([]core.Outcome, error)
}

// ReportServiceServer is the RPC contract. Messages are
// google.protobuf.Struct so no generated stubs are needed.
type ReportServiceServer interface {
	ParseFile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ParseDirectory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListReports(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type ReportService struct {
	parser Parser
	reader repository.ReportReader
	logger *slog.Logger
}

func NewReportService(parser Parser, reader repository.ReportReader, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{parser: parser, reader: reader, logger: logger}
}

// ParseFile expects {"path": "..."} and returns the outcome.
func (s *ReportService) ParseFile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	path := strings.TrimSpace(stringField(req, "path"))
	if path == "" {
		s.logger.Error("parse request missing path")
		return nil, status.Error(codes.InvalidArgument, "path is required")
	}
	s.logger.Info("parse file requested", "path", path, "request_id", common.RequestIDFromContext(ctx))
	out, err := s.parser.ProcessFile(ctx, path)
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return toStruct(out)
}

// ParseDirectory expects {"dir": "..."} and returns {"outcomes": [...]}.
// Per-file failures stay inside the outcomes.
func (s *ReportService) ParseDirectory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dir := strings.TrimSpace(stringField(req, "dir"))
	if dir == "" {
		return nil, status.Error(codes.InvalidArgument, "dir is required")
	}
	outcomes, err := s.parser.ProcessDirectory(ctx, dir)
	if err != nil {
		s.logger.Error("parse directory failed", "path", dir, "error", err)
		return nil, status.Errorf(codes.InvalidArgument, "read dir: %v", err)
	}
	sum := core.Summarize(outcomes)
	return toStruct(map[string]any{
		"outcomes":  outcomes,
		"succeeded": sum.Succeeded,
		"failed":    sum.Failed,
		"skipped":   sum.Skipped,
	})
}

// ListReports expects {"report_type": "..."} and returns {"reports": {stem: report}}.
// An empty report_type returns per-type counts instead.
func (s *ReportService) ListReports(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw := strings.TrimSpace(stringField(req, "report_type"))
	if raw == "" {
		counts, err := s.reader.Counts()
		if err != nil {
			return nil, common.ToStatus(err)
		}
		return toStruct(map[string]any{"counts": counts})
	}
	rt, ok := constants.ParseReportType(raw)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown report_type %q", raw)
	}
	all, err := s.reader.LoadAll(rt)
	if err != nil {
		s.logger.Warn("list reports failed", "report_type", rt, "error", err)
		return nil, common.ToStatus(err)
	}
	return toStruct(map[string]any{"report_type": rt, "reports": all})
}

func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	if v, ok := s.GetFields()[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

// toStruct goes through JSON so struct tags decide the field names.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, common.InternalErrorf("encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, common.InternalErrorf("encode response: %v", err)
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, common.InternalErrorf("encode response: %v", err)
	}
	return st, nil
}

// RegisterReportServiceServer attaches srv to a gRPC server.
func RegisterReportServiceServer(s grpc.ServiceRegistrar, srv ReportServiceServer) {
	s.RegisterService(&ReportServiceDesc, srv)
}

func unaryHandler(method string, call func(ReportServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ReportServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(ReportServiceServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

var ReportServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReportServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("ParseFile", ReportServiceServer.ParseFile),
		unaryHandler("ParseDirectory", ReportServiceServer.ParseDirectory),
		unaryHandler("ListReports", ReportServiceServer.ListReports),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cuervointel/v1/report_service.proto",
}
