// Package grpcapi serves the evalexpr tokenizer over gRPC. Messages are
// google.protobuf.Struct values, so no generated code is needed on either side.
package grpcapi

import (
	"context"
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lemonberrylabs/evalexpr/pkg/config"
	"github.com/lemonberrylabs/evalexpr/pkg/expr"
	"github.com/lemonberrylabs/evalexpr/pkg/wire"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "evalexpr.v1.Lexer"
	// TokenizeMethod is the full method name of Tokenize.
	TokenizeMethod = "/" + ServiceName + "/Tokenize"
)

// LexerServer is the server API for the Lexer service.
type LexerServer interface {
	// Tokenize takes {"expression": string} and returns a wire.Result.
	Tokenize(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var lexerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LexerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Tokenize", Handler: tokenizeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "evalexpr/v1/lexer.proto",
}

func tokenizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LexerServer).Tokenize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TokenizeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LexerServer).Tokenize(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Server implements LexerServer and owns the grpc.Server it is registered on.
type Server struct {
	maxInput int
	grpc     *grpc.Server
	health   *health.Server
}

// New creates a new gRPC server.
func New(cfg config.Config) *Server {
	srv := &Server{
		maxInput: cfg.MaxInputBytes,
		health:   health.NewServer(),
	}

	gs := grpc.NewServer(grpc.UnaryInterceptor(logErrors))
	gs.RegisterService(&lexerServiceDesc, srv)
	healthpb.RegisterHealthServer(gs, srv.health)
	srv.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	srv.grpc = gs

	return srv
}

// Serve starts listening on the given address and serves gRPC requests.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	return s.grpc.Serve(lis)
}

// GracefulStop marks the service as not serving and stops the gRPC server
// once pending calls finish.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// Tokenize implements LexerServer. Lexing failures are returned in the
// response; only malformed or oversize requests fail the call.
func (s *Server) Tokenize(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	field, ok := req.GetFields()["expression"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "expression is required")
	}
	sv, ok := field.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "expression must be a string")
	}
	if len(sv.StringValue) > s.maxInput {
		return nil, status.Errorf(codes.ResourceExhausted, "expression is %d bytes, limit is %d", len(sv.StringValue), s.maxInput)
	}

	out, err := wire.NewResult(expr.Tokenize(sv.StringValue)).Struct()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func logErrors(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		log.Printf("grpc %s: %v", info.FullMethod, err)
	}
	return resp, err
}

// Client calls the Lexer service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Lexer client on an existing connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Tokenize sends expression to the server and returns the encoded wire.Result.
func (c *Client) Tokenize(ctx context.Context, expression string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{"expression": expression})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TokenizeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
