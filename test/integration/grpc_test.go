package integration

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	grpcapi "github.com/lemonberrylabs/evalexpr/pkg/api/grpc"
)

func dialGRPC(t *testing.T) *grpc.ClientConn {
	t.Helper()
	conn, err := grpc.NewClient(grpcEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestGRPC_Tokenize(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := grpcapi.NewClient(dialGRPC(t)).Tokenize(ctx, "a || b")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	m := out.AsMap()
	if m["ok"] != true {
		t.Fatalf("result = %v", m)
	}
	tokens, _ := m["tokens"].([]any)
	if len(tokens) != 5 {
		t.Fatalf("got %d tokens, want 5", len(tokens))
	}
	or, _ := tokens[2].(map[string]any)
	if or["kind"] != "Or" {
		t.Errorf("tokens[2] = %v", or)
	}
}

func TestGRPC_LexingFailureIsData(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := grpcapi.NewClient(dialGRPC(t)).Tokenize(ctx, "a &")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	m := out.AsMap()
	if m["ok"] != false {
		t.Fatalf("result = %v", m)
	}
	e, _ := m["error"].(map[string]any)
	if e["kind"] != "UnmatchedPartialToken" {
		t.Errorf("error = %v", e)
	}
}

func TestGRPC_MissingExpression(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialGRPC(t)
	err := conn.Invoke(ctx, grpcapi.TokenizeMethod, &structpb.Struct{}, new(structpb.Struct))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestGRPC_Health(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(dialGRPC(t)).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v", resp.GetStatus())
	}
}
