package model

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"

	pb "github.com/raftagent/governor/gen/modelpb"
)

// #region mock
type mockModelService struct {
	pb.ModelServiceClient

	jvpResp *pb.JvpResponse
	jvpErr  error

	vjpResp *pb.VjpResponse
	vjpErr  error

	macsResp *pb.MacsResponse
	macsErr  error
}

func (m *mockModelService) Jvp(_ context.Context, _ *pb.JvpRequest, _ ...grpc.CallOption) (*pb.JvpResponse, error) {
	return m.jvpResp, m.jvpErr
}

func (m *mockModelService) Vjp(_ context.Context, _ *pb.VjpRequest, _ ...grpc.CallOption) (*pb.VjpResponse, error) {
	return m.vjpResp, m.vjpErr
}

func (m *mockModelService) MacsEstimate(_ context.Context, _ *pb.MacsRequest, _ ...grpc.CallOption) (*pb.MacsResponse, error) {
	return m.macsResp, m.macsErr
}

// #endregion mock

func TestJvpReturnsProduct(t *testing.T) {
	svc := &mockModelService{jvpResp: &pb.JvpResponse{Product: []float64{0.4, 0.3}}}
	c := NewClientWithService(svc, []float64{1, 1})

	got, err := c.Jvp(context.Background(), []float64{1, 0})
	if err != nil {
		t.Fatalf("jvp: %v", err)
	}
	if len(got) != 2 || got[0] != 0.4 {
		t.Fatalf("unexpected product: %v", got)
	}
}

func TestJvpWrapsRPCError(t *testing.T) {
	svc := &mockModelService{jvpErr: errors.New("unavailable")}
	c := NewClientWithService(svc, []float64{1, 1})

	if _, err := c.Jvp(context.Background(), []float64{1, 0}); err == nil {
		t.Fatal("expected rpc error")
	}
}

func TestVjpReturnsProduct(t *testing.T) {
	svc := &mockModelService{vjpResp: &pb.VjpResponse{Product: []float64{0.1, 0.2}}}
	c := NewClientWithService(svc, []float64{1, 1})

	got, err := c.Vjp(context.Background(), []float64{0, 1})
	if err != nil {
		t.Fatalf("vjp: %v", err)
	}
	if len(got) != 2 || got[1] != 0.2 {
		t.Fatalf("unexpected product: %v", got)
	}
}

func TestMacsEstimate(t *testing.T) {
	svc := &mockModelService{macsResp: &pb.MacsResponse{Macs: 1_000_000}}
	c := NewClientWithService(svc, nil)

	macs, err := c.MacsEstimate(context.Background())
	if err != nil {
		t.Fatalf("macs: %v", err)
	}
	if macs != 1_000_000 {
		t.Fatalf("macs = %d", macs)
	}
}
