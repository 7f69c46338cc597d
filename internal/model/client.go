package model

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/raftagent/governor/gen/modelpb"
)

// #region client-struct
// Client wraps the gRPC connection to the model service and adapts it to
// the stability guard's Operator interface. The linearization point is
// fixed at construction so one client value describes one Jacobian.
type Client struct {
	conn   *grpc.ClientConn
	client pb.ModelServiceClient
	point  []float64
}

// #endregion client-struct

// #region constructor
// NewClient connects to the model service at addr, linearized at point.
func NewClient(addr string, point []float64) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewModelServiceClient(conn),
		point:  point,
	}, nil
}

// NewClientWithService creates a Client with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewClientWithService(svc pb.ModelServiceClient, point []float64) *Client {
	return &Client{client: svc, point: point}
}

// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Point returns the linearization point.
func (c *Client) Point() []float64 {
	return c.point
}

// #endregion constructor

// #region products
// Jvp computes the forward-mode product J(x0)·v.
func (c *Client) Jvp(ctx context.Context, v []float64) ([]float64, error) {
	resp, err := c.client.Jvp(ctx, &pb.JvpRequest{Point: c.point, Vector: v})
	if err != nil {
		return nil, fmt.Errorf("jvp rpc: %w", err)
	}
	return resp.Product, nil
}

// Vjp computes the reverse-mode product J(x0)ᵀ·u.
func (c *Client) Vjp(ctx context.Context, u []float64) ([]float64, error) {
	resp, err := c.client.Vjp(ctx, &pb.VjpRequest{Point: c.point, Vector: u})
	if err != nil {
		return nil, fmt.Errorf("vjp rpc: %w", err)
	}
	return resp.Product, nil
}

// #endregion products

// #region macs
// MacsEstimate returns the MAC count of the model's last forward pass,
// used to size the cycle's energy budget.
func (c *Client) MacsEstimate(ctx context.Context) (int64, error) {
	resp, err := c.client.MacsEstimate(ctx, &pb.MacsRequest{})
	if err != nil {
		return 0, fmt.Errorf("macs rpc: %w", err)
	}
	return resp.Macs, nil
}

// #endregion macs
