package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/and161185/goph-passgen/internal/api"
)

// Client is a typed client for passgen.v1.PassGen.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc. Calls always use the JSON codec.
func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *Client) Generate(ctx context.Context, in *api.GenerateRequest, opts ...grpc.CallOption) (*api.GenerateResponse, error) {
	out := new(api.GenerateResponse)
	if err := c.invoke(ctx, MethodGenerate, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Evaluate(ctx context.Context, in *api.EvaluateRequest, opts ...grpc.CallOption) (*api.StrengthReport, error) {
	out := new(api.StrengthReport)
	if err := c.invoke(ctx, MethodEvaluate, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) NewSession(ctx context.Context, in *api.SessionRequest, opts ...grpc.CallOption) (*api.SessionResponse, error) {
	out := new(api.SessionResponse)
	if err := c.invoke(ctx, MethodNewSession, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListHistory(ctx context.Context, in *api.HistoryRequest, opts ...grpc.CallOption) (*api.HistoryResponse, error) {
	out := new(api.HistoryResponse)
	if err := c.invoke(ctx, MethodListHistory, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ClearHistory(ctx context.Context, in *api.HistoryRequest, opts ...grpc.CallOption) (*api.ClearHistoryResponse, error) {
	out := new(api.ClearHistoryResponse)
	if err := c.invoke(ctx, MethodClearHistory, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
