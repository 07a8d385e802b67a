package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/and161185/goph-passgen/internal/api"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "passgen.v1.PassGen"

// Full method names.
const (
	MethodGenerate     = "/" + ServiceName + "/Generate"
	MethodEvaluate     = "/" + ServiceName + "/Evaluate"
	MethodNewSession   = "/" + ServiceName + "/NewSession"
	MethodListHistory  = "/" + ServiceName + "/ListHistory"
	MethodClearHistory = "/" + ServiceName + "/ClearHistory"
)

// PassGenServer is implemented by the gRPC handlers.
type PassGenServer interface {
	Generate(context.Context, *api.GenerateRequest) (*api.GenerateResponse, error)
	Evaluate(context.Context, *api.EvaluateRequest) (*api.StrengthReport, error)
	NewSession(context.Context, *api.SessionRequest) (*api.SessionResponse, error)
	ListHistory(context.Context, *api.HistoryRequest) (*api.HistoryResponse, error)
	ClearHistory(context.Context, *api.HistoryRequest) (*api.ClearHistoryResponse, error)
}

// UnimplementedPassGenServer can be embedded for forward compatibility.
type UnimplementedPassGenServer struct{}

func (UnimplementedPassGenServer) Generate(context.Context, *api.GenerateRequest) (*api.GenerateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Generate not implemented")
}
func (UnimplementedPassGenServer) Evaluate(context.Context, *api.EvaluateRequest) (*api.StrengthReport, error) {
	return nil, status.Error(codes.Unimplemented, "method Evaluate not implemented")
}
func (UnimplementedPassGenServer) NewSession(context.Context, *api.SessionRequest) (*api.SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method NewSession not implemented")
}
func (UnimplementedPassGenServer) ListHistory(context.Context, *api.HistoryRequest) (*api.HistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListHistory not implemented")
}
func (UnimplementedPassGenServer) ClearHistory(context.Context, *api.HistoryRequest) (*api.ClearHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClearHistory not implemented")
}

// RegisterPassGenServer registers srv on s.
func RegisterPassGenServer(s grpc.ServiceRegistrar, srv PassGenServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds a MethodDesc handler for one method.
func unary[Req any, Resp any](method string, call func(PassGenServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PassGenServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PassGenServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes passgen.v1.PassGen.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PassGenServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Generate", Handler: unary(MethodGenerate, PassGenServer.Generate)},
		{MethodName: "Evaluate", Handler: unary(MethodEvaluate, PassGenServer.Evaluate)},
		{MethodName: "NewSession", Handler: unary(MethodNewSession, PassGenServer.NewSession)},
		{MethodName: "ListHistory", Handler: unary(MethodListHistory, PassGenServer.ListHistory)},
		{MethodName: "ClearHistory", Handler: unary(MethodClearHistory, PassGenServer.ClearHistory)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "passgen/v1/passgen.json",
}
