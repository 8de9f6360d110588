package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
)

const (
	// BalanceServiceName is the fully-qualified name of the BalanceService service.
	BalanceServiceName = "divvyup.v1.BalanceService"
)

const (
	BalanceServiceGetSettlementProcedure   = "/divvyup.v1.BalanceService/GetSettlement"
	BalanceServiceWatchSettlementProcedure = "/divvyup.v1.BalanceService/WatchSettlement"
)

// BalanceServiceHandler is implemented by the server side of BalanceService.
type BalanceServiceHandler interface {
	GetSettlement(context.Context, *connect.Request[apiv1.GetSettlementRequest]) (*connect.Response[apiv1.GetSettlementResponse], error)
	WatchSettlement(context.Context, *connect.Request[apiv1.WatchSettlementRequest], *connect.ServerStream[apiv1.WatchSettlementResponse]) error
}

// NewBalanceServiceHandler builds an HTTP handler for BalanceService and
// returns the path prefix to mount it on.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		BalanceServiceGetSettlementProcedure:   connect.NewUnaryHandler(BalanceServiceGetSettlementProcedure, svc.GetSettlement, opts...),
		BalanceServiceWatchSettlementProcedure: connect.NewServerStreamHandler(BalanceServiceWatchSettlementProcedure, svc.WatchSettlement, opts...),
	}
	return "/" + BalanceServiceName + "/", routeProcedures(handlers)
}

// BalanceServiceClient is a client for BalanceService.
type BalanceServiceClient interface {
	GetSettlement(context.Context, *connect.Request[apiv1.GetSettlementRequest]) (*connect.Response[apiv1.GetSettlementResponse], error)
	WatchSettlement(context.Context, *connect.Request[apiv1.WatchSettlementRequest]) (*connect.ServerStreamForClient[apiv1.WatchSettlementResponse], error)
}

// NewBalanceServiceClient constructs a client for BalanceService at baseURL.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &balanceServiceClient{
		getSettlement:   connect.NewClient[apiv1.GetSettlementRequest, apiv1.GetSettlementResponse](httpClient, baseURL+BalanceServiceGetSettlementProcedure, opts...),
		watchSettlement: connect.NewClient[apiv1.WatchSettlementRequest, apiv1.WatchSettlementResponse](httpClient, baseURL+BalanceServiceWatchSettlementProcedure, opts...),
	}
}

type balanceServiceClient struct {
	getSettlement   *connect.Client[apiv1.GetSettlementRequest, apiv1.GetSettlementResponse]
	watchSettlement *connect.Client[apiv1.WatchSettlementRequest, apiv1.WatchSettlementResponse]
}

func (c *balanceServiceClient) GetSettlement(ctx context.Context, req *connect.Request[apiv1.GetSettlementRequest]) (*connect.Response[apiv1.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *balanceServiceClient) WatchSettlement(ctx context.Context, req *connect.Request[apiv1.WatchSettlementRequest]) (*connect.ServerStreamForClient[apiv1.WatchSettlementResponse], error) {
	return c.watchSettlement.CallServerStream(ctx, req)
}

// UnimplementedBalanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBalanceServiceHandler struct{}

func (UnimplementedBalanceServiceHandler) GetSettlement(context.Context, *connect.Request[apiv1.GetSettlementRequest]) (*connect.Response[apiv1.GetSettlementResponse], error) {
	return nil, unimplemented(BalanceServiceGetSettlementProcedure)
}

func (UnimplementedBalanceServiceHandler) WatchSettlement(context.Context, *connect.Request[apiv1.WatchSettlementRequest], *connect.ServerStream[apiv1.WatchSettlementResponse]) error {
	return unimplemented(BalanceServiceWatchSettlementProcedure)
}
