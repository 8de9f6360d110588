package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
)

const (
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "divvyup.v1.ExpenseService"
)

const (
	ExpenseServiceAddExpenseProcedure    = "/divvyup.v1.ExpenseService/AddExpense"
	ExpenseServiceUpdateExpenseProcedure = "/divvyup.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = "/divvyup.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListExpensesProcedure  = "/divvyup.v1.ExpenseService/ListExpenses"
)

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[apiv1.AddExpenseRequest]) (*connect.Response[apiv1.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[apiv1.UpdateExpenseRequest]) (*connect.Response[apiv1.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[apiv1.DeleteExpenseRequest]) (*connect.Response[apiv1.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[apiv1.ListExpensesRequest]) (*connect.Response[apiv1.ListExpensesResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for ExpenseService and
// returns the path prefix to mount it on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		ExpenseServiceAddExpenseProcedure:    connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...),
		ExpenseServiceUpdateExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceListExpensesProcedure:  connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
	}
	return "/" + ExpenseServiceName + "/", routeProcedures(handlers)
}

// ExpenseServiceClient is a client for ExpenseService.
type ExpenseServiceClient interface {
	AddExpense(context.Context, *connect.Request[apiv1.AddExpenseRequest]) (*connect.Response[apiv1.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[apiv1.UpdateExpenseRequest]) (*connect.Response[apiv1.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[apiv1.DeleteExpenseRequest]) (*connect.Response[apiv1.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[apiv1.ListExpensesRequest]) (*connect.Response[apiv1.ListExpensesResponse], error)
}

// NewExpenseServiceClient constructs a client for ExpenseService at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &expenseServiceClient{
		addExpense:    connect.NewClient[apiv1.AddExpenseRequest, apiv1.AddExpenseResponse](httpClient, baseURL+ExpenseServiceAddExpenseProcedure, opts...),
		updateExpense: connect.NewClient[apiv1.UpdateExpenseRequest, apiv1.UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[apiv1.DeleteExpenseRequest, apiv1.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[apiv1.ListExpensesRequest, apiv1.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
	}
}

type expenseServiceClient struct {
	addExpense    *connect.Client[apiv1.AddExpenseRequest, apiv1.AddExpenseResponse]
	updateExpense *connect.Client[apiv1.UpdateExpenseRequest, apiv1.UpdateExpenseResponse]
	deleteExpense *connect.Client[apiv1.DeleteExpenseRequest, apiv1.DeleteExpenseResponse]
	listExpenses  *connect.Client[apiv1.ListExpensesRequest, apiv1.ListExpensesResponse]
}

func (c *expenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[apiv1.AddExpenseRequest]) (*connect.Response[apiv1.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[apiv1.UpdateExpenseRequest]) (*connect.Response[apiv1.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[apiv1.DeleteExpenseRequest]) (*connect.Response[apiv1.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[apiv1.ListExpensesRequest]) (*connect.Response[apiv1.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) AddExpense(context.Context, *connect.Request[apiv1.AddExpenseRequest]) (*connect.Response[apiv1.AddExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceAddExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) UpdateExpense(context.Context, *connect.Request[apiv1.UpdateExpenseRequest]) (*connect.Response[apiv1.UpdateExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceUpdateExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[apiv1.DeleteExpenseRequest]) (*connect.Response[apiv1.DeleteExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceDeleteExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[apiv1.ListExpensesRequest]) (*connect.Response[apiv1.ListExpensesResponse], error) {
	return nil, unimplemented(ExpenseServiceListExpensesProcedure)
}
