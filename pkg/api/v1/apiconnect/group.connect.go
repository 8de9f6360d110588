package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
)

const (
	// GroupServiceName is the fully-qualified name of the GroupService service.
	GroupServiceName = "divvyup.v1.GroupService"
)

const (
	GroupServiceCreateGroupProcedure       = "/divvyup.v1.GroupService/CreateGroup"
	GroupServiceJoinGroupProcedure         = "/divvyup.v1.GroupService/JoinGroup"
	GroupServiceGetGroupDetailsProcedure   = "/divvyup.v1.GroupService/GetGroupDetails"
	GroupServiceAddParticipantProcedure    = "/divvyup.v1.GroupService/AddParticipant"
	GroupServiceRemoveParticipantProcedure = "/divvyup.v1.GroupService/RemoveParticipant"
	GroupServiceToggleAdminProcedure       = "/divvyup.v1.GroupService/ToggleAdmin"
)

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[apiv1.CreateGroupRequest]) (*connect.Response[apiv1.CreateGroupResponse], error)
	JoinGroup(context.Context, *connect.Request[apiv1.JoinGroupRequest]) (*connect.Response[apiv1.JoinGroupResponse], error)
	GetGroupDetails(context.Context, *connect.Request[apiv1.GetGroupDetailsRequest]) (*connect.Response[apiv1.GetGroupDetailsResponse], error)
	AddParticipant(context.Context, *connect.Request[apiv1.AddParticipantRequest]) (*connect.Response[apiv1.AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[apiv1.RemoveParticipantRequest]) (*connect.Response[apiv1.RemoveParticipantResponse], error)
	ToggleAdmin(context.Context, *connect.Request[apiv1.ToggleAdminRequest]) (*connect.Response[apiv1.ToggleAdminResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for GroupService and returns
// the path prefix to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		GroupServiceCreateGroupProcedure:       connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceJoinGroupProcedure:         connect.NewUnaryHandler(GroupServiceJoinGroupProcedure, svc.JoinGroup, opts...),
		GroupServiceGetGroupDetailsProcedure:   connect.NewUnaryHandler(GroupServiceGetGroupDetailsProcedure, svc.GetGroupDetails, opts...),
		GroupServiceAddParticipantProcedure:    connect.NewUnaryHandler(GroupServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		GroupServiceRemoveParticipantProcedure: connect.NewUnaryHandler(GroupServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		GroupServiceToggleAdminProcedure:       connect.NewUnaryHandler(GroupServiceToggleAdminProcedure, svc.ToggleAdmin, opts...),
	}
	return "/" + GroupServiceName + "/", routeProcedures(handlers)
}

// GroupServiceClient is a client for GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[apiv1.CreateGroupRequest]) (*connect.Response[apiv1.CreateGroupResponse], error)
	JoinGroup(context.Context, *connect.Request[apiv1.JoinGroupRequest]) (*connect.Response[apiv1.JoinGroupResponse], error)
	GetGroupDetails(context.Context, *connect.Request[apiv1.GetGroupDetailsRequest]) (*connect.Response[apiv1.GetGroupDetailsResponse], error)
	AddParticipant(context.Context, *connect.Request[apiv1.AddParticipantRequest]) (*connect.Response[apiv1.AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[apiv1.RemoveParticipantRequest]) (*connect.Response[apiv1.RemoveParticipantResponse], error)
	ToggleAdmin(context.Context, *connect.Request[apiv1.ToggleAdminRequest]) (*connect.Response[apiv1.ToggleAdminResponse], error)
}

// NewGroupServiceClient constructs a client for GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup:       connect.NewClient[apiv1.CreateGroupRequest, apiv1.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		joinGroup:         connect.NewClient[apiv1.JoinGroupRequest, apiv1.JoinGroupResponse](httpClient, baseURL+GroupServiceJoinGroupProcedure, opts...),
		getGroupDetails:   connect.NewClient[apiv1.GetGroupDetailsRequest, apiv1.GetGroupDetailsResponse](httpClient, baseURL+GroupServiceGetGroupDetailsProcedure, opts...),
		addParticipant:    connect.NewClient[apiv1.AddParticipantRequest, apiv1.AddParticipantResponse](httpClient, baseURL+GroupServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[apiv1.RemoveParticipantRequest, apiv1.RemoveParticipantResponse](httpClient, baseURL+GroupServiceRemoveParticipantProcedure, opts...),
		toggleAdmin:       connect.NewClient[apiv1.ToggleAdminRequest, apiv1.ToggleAdminResponse](httpClient, baseURL+GroupServiceToggleAdminProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup       *connect.Client[apiv1.CreateGroupRequest, apiv1.CreateGroupResponse]
	joinGroup         *connect.Client[apiv1.JoinGroupRequest, apiv1.JoinGroupResponse]
	getGroupDetails   *connect.Client[apiv1.GetGroupDetailsRequest, apiv1.GetGroupDetailsResponse]
	addParticipant    *connect.Client[apiv1.AddParticipantRequest, apiv1.AddParticipantResponse]
	removeParticipant *connect.Client[apiv1.RemoveParticipantRequest, apiv1.RemoveParticipantResponse]
	toggleAdmin       *connect.Client[apiv1.ToggleAdminRequest, apiv1.ToggleAdminResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[apiv1.CreateGroupRequest]) (*connect.Response[apiv1.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[apiv1.JoinGroupRequest]) (*connect.Response[apiv1.JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupDetails(ctx context.Context, req *connect.Request[apiv1.GetGroupDetailsRequest]) (*connect.Response[apiv1.GetGroupDetailsResponse], error) {
	return c.getGroupDetails.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddParticipant(ctx context.Context, req *connect.Request[apiv1.AddParticipantRequest]) (*connect.Response[apiv1.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[apiv1.RemoveParticipantRequest]) (*connect.Response[apiv1.RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *groupServiceClient) ToggleAdmin(ctx context.Context, req *connect.Request[apiv1.ToggleAdminRequest]) (*connect.Response[apiv1.ToggleAdminResponse], error) {
	return c.toggleAdmin.CallUnary(ctx, req)
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[apiv1.CreateGroupRequest]) (*connect.Response[apiv1.CreateGroupResponse], error) {
	return nil, unimplemented(GroupServiceCreateGroupProcedure)
}

func (UnimplementedGroupServiceHandler) JoinGroup(context.Context, *connect.Request[apiv1.JoinGroupRequest]) (*connect.Response[apiv1.JoinGroupResponse], error) {
	return nil, unimplemented(GroupServiceJoinGroupProcedure)
}

func (UnimplementedGroupServiceHandler) GetGroupDetails(context.Context, *connect.Request[apiv1.GetGroupDetailsRequest]) (*connect.Response[apiv1.GetGroupDetailsResponse], error) {
	return nil, unimplemented(GroupServiceGetGroupDetailsProcedure)
}

func (UnimplementedGroupServiceHandler) AddParticipant(context.Context, *connect.Request[apiv1.AddParticipantRequest]) (*connect.Response[apiv1.AddParticipantResponse], error) {
	return nil, unimplemented(GroupServiceAddParticipantProcedure)
}

func (UnimplementedGroupServiceHandler) RemoveParticipant(context.Context, *connect.Request[apiv1.RemoveParticipantRequest]) (*connect.Response[apiv1.RemoveParticipantResponse], error) {
	return nil, unimplemented(GroupServiceRemoveParticipantProcedure)
}

func (UnimplementedGroupServiceHandler) ToggleAdmin(context.Context, *connect.Request[apiv1.ToggleAdminRequest]) (*connect.Response[apiv1.ToggleAdminResponse], error) {
	return nil, unimplemented(GroupServiceToggleAdminProcedure)
}
