package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

const (
	listServiceName = "workouts.v1.ListService"
	authServiceName = "workouts.v1.AuthService"

	// SignInMethod is reachable without a session token.
	SignInMethod = "/" + authServiceName + "/SignIn"
)

// ListServiceServer is the owner-scoped list and entry API.
type ListServiceServer interface {
	AllLists(context.Context, *AllListsRequest) (*AllListsResponse, error)
	GetList(context.Context, *ListRequest) (*GetListResponse, error)
	GetEntry(context.Context, *EntryRequest) (*EntryResponse, error)
	ToggleEntry(context.Context, *EntryRequest) (*EntryResponse, error)
	DeleteEntry(context.Context, *EntryRequest) (*Empty, error)
	CompleteAllEntries(context.Context, *ListRequest) (*CompleteAllResponse, error)
	CreateEntry(context.Context, *CreateEntryRequest) (*Empty, error)
	DeleteList(context.Context, *ListRequest) (*Empty, error)
	RenameList(context.Context, *RenameListRequest) (*Empty, error)
	ListTitleExists(context.Context, *TitleExistsRequest) (*TitleExistsResponse, error)
	CreateList(context.Context, *CreateListRequest) (*Empty, error)
}

// AuthServiceServer issues session tokens.
type AuthServiceServer interface {
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
}

// unaryMethod adapts a typed service method to grpc.MethodDesc, running the
// server's interceptor chain the same way generated code does.
func unaryMethod[S any, Req any, Resp any](service, name string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			})
		},
	}
}

var listServiceDesc = grpc.ServiceDesc{
	ServiceName: listServiceName,
	HandlerType: (*ListServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(listServiceName, "AllLists", ListServiceServer.AllLists),
		unaryMethod(listServiceName, "GetList", ListServiceServer.GetList),
		unaryMethod(listServiceName, "GetEntry", ListServiceServer.GetEntry),
		unaryMethod(listServiceName, "ToggleEntry", ListServiceServer.ToggleEntry),
		unaryMethod(listServiceName, "DeleteEntry", ListServiceServer.DeleteEntry),
		unaryMethod(listServiceName, "CompleteAllEntries", ListServiceServer.CompleteAllEntries),
		unaryMethod(listServiceName, "CreateEntry", ListServiceServer.CreateEntry),
		unaryMethod(listServiceName, "DeleteList", ListServiceServer.DeleteList),
		unaryMethod(listServiceName, "RenameList", ListServiceServer.RenameList),
		unaryMethod(listServiceName, "ListTitleExists", ListServiceServer.ListTitleExists),
		unaryMethod(listServiceName, "CreateList", ListServiceServer.CreateList),
	},
}

var authServiceDesc = grpc.ServiceDesc{
	ServiceName: authServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(authServiceName, "SignIn", AuthServiceServer.SignIn),
	},
}

// RegisterListServiceServer registers the list service on s.
func RegisterListServiceServer(s grpc.ServiceRegistrar, srv ListServiceServer) {
	s.RegisterService(&listServiceDesc, srv)
}

// RegisterAuthServiceServer registers the auth service on s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&authServiceDesc, srv)
}
