package wodv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "wodcal.v1.WodCalendar"

// Full method names, used by interceptors and the client stub.
const (
	WodCalendar_Register_FullMethodName     = "/" + ServiceName + "/Register"
	WodCalendar_Login_FullMethodName        = "/" + ServiceName + "/Login"
	WodCalendar_ListEntries_FullMethodName  = "/" + ServiceName + "/ListEntries"
	WodCalendar_GetEntry_FullMethodName     = "/" + ServiceName + "/GetEntry"
	WodCalendar_SaveEntry_FullMethodName    = "/" + ServiceName + "/SaveEntry"
	WodCalendar_DeleteEntry_FullMethodName  = "/" + ServiceName + "/DeleteEntry"
	WodCalendar_ParseContent_FullMethodName = "/" + ServiceName + "/ParseContent"
	WodCalendar_GenerateWod_FullMethodName  = "/" + ServiceName + "/GenerateWod"
)

// PublicMethods are callable without a bearer token.
var PublicMethods = map[string]bool{
	WodCalendar_Register_FullMethodName: true,
	WodCalendar_Login_FullMethodName:    true,
}

// WodCalendarServer is the server API for the WodCalendar service.
type WodCalendarServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error)
	GetEntry(context.Context, *GetEntryRequest) (*GetEntryResponse, error)
	SaveEntry(context.Context, *SaveEntryRequest) (*SaveEntryResponse, error)
	DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error)
	ParseContent(context.Context, *ParseContentRequest) (*ParseContentResponse, error)
	GenerateWod(context.Context, *GenerateWodRequest) (*GenerateWodResponse, error)
}

// UnimplementedWodCalendarServer can be embedded to have forward compatible implementations.
type UnimplementedWodCalendarServer struct{}

func (UnimplementedWodCalendarServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedWodCalendarServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedWodCalendarServer) ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEntries not implemented")
}
func (UnimplementedWodCalendarServer) GetEntry(context.Context, *GetEntryRequest) (*GetEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEntry not implemented")
}
func (UnimplementedWodCalendarServer) SaveEntry(context.Context, *SaveEntryRequest) (*SaveEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveEntry not implemented")
}
func (UnimplementedWodCalendarServer) DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEntry not implemented")
}
func (UnimplementedWodCalendarServer) ParseContent(context.Context, *ParseContentRequest) (*ParseContentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ParseContent not implemented")
}
func (UnimplementedWodCalendarServer) GenerateWod(context.Context, *GenerateWodRequest) (*GenerateWodResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateWod not implemented")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(WodCalendarServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		invoke := func(ctx context.Context, req any) (any, error) {
			resp, err := call(srv.(WodCalendarServer), ctx, req.(*Req))
			if err != nil {
				return nil, err
			}
			return resp, nil
		}
		if interceptor == nil {
			return invoke(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, invoke)
	}
}

// WodCalendar_ServiceDesc is the grpc.ServiceDesc for the WodCalendar service.
var WodCalendar_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WodCalendarServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(WodCalendar_Register_FullMethodName, WodCalendarServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(WodCalendar_Login_FullMethodName, WodCalendarServer.Login)},
		{MethodName: "ListEntries", Handler: unaryHandler(WodCalendar_ListEntries_FullMethodName, WodCalendarServer.ListEntries)},
		{MethodName: "GetEntry", Handler: unaryHandler(WodCalendar_GetEntry_FullMethodName, WodCalendarServer.GetEntry)},
		{MethodName: "SaveEntry", Handler: unaryHandler(WodCalendar_SaveEntry_FullMethodName, WodCalendarServer.SaveEntry)},
		{MethodName: "DeleteEntry", Handler: unaryHandler(WodCalendar_DeleteEntry_FullMethodName, WodCalendarServer.DeleteEntry)},
		{MethodName: "ParseContent", Handler: unaryHandler(WodCalendar_ParseContent_FullMethodName, WodCalendarServer.ParseContent)},
		{MethodName: "GenerateWod", Handler: unaryHandler(WodCalendar_GenerateWod_FullMethodName, WodCalendarServer.GenerateWod)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wodcal/v1/wodcal",
}

// RegisterWodCalendarServer registers srv on s.
func RegisterWodCalendarServer(s grpc.ServiceRegistrar, srv WodCalendarServer) {
	s.RegisterService(&WodCalendar_ServiceDesc, srv)
}

// WodCalendarClient is the client API for the WodCalendar service.
type WodCalendarClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error)
	GetEntry(ctx context.Context, in *GetEntryRequest, opts ...grpc.CallOption) (*GetEntryResponse, error)
	SaveEntry(ctx context.Context, in *SaveEntryRequest, opts ...grpc.CallOption) (*SaveEntryResponse, error)
	DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error)
	ParseContent(ctx context.Context, in *ParseContentRequest, opts ...grpc.CallOption) (*ParseContentResponse, error)
	GenerateWod(ctx context.Context, in *GenerateWodRequest, opts ...grpc.CallOption) (*GenerateWodResponse, error)
}

type wodCalendarClient struct {
	cc grpc.ClientConnInterface
}

// NewWodCalendarClient returns a client stub bound to cc.
func NewWodCalendarClient(cc grpc.ClientConnInterface) WodCalendarClient {
	return &wodCalendarClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *wodCalendarClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, WodCalendar_Register_FullMethodName, in, opts)
}

func (c *wodCalendarClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, WodCalendar_Login_FullMethodName, in, opts)
}

func (c *wodCalendarClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c.cc, WodCalendar_ListEntries_FullMethodName, in, opts)
}

func (c *wodCalendarClient) GetEntry(ctx context.Context, in *GetEntryRequest, opts ...grpc.CallOption) (*GetEntryResponse, error) {
	return invoke[GetEntryResponse](ctx, c.cc, WodCalendar_GetEntry_FullMethodName, in, opts)
}

func (c *wodCalendarClient) SaveEntry(ctx context.Context, in *SaveEntryRequest, opts ...grpc.CallOption) (*SaveEntryResponse, error) {
	return invoke[SaveEntryResponse](ctx, c.cc, WodCalendar_SaveEntry_FullMethodName, in, opts)
}

func (c *wodCalendarClient) DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error) {
	return invoke[DeleteEntryResponse](ctx, c.cc, WodCalendar_DeleteEntry_FullMethodName, in, opts)
}

func (c *wodCalendarClient) ParseContent(ctx context.Context, in *ParseContentRequest, opts ...grpc.CallOption) (*ParseContentResponse, error) {
	return invoke[ParseContentResponse](ctx, c.cc, WodCalendar_ParseContent_FullMethodName, in, opts)
}

func (c *wodCalendarClient) GenerateWod(ctx context.Context, in *GenerateWodRequest, opts ...grpc.CallOption) (*GenerateWodResponse, error) {
	return invoke[GenerateWodResponse](ctx, c.cc, WodCalendar_GenerateWod_FullMethodName, in, opts)
}

// Status messages that carry a specific failure reason across the wire.
// Clients match on code plus message to recover the domain error.
const (
	MsgBadCredentials = "bad credentials"
	MsgRateLimited    = "rate limited"
	MsgInvalidEmail   = "invalid email"
	MsgWeakPassword   = "weak password"
	MsgAlreadyExists  = "email already registered"
	MsgQuotaExceeded  = "ai quota exceeded"
	MsgInvalidImport  = "invalid import result"
	MsgNoAuth         = "no auth"
	MsgNotFound       = "not found"
)
