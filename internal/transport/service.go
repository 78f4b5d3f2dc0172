package transport

import (
	"context"

	"google.golang.org/grpc"
)

// serviceName and watchMethod name the single RPC by hand, since there is
// no .proto/protoc step generating them.
const (
	serviceName = "clipboard.ClipboardService"
	watchMethod = "/clipboard.ClipboardService/Watch"
)

// ClipboardServiceServer is implemented by the daemon side.
type ClipboardServiceServer interface {
	Watch(*Empty, ClipboardService_WatchServer) error
}

// ClipboardService_WatchServer is the server's view of the stream: send
// events until the client disconnects or cancels.
type ClipboardService_WatchServer interface {
	Send(*ClipboardEvent) error
	grpc.ServerStream
}

type clipboardServiceWatchServer struct {
	grpc.ServerStream
}

func (x *clipboardServiceWatchServer) Send(m *ClipboardEvent) error {
	return x.ServerStream.SendMsg(m)
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	req := new(Empty)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(ClipboardServiceServer).Watch(req, &clipboardServiceWatchServer{stream})
}

// ServiceDesc is the hand-written equivalent of what protoc-gen-go-grpc
// would emit for a single server-streaming RPC.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ClipboardServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
}

// RegisterClipboardServiceServer wires srv into s, the same call shape a
// generated RegisterXServer function would have.
func RegisterClipboardServiceServer(s grpc.ServiceRegistrar, srv ClipboardServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ClipboardServiceClient is implemented by the front-end side.
type ClipboardServiceClient interface {
	Watch(ctx context.Context, in *Empty, opts ...grpc.CallOption) (ClipboardService_WatchClient, error)
}

// ClipboardService_WatchClient is the client's view of the stream.
type ClipboardService_WatchClient interface {
	Recv() (*ClipboardEvent, error)
	grpc.ClientStream
}

type clipboardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClipboardServiceClient wraps an established connection.
func NewClipboardServiceClient(cc grpc.ClientConnInterface) ClipboardServiceClient {
	return &clipboardServiceClient{cc}
}

func (c *clipboardServiceClient) Watch(ctx context.Context, in *Empty, opts ...grpc.CallOption) (ClipboardService_WatchClient, error) {
	opts = append(opts, grpc.CallContentSubtype(codecName))
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], watchMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &clipboardServiceWatchClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type clipboardServiceWatchClient struct {
	grpc.ClientStream
}

func (x *clipboardServiceWatchClient) Recv() (*ClipboardEvent, error) {
	m := new(ClipboardEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
