package grpcjson

import (
	"context"

	"google.golang.org/grpc"
)

// Method describes one unary method of a service. Build it with Unary.
type Method struct {
	Name string
	desc func(service string) grpc.MethodDesc
}

// Unary binds h as the handler of method name.
func Unary[Req, Resp any](name string, h func(ctx context.Context, req *Req) (*Resp, error)) Method {
	return Method{
		Name: name,
		desc: func(service string) grpc.MethodDesc {
			fullMethod := "/" + service + "/" + name
			return grpc.MethodDesc{
				MethodName: name,
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := new(Req)
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return h(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
					return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
						return h(ctx, req.(*Req))
					})
				},
			}
		},
	}
}

// Register adds a service made of methods to s.
func Register(s grpc.ServiceRegistrar, service string, impl any, methods ...Method) {
	desc := grpc.ServiceDesc{
		ServiceName: service,
		HandlerType: (*any)(nil),
		Methods:     make([]grpc.MethodDesc, 0, len(methods)),
		Metadata:    service,
	}
	for _, m := range methods {
		desc.Methods = append(desc.Methods, m.desc(service))
	}
	s.RegisterService(&desc, impl)
}

// Invoke calls service/method on cc with the JSON codec.
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, service, method string, req, resp any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Name)}, opts...)
	return cc.Invoke(ctx, "/"+service+"/"+method, req, resp, opts...)
}
