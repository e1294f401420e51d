package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "fipify.v1.VehicleReportService"

// Method names
const (
	MethodListBrands     = "ListBrands"
	MethodListModels     = "ListModels"
	MethodListYears      = "ListYears"
	MethodLookupVehicle  = "LookupVehicle"
	MethodGetComparisons = "GetComparisons"
	MethodGenerateReport = "GenerateReport"
)

// VehicleReportServer is the server API of VehicleReportService.
// Messages are google.protobuf.Struct so the service needs no generated code.
type VehicleReportServer interface {
	ListBrands(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListModels(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListYears(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LookupVehicle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetComparisons(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(VehicleReportServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(VehicleReportServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(VehicleReportServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// VehicleReportServiceDesc describes VehicleReportService for grpc.Server.RegisterService
var VehicleReportServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VehicleReportServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodListBrands, VehicleReportServer.ListBrands),
		unaryHandler(MethodListModels, VehicleReportServer.ListModels),
		unaryHandler(MethodListYears, VehicleReportServer.ListYears),
		unaryHandler(MethodLookupVehicle, VehicleReportServer.LookupVehicle),
		unaryHandler(MethodGetComparisons, VehicleReportServer.GetComparisons),
		unaryHandler(MethodGenerateReport, VehicleReportServer.GenerateReport),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fipify/v1/vehicle_report.proto",
}

// RegisterVehicleReportServer registers srv on s
func RegisterVehicleReportServer(s grpc.ServiceRegistrar, srv VehicleReportServer) {
	s.RegisterService(&VehicleReportServiceDesc, srv)
}

// VehicleReportClient calls VehicleReportService methods by name
type VehicleReportClient struct {
	cc grpc.ClientConnInterface
}

// NewVehicleReportClient creates a new VehicleReportClient instance
func NewVehicleReportClient(cc grpc.ClientConnInterface) *VehicleReportClient {
	return &VehicleReportClient{cc: cc}
}

// Call invokes method with req and returns the response struct
func (c *VehicleReportClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
