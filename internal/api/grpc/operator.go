package grpc

import (
	"context"

	"google.golang.org/grpc"

	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/service"
)

const (
	OperatorServiceName = "heavyrent.operator.v1.OperatorService"

	methodConfirmPayment           = "/" + OperatorServiceName + "/ConfirmPayment"
	methodRejectPayment            = "/" + OperatorServiceName + "/RejectPayment"
	methodListPendingVerifications = "/" + OperatorServiceName + "/ListPendingVerifications"
	methodActivateBooking          = "/" + OperatorServiceName + "/ActivateBooking"
	methodCompleteBooking          = "/" + OperatorServiceName + "/CompleteBooking"
	methodCancelBooking            = "/" + OperatorServiceName + "/CancelBooking"
)

type OperatorServiceServer interface {
	ConfirmPayment(context.Context, *BookingRequest) (*BookingReply, error)
	RejectPayment(context.Context, *ReasonRequest) (*BookingReply, error)
	ListPendingVerifications(context.Context, *ListPendingVerificationsRequest) (*BookingListReply, error)
	ActivateBooking(context.Context, *BookingRequest) (*BookingReply, error)
	CompleteBooking(context.Context, *BookingRequest) (*BookingReply, error)
	CancelBooking(context.Context, *ReasonRequest) (*BookingReply, error)
}

type OperatorHandler struct {
	paymentSvc  service.PaymentService
	operatorSvc service.OperatorService
	proofURL    func(key string) string
}

func NewOperatorHandler(paymentSvc service.PaymentService, operatorSvc service.OperatorService, proofURL func(key string) string) *OperatorHandler {
	return &OperatorHandler{paymentSvc: paymentSvc, operatorSvc: operatorSvc, proofURL: proofURL}
}

func (h *OperatorHandler) reply(ctx context.Context, method string, call func(operatorID string) (*BookingReply, error)) (*BookingReply, error) {
	operatorID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	res, err := call(operatorID)
	if err != nil {
		logger.WarnContext(ctx, "Operator call failed", "method", method, "operator_id", operatorID, "error", err)
		return nil, toStatus(err)
	}
	return res, nil
}

func (h *OperatorHandler) ConfirmPayment(ctx context.Context, req *BookingRequest) (*BookingReply, error) {
	return h.reply(ctx, "ConfirmPayment", func(operatorID string) (*BookingReply, error) {
		b, err := h.paymentSvc.ConfirmPayment(ctx, operatorID, req.BookingID)
		if err != nil {
			return nil, err
		}
		return &BookingReply{Booking: MapDomainBookingToMessage(b, h.proofURL)}, nil
	})
}

func (h *OperatorHandler) RejectPayment(ctx context.Context, req *ReasonRequest) (*BookingReply, error) {
	return h.reply(ctx, "RejectPayment", func(operatorID string) (*BookingReply, error) {
		b, err := h.paymentSvc.RejectPayment(ctx, operatorID, req.BookingID, req.Reason)
		if err != nil {
			return nil, err
		}
		return &BookingReply{Booking: MapDomainBookingToMessage(b, h.proofURL)}, nil
	})
}

func (h *OperatorHandler) ListPendingVerifications(ctx context.Context, req *ListPendingVerificationsRequest) (*BookingListReply, error) {
	bookings, err := h.paymentSvc.ListPendingVerifications(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	out := &BookingListReply{Bookings: make([]*Booking, 0, len(bookings))}
	for i := range bookings {
		out.Bookings = append(out.Bookings, MapDomainBookingToMessage(&bookings[i], h.proofURL))
	}
	return out, nil
}

func (h *OperatorHandler) ActivateBooking(ctx context.Context, req *BookingRequest) (*BookingReply, error) {
	return h.reply(ctx, "ActivateBooking", func(operatorID string) (*BookingReply, error) {
		b, err := h.operatorSvc.ActivateBooking(ctx, operatorID, req.BookingID)
		if err != nil {
			return nil, err
		}
		return &BookingReply{Booking: MapDomainBookingToMessage(b, h.proofURL)}, nil
	})
}

func (h *OperatorHandler) CompleteBooking(ctx context.Context, req *BookingRequest) (*BookingReply, error) {
	return h.reply(ctx, "CompleteBooking", func(operatorID string) (*BookingReply, error) {
		b, err := h.operatorSvc.CompleteBooking(ctx, operatorID, req.BookingID)
		if err != nil {
			return nil, err
		}
		return &BookingReply{Booking: MapDomainBookingToMessage(b, h.proofURL)}, nil
	})
}

func (h *OperatorHandler) CancelBooking(ctx context.Context, req *ReasonRequest) (*BookingReply, error) {
	return h.reply(ctx, "CancelBooking", func(operatorID string) (*BookingReply, error) {
		b, err := h.operatorSvc.CancelBooking(ctx, operatorID, req.BookingID, req.Reason)
		if err != nil {
			return nil, err
		}
		return &BookingReply{Booking: MapDomainBookingToMessage(b, h.proofURL)}, nil
	})
}

// unaryHandler decodes Req and routes the call through the server's interceptor chain.
func unaryHandler[Req any, Reply any](fullMethod string, call func(OperatorServiceServer, context.Context, *Req) (*Reply, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OperatorServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OperatorServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var OperatorService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OperatorServiceName,
	HandlerType: (*OperatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ConfirmPayment", Handler: unaryHandler(methodConfirmPayment, OperatorServiceServer.ConfirmPayment)},
		{MethodName: "RejectPayment", Handler: unaryHandler(methodRejectPayment, OperatorServiceServer.RejectPayment)},
		{MethodName: "ListPendingVerifications", Handler: unaryHandler(methodListPendingVerifications, OperatorServiceServer.ListPendingVerifications)},
		{MethodName: "ActivateBooking", Handler: unaryHandler(methodActivateBooking, OperatorServiceServer.ActivateBooking)},
		{MethodName: "CompleteBooking", Handler: unaryHandler(methodCompleteBooking, OperatorServiceServer.CompleteBooking)},
		{MethodName: "CancelBooking", Handler: unaryHandler(methodCancelBooking, OperatorServiceServer.CancelBooking)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "heavyrent/operator/v1/operator.proto",
}

func RegisterOperatorServiceServer(s grpc.ServiceRegistrar, srv OperatorServiceServer) {
	s.RegisterService(&OperatorService_ServiceDesc, srv)
}

// OperatorServiceClient calls the operator service with the JSON codec.
type OperatorServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOperatorServiceClient(cc grpc.ClientConnInterface) *OperatorServiceClient {
	return &OperatorServiceClient{cc: cc}
}

func (c *OperatorServiceClient) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *OperatorServiceClient) ConfirmPayment(ctx context.Context, in *BookingRequest, opts ...grpc.CallOption) (*BookingReply, error) {
	out := new(BookingReply)
	if err := c.invoke(ctx, methodConfirmPayment, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorServiceClient) RejectPayment(ctx context.Context, in *ReasonRequest, opts ...grpc.CallOption) (*BookingReply, error) {
	out := new(BookingReply)
	if err := c.invoke(ctx, methodRejectPayment, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorServiceClient) ListPendingVerifications(ctx context.Context, in *ListPendingVerificationsRequest, opts ...grpc.CallOption) (*BookingListReply, error) {
	out := new(BookingListReply)
	if err := c.invoke(ctx, methodListPendingVerifications, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorServiceClient) ActivateBooking(ctx context.Context, in *BookingRequest, opts ...grpc.CallOption) (*BookingReply, error) {
	out := new(BookingReply)
	if err := c.invoke(ctx, methodActivateBooking, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorServiceClient) CompleteBooking(ctx context.Context, in *BookingRequest, opts ...grpc.CallOption) (*BookingReply, error) {
	out := new(BookingReply)
	if err := c.invoke(ctx, methodCompleteBooking, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OperatorServiceClient) CancelBooking(ctx context.Context, in *ReasonRequest, opts ...grpc.CallOption) (*BookingReply, error) {
	out := new(BookingReply)
	if err := c.invoke(ctx, methodCancelBooking, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
