package grpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"heavyrent-backend/internal/domain"
)

// toStatus converts a service error into a gRPC status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case domain.IsValidation(err), domain.IsAmountMismatch(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case domain.IsConflict(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	case domain.IsForbidden(err):
		return status.Error(codes.PermissionDenied, err.Error())
	case domain.IsAuthRequired(err):
		return status.Error(codes.Unauthenticated, err.Error())
	case domain.IsRetryable(err):
		return status.Error(codes.Unavailable, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
