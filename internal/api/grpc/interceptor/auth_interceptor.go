package interceptor

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"heavyrent-backend/internal/config"
	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/security"
)

type AuthInterceptor struct {
	tokenManager security.TokenManager
}

func NewAuthInterceptor(tm security.TokenManager) *AuthInterceptor {
	return &AuthInterceptor{tokenManager: tm}
}

// Unary returns a server interceptor function to authenticate and authorize unary RPCs
func (i *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		level := config.GetSecurityLevel(info.FullMethod)

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			return handler(ctx, req)
		}

		token, err := i.extractToken(ctx)
		if err != nil {
			return nil, err
		}

		claims, err := i.tokenManager.ValidateToken(token)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}

		if err := i.checkSecurityLevel(level, claims); err != nil {
			logger.WarnContext(ctx, "RPC denied", "method", info.FullMethod, "user_id", claims.UserID, "role", claims.Role)
			return nil, err
		}

		// Copy, then Set so a client supplied "user-id" header is always overwritten.
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			md = metadata.New(nil)
		} else {
			md = md.Copy()
		}
		md.Set("user-id", claims.UserID)
		newCtx := metadata.NewIncomingContext(ctx, md)
		newCtx = logger.WithContext(newCtx, "user_id", claims.UserID, "rpc", info.FullMethod)

		return handler(newCtx, req)
	}
}

func (i *AuthInterceptor) extractToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "metadata is not provided")
	}

	authHeader := md["authorization"]
	if len(authHeader) == 0 {
		return "", status.Error(codes.Unauthenticated, "authorization token is not provided")
	}

	token := authHeader[0]
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = token[7:]
	}
	return token, nil
}

func (i *AuthInterceptor) checkSecurityLevel(level config.SecurityLevel, claims *security.UserClaims) error {
	if claims.Type != security.TokenTypeAccess {
		return status.Error(codes.PermissionDenied, "access token required")
	}
	if level == config.SecurityOperator && claims.Role != string(domain.RoleOperator) {
		return status.Error(codes.PermissionDenied, "operator role required")
	}
	return nil
}
