// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic   SecurityLevel = iota // No authentication
	SecurityAccess                        // Access token required
	SecurityOperator                      // Access token with operator role
)

const operatorService = "/heavyrent.operator.v1.OperatorService/"

// EndpointSecurityConfig maps RPC methods to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"/grpc.health.v1.Health/Check": SecurityPublic,

	// OperatorService - Operator only
	operatorService + "ConfirmPayment":           SecurityOperator,
	operatorService + "RejectPayment":            SecurityOperator,
	operatorService + "ListPendingVerifications": SecurityOperator,
	operatorService + "ActivateBooking":          SecurityOperator,
	operatorService + "CompleteBooking":          SecurityOperator,
	operatorService + "CancelBooking":            SecurityOperator,
}

// GetSecurityLevel returns the security level for a given method
func GetSecurityLevel(method string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityOperator
}
