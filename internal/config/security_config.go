package config

type SecurityLevel int

const (
	SecurityPublic   SecurityLevel = iota // No session needed
	SecurityOptional                      // Session resolved when present
	SecurityAccess                        // Signed-in session required
)

// EndpointSecurityConfig maps "METHOD route-template" to its required
// security level. Routes that are not listed require SecurityAccess.
var EndpointSecurityConfig = map[string]SecurityLevel{
	"GET /healthz": SecurityPublic,

	// Auth
	"POST /api/v1/auth/signup": SecurityPublic,
	"POST /api/v1/auth/login":  SecurityPublic,
	"POST /api/v1/auth/logout": SecurityOptional,
	"GET /api/v1/auth/me":      SecurityAccess,

	// Listings; visibility of hidden listings depends on who is asking
	"GET /api/v1/properties":      SecurityPublic,
	"GET /api/v1/properties/{id}": SecurityOptional,
	"GET /api/v1/bookings/quote":  SecurityPublic,
}

// RequiredSecurity returns the level for a route, defaulting to SecurityAccess.
func RequiredSecurity(method, template string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[method+" "+template]; ok {
		return level
	}
	return SecurityAccess
}
