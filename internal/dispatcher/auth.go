package dispatcher

// AuthType selects the scheme-specific prefix prepended to the raw secret
// when forming the Authorization header value.
type AuthType string

// Supported authentication schemes.
const (
	// AuthTypeBearer prefixes the secret with "Bearer ".
	AuthTypeBearer AuthType = "bearer"
	// AuthTypeAPIKey prefixes the secret with "ApiKey ".
	AuthTypeAPIKey AuthType = "apikey"
	// AuthTypeBasic prefixes the secret with "Basic ".
	AuthTypeBasic AuthType = "basic"
	// AuthTypeCustom sends the secret verbatim, no prefix.
	AuthTypeCustom AuthType = "custom"
	// AuthTypeNone sends the secret verbatim, no prefix.
	AuthTypeNone AuthType = "none"
)

// authorizationHeader is the header key the computed auth value is set on.
const authorizationHeader = "Authorization"

// authPrefix maps an auth scheme to its header-value prefix.
// Custom, none, and unrecognized schemes yield an empty prefix:
// the raw secret is sent verbatim.
func authPrefix(authType AuthType) string {
	switch authType {
	case AuthTypeBearer:
		return "Bearer "
	case AuthTypeAPIKey:
		return "ApiKey "
	case AuthTypeBasic:
		return "Basic "
	case AuthTypeCustom, AuthTypeNone:
		return ""
	default:
		return ""
	}
}

// authorizationValue computes the Authorization header value for the given
// scheme and secret. An unset scheme defaults to bearer; the default is
// applied here, at dispatch time, so an absent secret never forces a scheme.
func authorizationValue(authType AuthType, secret string) string {
	if authType == "" {
		authType = AuthTypeBearer
	}

	return authPrefix(authType) + secret
}
