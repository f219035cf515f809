package common

const (
	// AuthorizationHeaderName carries "Bearer <access token>" on HTTP requests
	// and in gRPC metadata.
	AuthorizationHeaderName = "authorization"

	// AccessTokenHeaderName is the legacy gRPC metadata key that carries a bare
	// access token.
	AccessTokenHeaderName = "access_token"
)
