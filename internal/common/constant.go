package common

// AuthorizationHeaderName carries the bearer token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is both the Authorization prefix and the challenge sent back
// in WWW-Authenticate on 401 responses.
const BearerScheme = "Bearer"

// TokenType is reported to clients alongside the issued access token.
const TokenType = "bearer"
