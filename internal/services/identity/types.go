package identity

import "errors"

var (
	// ErrRequestFailed covers transport-level failures talking to the provider.
	ErrRequestFailed = errors.New("provider request failed")
	// ErrResponseInvalid covers provider responses that do not decode into the
	// expected shape, whatever the HTTP status was.
	ErrResponseInvalid = errors.New("provider response invalid")
	// ErrUnauthorized is returned when the provider rejects the bearer token.
	ErrUnauthorized = errors.New("provider rejected token")
)

// Token is the provider's token-endpoint response for both the
// authorization-code and refresh-token grants. It is consumed immediately to
// mint the session cookies and never stored server-side.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

// User is the /users/@me payload. Fetched fresh on every status check.
type User struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name"`
	Bot           *bool   `json:"bot,omitempty"`
	Avatar        *string `json:"avatar"`
	Verified      bool    `json:"verified"`
	Email         *string `json:"email"`
	Flags         uint64  `json:"flags"`
	Banner        *string `json:"banner"`
	AccentColor   *uint32 `json:"accent_color"`
	PremiumType   uint8   `json:"premium_type"`
	PublicFlags   uint64  `json:"public_flags"`
}
