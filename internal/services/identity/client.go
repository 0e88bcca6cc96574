package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/infra/httpclient"
)

const defaultTimeout = 10 * time.Second

// Client talks to the Discord OAuth2 and user endpoints. Every operation is a
// single outbound call with no retry; failures surface to the caller, which
// owns the decision whether to evict the session.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
}

func NewClient(baseURL, clientID, clientSecret, redirectURI string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   httpclient.New(timeout),
	}
}

// AuthorizeURL builds the provider authorization URL. The query is assembled
// by hand: scopes are joined with a literal "+" and must not be
// percent-encoded, while the redirect URI must be. The provider's authorize
// endpoint requires exactly this asymmetry.
func (c *Client) AuthorizeURL(scopes []Scope) string {
	parts := make([]string, 0, len(scopes))
	for _, s := range scopes {
		parts = append(parts, string(s))
	}

	return fmt.Sprintf(
		"%s/oauth2/authorize?client_id=%s&response_type=code&redirect_uri=%s&scope=%s",
		c.baseURL,
		url.QueryEscape(c.clientID),
		url.QueryEscape(c.redirectURI),
		strings.Join(parts, "+"),
	)
}

// ExchangeCode swaps an authorization code for a token pair.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Token, error) {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
	}
	return c.postTokenForm(ctx, form)
}

// RefreshToken swaps a refresh token for a fresh token pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (Token, error) {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"redirect_uri":  {c.redirectURI},
	}
	return c.postTokenForm(ctx, form)
}

// FetchCurrentUser loads the profile for the given bearer token.
func (c *Client) FetchCurrentUser(ctx context.Context, bearerToken string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/@me", nil)
	if err != nil {
		return User{}, fmt.Errorf("%w: build user request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("%w: fetch current user: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return User{}, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("%w: decode user: %v", ErrResponseInvalid, err)
	}
	if user.ID == "" || user.Username == "" {
		return User{}, fmt.Errorf("%w: user payload missing id or username", ErrResponseInvalid)
	}

	return user, nil
}

func (c *Client) postTokenForm(ctx context.Context, form url.Values) (Token, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/oauth2/token", strings.NewReader(form.Encode()),
	)
	if err != nil {
		return Token{}, fmt.Errorf("%w: build token request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("%w: post token form: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	// A 200 with the wrong schema and an error status both land here: the
	// body either decodes to a usable token or the exchange failed.
	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return Token{}, fmt.Errorf("%w: decode token: %v", ErrResponseInvalid, err)
	}
	if token.AccessToken == "" || token.RefreshToken == "" {
		return Token{}, fmt.Errorf("%w: token payload missing credentials", ErrResponseInvalid)
	}

	return token, nil
}
