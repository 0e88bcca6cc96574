// Package session owns the cookie-backed login state machine: login
// initiation, the OAuth2 redirect callback, status resolution with on-demand
// refresh, and logout. All session state lives in the caller's cookies; the
// service holds no per-user state between requests.
package session

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/cookiejar"
	"github.com/Beabadoobee-Fanclub/backend-api/internal/services/identity"
)

const (
	AccessCookie  = "discord_token"
	RefreshCookie = "discord_refresh_token"
)

// Provider is the slice of the identity client the session flows need.
type Provider interface {
	AuthorizeURL(scopes []identity.Scope) string
	ExchangeCode(ctx context.Context, code string) (identity.Token, error)
	RefreshToken(ctx context.Context, refreshToken string) (identity.Token, error)
	FetchCurrentUser(ctx context.Context, bearerToken string) (identity.User, error)
}

type Config struct {
	ClientID     string
	ClientSecret string
	DashboardURL string
}

// AuditStore persists session lifecycle events. Attached optionally; the
// session flows never fail because auditing did.
type AuditStore interface {
	Insert(ctx context.Context, userID, event string, occurredAt time.Time) error
}

type Service struct {
	provider Provider
	cfg      Config
	logger   *zap.Logger
	audit    AuditStore
	now      func() time.Time
}

// Redirect is a browser redirect decision made by one of the flows.
type Redirect struct {
	URL    string
	Status int
}

func NewService(provider Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// AttachAudit enables lifecycle event recording.
func (s *Service) AttachAudit(store AuditStore) {
	s.audit = store
}

// Login decides where a login attempt goes. With a live access cookie the
// user is already authenticated and OAuth must not be re-initiated; otherwise
// the browser is sent to the provider's authorize endpoint. Cookies are never
// mutated here.
func (s *Service) Login(jar *cookiejar.Jar) Redirect {
	if _, ok := jar.Get(AccessCookie); ok {
		return Redirect{URL: s.dashboardPanel(), Status: http.StatusTemporaryRedirect}
	}

	if !s.configured() {
		s.logger.Error("discord client credentials missing, cannot start oauth flow")
		return Redirect{URL: s.cfg.DashboardURL, Status: http.StatusTemporaryRedirect}
	}

	return Redirect{
		URL:    s.provider.AuthorizeURL(identity.SessionScopes),
		Status: http.StatusTemporaryRedirect,
	}
}

// Callback handles the provider redirect. An absent code means an abandoned
// or failed flow and degrades to a cookie-less dashboard redirect, as does a
// failed code exchange. Only a successful exchange mints the cookie pair.
func (s *Service) Callback(ctx context.Context, jar *cookiejar.Jar, code string) (*cookiejar.Jar, Redirect) {
	home := Redirect{URL: s.cfg.DashboardURL, Status: http.StatusFound}

	if code == "" {
		s.logger.Warn("oauth callback without code")
		return jar, home
	}
	if !s.configured() {
		s.logger.Error("discord client credentials missing on oauth callback")
		return jar, home
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Error("authorization code exchange failed", zap.Error(err))
		return jar, home
	}

	s.recordAudit(ctx, "", "login")
	return s.setSessionCookies(jar, token), Redirect{URL: s.dashboardPanel(), Status: http.StatusFound}
}

// Status resolves the caller's session to a user profile. A present access
// cookie is used as-is; with only a refresh cookie a refresh is attempted
// first. A refresh failure leaves the cookies untouched (the refresh token
// may still be good, only the upstream call failed), while a profile-fetch
// failure after a token was accepted clears the pair. The returned jar
// carries whatever cookie changes apply, also on error.
func (s *Service) Status(ctx context.Context, jar *cookiejar.Jar) (*cookiejar.Jar, identity.User, error) {
	accessToken, hasAccess := jar.Get(AccessCookie)
	refreshed := false
	if !hasAccess {
		refreshToken, hasRefresh := jar.Get(RefreshCookie)
		if !hasRefresh {
			return jar, identity.User{}, ErrUnauthorized
		}
		if !s.configured() {
			s.logger.Error("discord client credentials missing, cannot refresh session")
			return jar, identity.User{}, ErrConfigMissing
		}

		token, err := s.provider.RefreshToken(ctx, refreshToken)
		if err != nil {
			s.logger.Warn("access token refresh failed", zap.Error(err))
			return jar, identity.User{}, ErrUnauthorized
		}

		jar = s.setSessionCookies(jar, token)
		accessToken = token.AccessToken
		refreshed = true
	}

	user, err := s.provider.FetchCurrentUser(ctx, accessToken)
	if err != nil {
		s.logger.Warn("user profile fetch failed, clearing session", zap.Error(err))
		s.recordAudit(ctx, "", "evict")
		return s.clearSessionCookies(jar), identity.User{}, ErrUnauthorized
	}

	if refreshed {
		s.recordAudit(ctx, user.ID, "refresh")
	}
	return jar, user, nil
}

// Logout clears the cookie pair unconditionally. Safe to call logged out.
func (s *Service) Logout(ctx context.Context, jar *cookiejar.Jar) (*cookiejar.Jar, Redirect) {
	s.recordAudit(ctx, "", "logout")
	return s.clearSessionCookies(jar), Redirect{URL: s.cfg.DashboardURL, Status: http.StatusFound}
}

func (s *Service) recordAudit(ctx context.Context, userID, event string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Insert(ctx, userID, event, s.now()); err != nil {
		s.logger.Warn("session audit write failed", zap.String("event", event), zap.Error(err))
	}
}

func (s *Service) configured() bool {
	return s.cfg.ClientID != "" && s.cfg.ClientSecret != ""
}

func (s *Service) dashboardPanel() string {
	return s.cfg.DashboardURL + "/dashboard"
}

func (s *Service) setSessionCookies(jar *cookiejar.Jar, token identity.Token) *cookiejar.Jar {
	jar = jar.Add(&http.Cookie{
		Name:     AccessCookie,
		Value:    token.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(token.ExpiresIn),
	})
	// The refresh cookie deliberately carries no Max-Age: it lives until
	// logout or an unrecoverable profile-fetch failure clears it.
	return jar.Add(&http.Cookie{
		Name:     RefreshCookie,
		Value:    token.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (s *Service) clearSessionCookies(jar *cookiejar.Jar) *cookiejar.Jar {
	return jar.Remove(AccessCookie).Remove(RefreshCookie)
}
