// Package access classifies callers of the protected API surface by their
// User-Agent product token. Only bot processes ("DiscordBot <token>") and
// guild shards ("DiscordGuild <id>") are admitted; browsers and anything
// else are turned away before a handler runs.
package access

import (
	"context"
	"errors"
	"strings"
)

const (
	botProduct   = "DiscordBot"
	guildProduct = "DiscordGuild"
)

var (
	ErrMissingUserAgent = errors.New("user agent header missing")
	ErrUnrecognizedUA   = errors.New("user agent not recognized")
)

// CallerKind is the admitted caller class.
type CallerKind string

const (
	CallerBot   CallerKind = "bot"
	CallerGuild CallerKind = "guild"
)

// Caller identifies an admitted caller. Credential carries the bot token or
// the guild identifier, whichever followed the product token.
type Caller struct {
	Kind       CallerKind
	Credential string
}

// ParseUserAgent classifies the User-Agent value. An admitted value is
// exactly two whitespace-separated tokens: the product token deciding the
// class, then the credential. A bare product token or a credential of more
// than one token is not a recognized caller.
func ParseUserAgent(userAgent string) (Caller, error) {
	if strings.TrimSpace(userAgent) == "" {
		return Caller{}, ErrMissingUserAgent
	}

	fields := strings.Fields(userAgent)
	if len(fields) != 2 {
		return Caller{}, ErrUnrecognizedUA
	}

	switch fields[0] {
	case botProduct:
		return Caller{Kind: CallerBot, Credential: fields[1]}, nil
	case guildProduct:
		return Caller{Kind: CallerGuild, Credential: fields[1]}, nil
	default:
		return Caller{}, ErrUnrecognizedUA
	}
}

type callerContextKey struct{}

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(Caller)
	return caller, ok
}
