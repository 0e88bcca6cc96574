package access

import (
	"context"
	"errors"
	"testing"
)

func TestParseUserAgentAdmitsBot(t *testing.T) {
	caller, err := ParseUserAgent("DiscordBot sometoken")
	if err != nil {
		t.Fatalf("expected bot admitted, got %v", err)
	}
	if caller.Kind != CallerBot || caller.Credential != "sometoken" {
		t.Fatalf("unexpected caller %+v", caller)
	}
}

func TestParseUserAgentAdmitsGuild(t *testing.T) {
	caller, err := ParseUserAgent("DiscordGuild 123456789")
	if err != nil {
		t.Fatalf("expected guild admitted, got %v", err)
	}
	if caller.Kind != CallerGuild || caller.Credential != "123456789" {
		t.Fatalf("unexpected caller %+v", caller)
	}
}

func TestParseUserAgentOnlyFirstTokenDecides(t *testing.T) {
	if _, err := ParseUserAgent("Mozilla/5.0 DiscordBot sometoken"); !errors.Is(err, ErrUnrecognizedUA) {
		t.Fatalf("expected ErrUnrecognizedUA, got %v", err)
	}
}

func TestParseUserAgentRejectsBareProductToken(t *testing.T) {
	if _, err := ParseUserAgent("DiscordBot"); !errors.Is(err, ErrUnrecognizedUA) {
		t.Fatalf("expected ErrUnrecognizedUA for bare bot token, got %v", err)
	}
	if _, err := ParseUserAgent("DiscordGuild "); !errors.Is(err, ErrUnrecognizedUA) {
		t.Fatalf("expected ErrUnrecognizedUA for bare guild token, got %v", err)
	}
}

func TestParseUserAgentRejectsMultiTokenCredential(t *testing.T) {
	if _, err := ParseUserAgent("DiscordBot tok extra"); !errors.Is(err, ErrUnrecognizedUA) {
		t.Fatalf("expected ErrUnrecognizedUA for multi-token credential, got %v", err)
	}
}

func TestParseUserAgentMissing(t *testing.T) {
	if _, err := ParseUserAgent(""); !errors.Is(err, ErrMissingUserAgent) {
		t.Fatalf("expected ErrMissingUserAgent, got %v", err)
	}
	if _, err := ParseUserAgent("   "); !errors.Is(err, ErrMissingUserAgent) {
		t.Fatalf("expected ErrMissingUserAgent for blank value, got %v", err)
	}
}

func TestParseUserAgentUnrecognized(t *testing.T) {
	if _, err := ParseUserAgent("Mozilla/5.0 (X11; Linux x86_64)"); !errors.Is(err, ErrUnrecognizedUA) {
		t.Fatalf("expected ErrUnrecognizedUA, got %v", err)
	}
}

func TestCallerContextRoundTrip(t *testing.T) {
	ctx := WithCaller(context.Background(), Caller{Kind: CallerBot, Credential: "tok"})
	caller, ok := CallerFromContext(ctx)
	if !ok || caller.Kind != CallerBot || caller.Credential != "tok" {
		t.Fatalf("unexpected caller %+v ok=%v", caller, ok)
	}
	if _, ok := CallerFromContext(context.Background()); ok {
		t.Fatal("expected no caller on empty context")
	}
}
