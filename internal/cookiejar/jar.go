// Package cookiejar holds the per-request cookie state for the session flows.
// A Jar is parsed from the inbound Cookie header and tracks every cookie added
// or removed afterwards as a delta; only delta entries are written back as
// Set-Cookie headers, so unchanged inbound cookies are never echoed.
package cookiejar

import (
	"net/http"
	"strings"
)

type Jar struct {
	cookies map[string]*http.Cookie
	delta   map[string]*http.Cookie
	order   []string
}

// FromRequest parses every Cookie header on the request. Malformed segments
// are dropped silently.
func FromRequest(r *http.Request) *Jar {
	if r == nil {
		return FromHeader("")
	}
	return FromHeader(strings.Join(r.Header.Values("Cookie"), "; "))
}

// FromHeader parses a raw Cookie header value: segments split on ";", names
// and values trimmed, anything without a "name=value" shape discarded.
func FromHeader(raw string) *Jar {
	j := &Jar{
		cookies: make(map[string]*http.Cookie),
		delta:   make(map[string]*http.Cookie),
	}

	for _, segment := range strings.Split(raw, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, value, found := strings.Cut(segment, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			continue
		}
		j.cookies[name] = &http.Cookie{Name: name, Value: strings.TrimSpace(value)}
	}

	return j
}

// Get returns the current value of a cookie, including values added to the
// jar during this request.
func (j *Jar) Get(name string) (string, bool) {
	c, ok := j.cookies[name]
	if !ok {
		return "", false
	}
	return c.Value, true
}

// Add returns a new jar with the cookie set and recorded in the delta. The
// receiver is not modified.
func (j *Jar) Add(c *http.Cookie) *Jar {
	if c == nil || c.Name == "" {
		return j
	}

	next := j.clone()
	copied := *c
	next.cookies[c.Name] = &copied
	next.recordDelta(&copied)
	return next
}

// Remove returns a new jar with the named cookie cleared: the delta entry
// carries an empty value and Max-Age=0 so the client drops it.
func (j *Jar) Remove(name string) *Jar {
	if name == "" {
		return j
	}

	next := j.clone()
	delete(next.cookies, name)
	next.recordDelta(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return next
}

// WriteTo appends one Set-Cookie header per delta entry, in the order the
// changes were made. Cookies that only arrived on the request are not
// written.
func (j *Jar) WriteTo(h http.Header) {
	for _, name := range j.order {
		c, ok := j.delta[name]
		if !ok {
			continue
		}
		if v := c.String(); v != "" {
			h.Add("Set-Cookie", v)
		}
	}
}

// Delta reports the names of cookies that would be emitted by WriteTo.
func (j *Jar) Delta() []string {
	out := make([]string, len(j.order))
	copy(out, j.order)
	return out
}

func (j *Jar) recordDelta(c *http.Cookie) {
	if _, seen := j.delta[c.Name]; !seen {
		j.order = append(j.order, c.Name)
	}
	j.delta[c.Name] = c
}

func (j *Jar) clone() *Jar {
	next := &Jar{
		cookies: make(map[string]*http.Cookie, len(j.cookies)),
		delta:   make(map[string]*http.Cookie, len(j.delta)),
		order:   make([]string, len(j.order)),
	}
	for name, c := range j.cookies {
		copied := *c
		next.cookies[name] = &copied
	}
	for name, c := range j.delta {
		copied := *c
		next.delta[name] = &copied
	}
	copy(next.order, j.order)
	return next
}
