// Package identity resolves commit author emails to public handles. Results
// are memoized for the lifetime of a run so a mail is looked up at most once,
// and concurrent lookups for the same mail collapse into a single call.
// Handle resolution is best-effort: every failure degrades to an empty
// handle, never to a run abort.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound indicates the lookup source knows nothing about the mail.
var ErrNotFound = errors.New("no handle found for mail")

// Lookup finds the public handle for a commit author's mail address.
type Lookup interface {
	FindHandle(ctx context.Context, mail string) (string, error)
}

// Resolver memoizes handle lookups per run. The zero value is not usable;
// construct with NewResolver.
type Resolver struct {
	lookup Lookup
	cache  *gocache.Cache
	group  singleflight.Group
}

// NewResolver returns a resolver backed by the given lookup source.
// Pass NopLookup to disable remote resolution entirely.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{
		lookup: lookup,
		cache:  gocache.New(gocache.NoExpiration, 0),
	}
}

// Prime seeds the cache with a handle already known from richer commit
// metadata. A non-empty primed handle always wins over a cached empty
// result; an empty prime never overwrites a known handle.
func (r *Resolver) Prime(mail, handle string) {
	if mail == "" {
		return
	}
	if handle == "" {
		r.cache.Add(mail, "", gocache.NoExpiration)
		return
	}
	r.cache.Set(mail, handle, gocache.NoExpiration)
}

// Resolve returns the handle for a mail, or an empty string when none can be
// found. The first resolution for a mail is cached; later calls never repeat
// the lookup.
func (r *Resolver) Resolve(ctx context.Context, mail string) string {
	if mail == "" {
		return ""
	}
	if cached, ok := r.cache.Get(mail); ok {
		return cached.(string)
	}

	v, _, _ := r.group.Do(mail, func() (any, error) {
		if cached, ok := r.cache.Get(mail); ok {
			return cached.(string), nil
		}
		handle, err := r.lookup.FindHandle(ctx, mail)
		if err != nil {
			handle = ""
		}
		// A concurrent Prime with a real handle must not be clobbered
		// by an empty lookup result.
		if handle == "" {
			r.cache.Add(mail, "", gocache.NoExpiration)
			if cached, ok := r.cache.Get(mail); ok {
				return cached.(string), nil
			}
			return "", nil
		}
		r.cache.Set(mail, handle, gocache.NoExpiration)
		return handle, nil
	})
	return v.(string)
}

// NopLookup never finds a handle. Used when lookups are disabled.
type NopLookup struct{}

// FindHandle implements Lookup.
func (NopLookup) FindHandle(context.Context, string) (string, error) {
	return "", ErrNotFound
}

// DefaultLookupTimeout bounds a single handle lookup request.
const DefaultLookupTimeout = 5 * time.Second

// DefaultBaseURL is the public ungh instance used for handle lookups.
const DefaultBaseURL = "https://ungh.cc"

// HTTPLookup queries an ungh-style API: GET <base>/users/find/<mail>
// returns {"user":{"username":"..."}} for known mails.
type HTTPLookup struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPLookup returns a lookup against the given base URL, falling back to
// the public instance when empty.
func NewHTTPLookup(baseURL string) *HTTPLookup {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPLookup{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: DefaultLookupTimeout},
	}
}

type userResponse struct {
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

// FindHandle implements Lookup over HTTP.
func (l *HTTPLookup) FindHandle(ctx context.Context, mail string) (string, error) {
	endpoint := fmt.Sprintf("%s/users/find/%s", l.BaseURL, url.PathEscape(mail))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultLookupTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var parsed userResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if parsed.User.Username == "" {
		return "", ErrNotFound
	}
	return parsed.User.Username, nil
}
