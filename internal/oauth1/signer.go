// Package oauth1 signs outgoing requests with one-legged OAuth 1.0a
// (consumer key/secret, no token) using HMAC-SHA1.
package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // HMAC-SHA1 is what the OAuth 1.0a scheme mandates.
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	signatureMethod = "HMAC-SHA1"
	oauthVersion    = "1.0"
)

// Signer produces Authorization header values for a fixed consumer key/secret.
// It is safe for concurrent use.
type Signer struct {
	key    string
	secret string
	nonce  func() string
	now    func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithNonceFunc overrides nonce generation.
func WithNonceFunc(fn func() string) Option {
	return func(s *Signer) { s.nonce = fn }
}

// WithClock overrides the timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Signer) { s.now = fn }
}

// NewSigner creates a Signer. Nonces default to 32 random hex characters and
// timestamps to the wall clock; both are regenerated on every call.
func NewSigner(key, secret string, opts ...Option) *Signer {
	s := &Signer{
		key:    key,
		secret: secret,
		nonce:  randomNonce,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign returns the value for the Authorization header of a request with the
// given method and absolute URL. Query parameters of rawURL take part in the
// signature base string.
func (s *Signer) Sign(method, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("oauth1: parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("oauth1: url must be absolute: %q", rawURL)
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     s.key,
		"oauth_signature_method": signatureMethod,
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_nonce":            s.nonce(),
		"oauth_version":          oauthVersion,
	}

	base := BaseString(method, u, oauthParams)
	signature := s.signBase(base)

	return fmt.Sprintf(
		`OAuth oauth_consumer_key="%s", oauth_signature_method="%s", oauth_timestamp="%s", oauth_nonce="%s", oauth_version="%s", oauth_signature="%s"`,
		Encode(oauthParams["oauth_consumer_key"]),
		Encode(oauthParams["oauth_signature_method"]),
		Encode(oauthParams["oauth_timestamp"]),
		Encode(oauthParams["oauth_nonce"]),
		Encode(oauthParams["oauth_version"]),
		Encode(signature),
	), nil
}

// signBase computes base64(HMAC-SHA1(secret&, base)). The token secret part
// of the key is empty in one-legged mode.
func (s *Signer) signBase(base string) string {
	mac := hmac.New(sha1.New, []byte(Encode(s.secret)+"&"))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// BaseString builds the signature base string:
// METHOD&encode(normalized url)&encode(sorted, encoded params).
func BaseString(method string, u *url.URL, oauthParams map[string]string) string {
	type pair struct{ k, v string }
	var pairs []pair

	for k, vs := range u.Query() {
		for _, v := range vs {
			pairs = append(pairs, pair{Encode(k), Encode(v)})
		}
	}
	for k, v := range oauthParams {
		pairs = append(pairs, pair{Encode(k), Encode(v)})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k == pairs[j].k {
			return pairs[i].v < pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.k + "=" + p.v
	}

	return strings.ToUpper(method) + "&" + Encode(NormalizeURL(u)) + "&" + Encode(strings.Join(parts, "&"))
}

// NormalizeURL returns scheme://host[:port]/path with a lowercase scheme and
// host, default ports dropped, and no query or fragment.
func NormalizeURL(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host += ":" + port
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

// Encode percent-encodes s per RFC 3986: everything except unreserved
// characters (ALPHA, DIGIT, '-', '.', '_', '~') is escaped with uppercase hex.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

func randomNonce() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms; fall back to the clock.
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}
