package oauth1

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsURL = "https://shop.example.com/wp-json/wc/v3/products?per_page=20&category=12"

func fixedSigner(nonce string, ts int64) *Signer {
	return NewSigner("ck_test", "cs_test",
		WithNonceFunc(func() string { return nonce }),
		WithClock(func() time.Time { return time.Unix(ts, 0) }),
	)
}

// headerParams parses `OAuth k="v", ...` into a map of decoded values.
func headerParams(t *testing.T, header string) map[string]string {
	t.Helper()
	require.True(t, strings.HasPrefix(header, "OAuth "), "header must start with OAuth: %q", header)

	out := map[string]string{}
	for _, part := range strings.Split(strings.TrimPrefix(header, "OAuth "), ", ") {
		k, v, ok := strings.Cut(part, "=")
		require.True(t, ok, "malformed param %q", part)
		v = strings.Trim(v, `"`)
		dec, err := url.PathUnescape(v)
		require.NoError(t, err)
		out[k] = dec
	}
	return out
}

func TestSigner_KnownSignature(t *testing.T) {
	t.Parallel()

	header, err := fixedSigner("abc123", 1700000000).Sign("get", productsURL)
	require.NoError(t, err)

	params := headerParams(t, header)
	assert.Equal(t, "ck_test", params["oauth_consumer_key"])
	assert.Equal(t, "HMAC-SHA1", params["oauth_signature_method"])
	assert.Equal(t, "1700000000", params["oauth_timestamp"])
	assert.Equal(t, "abc123", params["oauth_nonce"])
	assert.Equal(t, "1.0", params["oauth_version"])
	assert.Equal(t, "I+bENN4ihnEujsJWAlIMw+fLgZI=", params["oauth_signature"])
	assert.Contains(t, header, `oauth_signature="I%2BbENN4ihnEujsJWAlIMw%2BfLgZI%3D"`)
}

func TestSigner_HeaderParamOrder(t *testing.T) {
	t.Parallel()

	header, err := fixedSigner("n", 1).Sign("GET", productsURL)
	require.NoError(t, err)

	order := []string{
		"oauth_consumer_key=", "oauth_signature_method=", "oauth_timestamp=",
		"oauth_nonce=", "oauth_version=", "oauth_signature=",
	}
	last := -1
	for _, name := range order {
		idx := strings.Index(header, name)
		require.Greater(t, idx, last, "%s out of order in %q", name, header)
		last = idx
	}
}

func TestSigner_Reproducible(t *testing.T) {
	t.Parallel()

	a, err := fixedSigner("nonce-1", 1700000000).Sign("GET", productsURL)
	require.NoError(t, err)
	b, err := fixedSigner("nonce-1", 1700000000).Sign("GET", productsURL)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSigner_DifferentNonceOrTimestamp(t *testing.T) {
	t.Parallel()

	base, err := fixedSigner("nonce-1", 1700000000).Sign("GET", productsURL)
	require.NoError(t, err)
	otherNonce, err := fixedSigner("nonce-2", 1700000000).Sign("GET", productsURL)
	require.NoError(t, err)
	otherTime, err := fixedSigner("nonce-1", 1700000001).Sign("GET", productsURL)
	require.NoError(t, err)

	sig := headerParams(t, base)["oauth_signature"]
	assert.NotEqual(t, sig, headerParams(t, otherNonce)["oauth_signature"])
	assert.NotEqual(t, sig, headerParams(t, otherTime)["oauth_signature"])
}

func TestSigner_DefaultNonceChangesPerCall(t *testing.T) {
	t.Parallel()

	s := NewSigner("ck", "cs")
	a, err := s.Sign("GET", productsURL)
	require.NoError(t, err)
	b, err := s.Sign("GET", productsURL)
	require.NoError(t, err)

	na, nb := headerParams(t, a)["oauth_nonce"], headerParams(t, b)["oauth_nonce"]
	assert.Len(t, na, 32)
	assert.NotEqual(t, na, nb)
}

func TestSigner_RejectsRelativeURL(t *testing.T) {
	t.Parallel()

	_, err := NewSigner("ck", "cs").Sign("GET", "/wp-json/wc/v3/products")
	assert.Error(t, err)
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"HTTPS://Shop.Example.com:443/wp-json/x?a=1#frag", "https://shop.example.com/wp-json/x"},
		{"http://shop.example.com:80/a", "http://shop.example.com/a"},
		{"http://shop.example.com:8080/a", "http://shop.example.com:8080/a"},
		{"https://shop.example.com", "https://shop.example.com/"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, NormalizeURL(u), tt.in)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc-._~XYZ019", Encode("abc-._~XYZ019"))
	assert.Equal(t, "a%20b%2Bc%26d%3De", Encode("a b+c&d=e"))
	assert.Equal(t, "%E2%80%99", Encode("’"))
}
