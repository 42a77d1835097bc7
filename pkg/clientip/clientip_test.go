package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contexta-app/contexta/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	newRequest := func(remoteAddr string, headers map[string]string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = remoteAddr
		for k, v := range headers {
			r.Header.Set(k, v)
		}
		return r
	}

	t.Run("remote addr fallback", func(t *testing.T) {
		t.Parallel()
		r := newRequest("192.0.2.1:12345", nil)
		assert.Equal(t, "192.0.2.1", clientip.GetIP(r))
	})

	t.Run("remote addr without port", func(t *testing.T) {
		t.Parallel()
		r := newRequest("192.0.2.1", nil)
		assert.Equal(t, "192.0.2.1", clientip.GetIP(r))
	})

	t.Run("cloudflare header wins", func(t *testing.T) {
		t.Parallel()
		r := newRequest("10.0.0.1:80", map[string]string{
			"CF-Connecting-IP": "203.0.113.5",
			"X-Forwarded-For":  "198.51.100.7",
		})
		assert.Equal(t, "203.0.113.5", clientip.GetIP(r))
	})

	t.Run("first valid forwarded ip", func(t *testing.T) {
		t.Parallel()
		r := newRequest("10.0.0.1:80", map[string]string{
			"X-Forwarded-For": "garbage, 198.51.100.7, 10.0.0.2",
		})
		assert.Equal(t, "198.51.100.7", clientip.GetIP(r))
	})

	t.Run("x-real-ip", func(t *testing.T) {
		t.Parallel()
		r := newRequest("10.0.0.1:80", map[string]string{
			"X-Real-IP": "198.51.100.9",
		})
		assert.Equal(t, "198.51.100.9", clientip.GetIP(r))
	})

	t.Run("invalid header values fall through", func(t *testing.T) {
		t.Parallel()
		r := newRequest("192.0.2.1:80", map[string]string{
			"CF-Connecting-IP": "not-an-ip",
			"X-Forwarded-For":  "also-bad",
			"X-Real-IP":        "nope",
		})
		assert.Equal(t, "192.0.2.1", clientip.GetIP(r))
	})

	t.Run("ipv6 normalized", func(t *testing.T) {
		t.Parallel()
		r := newRequest("[2001:db8::1]:443", nil)
		assert.Equal(t, "2001:db8::1", clientip.GetIP(r))
	})
}
