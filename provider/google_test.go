package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ZaguanLabs/polytrans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const googleSourcePage = `<html><body>
<div class="language-item"><a href="./m?sl=auto&amp;tl=en&amp;hl=en">Detect language</a></div>
<div class="language-item"><a href="./m?sl=en&amp;tl=en&amp;hl=en">English</a></div>
<div class="language-item"><a href="./m?sl=zh-CN&amp;tl=en&amp;hl=en">Chinese (Simplified)</a></div>
<div class="language-item"><a href="./m?sl=fr&amp;tl=en&amp;hl=en">French</a></div>
</body></html>`

const googleTargetPage = `<html><body>
<div class="language-item"><a href="./m?sl=auto&amp;tl=en&amp;hl=en">English</a></div>
<div class="language-item"><a href="./m?sl=auto&amp;tl=zh-CN&amp;hl=en">Chinese (Simplified)</a></div>
<div class="language-item"><a href="./m?sl=auto&amp;tl=fr&amp;hl=en">French</a></div>
</body></html>`

func newGoogleServer(t *testing.T, handshakes *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("mui") == "sl":
			_, _ = w.Write([]byte(googleSourcePage))
		case q.Get("mui") == "tl":
			_, _ = w.Write([]byte(googleTargetPage))
		case q.Get("q") != "":
			if _, err := r.Cookie("NID"); err != nil {
				http.Error(w, "no cookie", http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte(`<html><body><div class="result-container"> [` + q.Get("tl") + `] ` + q.Get("q") + ` </div></body></html>`))
		default:
			atomic.AddInt32(handshakes, 1)
			http.SetCookie(w, &http.Cookie{Name: "NID", Value: "abc", Path: "/"})
			_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogle_Translate(t *testing.T) {
	var handshakes int32
	srv := newGoogleServer(t, &handshakes)
	a := NewGoogle(srv.URL, RegionEN)

	res, err := a.Translate(context.Background(), "Bonjour", "fr", "en", polytrans.Options{})
	require.NoError(t, err)
	assert.Equal(t, "[en] Bonjour", res.Text)

	res, err = a.Translate(context.Background(), "Hello", "auto", "zh", polytrans.Options{})
	require.NoError(t, err)
	assert.Equal(t, "zh-CN", res.To)
	assert.Equal(t, "[zh-CN] Hello", res.Text)

	assert.Equal(t, int32(1), atomic.LoadInt32(&handshakes))
}

func TestGoogle_RefreshesAfterFrequency(t *testing.T) {
	var handshakes int32
	srv := newGoogleServer(t, &handshakes)
	a := NewGoogle(srv.URL, RegionEN)

	opts := polytrans.Options{UpdateSessionAfterFreq: 2}
	for i := 0; i < 5; i++ {
		_, err := a.Translate(context.Background(), "Hello", "en", "fr", opts)
		require.NoError(t, err)
	}
	// Requests 1, 3 and 5 open a new session.
	assert.Equal(t, int32(3), atomic.LoadInt32(&handshakes))
}

func TestGoogle_HandshakeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewGoogle(srv.URL, RegionEN)
	_, err := a.Translate(context.Background(), "Hello", "en", "fr", polytrans.Options{})
	require.ErrorIs(t, err, polytrans.ErrProviderUnavailable)
}

func TestGoogleHost(t *testing.T) {
	assert.Equal(t, GoogleHostEN, GoogleHost("EN"))
	assert.Equal(t, GoogleHostEN, GoogleHost(""))
	assert.Equal(t, GoogleHostCN, GoogleHost("cn"))
}

func TestParseGoogleResult_Missing(t *testing.T) {
	_, err := parseGoogleResult([]byte(`<html><body><p>captcha</p></body></html>`))
	assert.ErrorIs(t, err, errNoResult)
}
