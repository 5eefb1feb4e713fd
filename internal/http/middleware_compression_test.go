package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	body := strings.Repeat("Selamat datang di RevoBooking! ", 200)

	html := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	})

	tests := []struct {
		name           string
		method         string
		acceptEncoding string
		level          int
		expectGzip     bool
	}{
		{name: "client accepts gzip", method: http.MethodGet, acceptEncoding: "gzip, deflate", level: 6, expectGzip: true},
		{name: "client does not accept gzip", method: http.MethodGet, acceptEncoding: "deflate", level: 6},
		{name: "no accept-encoding header", method: http.MethodGet, level: 6},
		{name: "gzip explicitly refused", method: http.MethodGet, acceptEncoding: "gzip;q=0, br", level: 6},
		{name: "out of range level falls back", method: http.MethodGet, acceptEncoding: "gzip", level: 42, expectGzip: true},
		{name: "head request passes through", method: http.MethodHead, acceptEncoding: "gzip", level: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Compression(CompressionConfig{Level: tt.level})(html)
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if !tt.expectGzip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				if tt.method == http.MethodGet {
					assert.Equal(t, body, rec.Body.String())
				}
				return
			}

			assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")
			assert.Less(t, rec.Body.Len(), len(body))

			gr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			decoded, err := io.ReadAll(gr)
			require.NoError(t, err)
			assert.Equal(t, body, string(decoded))
		})
	}
}

func TestCompression_SkipsNonCompressibleResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "binary content type",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				_, _ = w.Write([]byte("\x89PNG...."))
			},
		},
		{
			name: "no content",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
		},
		{
			name: "not modified",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotModified)
			},
		},
		{
			name: "already encoded",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/css")
				w.Header().Set("Content-Encoding", "br")
				_, _ = w.Write([]byte("body{}"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Compression(CompressionConfig{Level: 5})(tt.handler)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.NotEqual(t, "gzip", rec.Header().Get("Content-Encoding"))
		})
	}
}

func TestAcceptsGzip(t *testing.T) {
	cases := map[string]bool{
		"":                   false,
		"gzip":               true,
		"GZIP":               true,
		"deflate, gzip":      true,
		"gzip;q=0":           false,
		"gzip; q=0.5":        true,
		"br;q=1, gzip;q=0.0": false,
		"identity":           false,
	}
	for header, want := range cases {
		assert.Equal(t, want, acceptsGzip(header), "header %q", header)
	}
}

func TestIsCompressibleContentType(t *testing.T) {
	assert.True(t, isCompressibleContentType("text/html; charset=utf-8"))
	assert.True(t, isCompressibleContentType("application/javascript"))
	assert.True(t, isCompressibleContentType("Text/CSS"))
	assert.False(t, isCompressibleContentType("image/webp"))
	assert.False(t, isCompressibleContentType(""))
}
