package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// gzipWriter решает о сжатии в момент записи заголовка: ответы без тела
// (HEAD, 204, 304) уходят как есть.
type gzipWriter struct {
	http.ResponseWriter
	zw     *gzip.Writer
	bypass bool
	wrote  bool
}

func (g *gzipWriter) WriteHeader(code int) {
	if g.wrote {
		return
	}
	g.wrote = true
	if code == http.StatusNoContent || code == http.StatusNotModified {
		g.bypass = true
	}
	if !g.bypass {
		g.Header().Del("Content-Length")
		g.Header().Set("Content-Encoding", "gzip")
		g.Header().Add("Vary", "Accept-Encoding")
		g.zw = gzip.NewWriter(g.ResponseWriter)
	}
	g.ResponseWriter.WriteHeader(code)
}

func (g *gzipWriter) Write(b []byte) (int, error) {
	if !g.wrote {
		g.WriteHeader(http.StatusOK)
	}
	if g.zw == nil {
		return g.ResponseWriter.Write(b)
	}
	return g.zw.Write(b)
}

func (g *gzipWriter) close() error {
	if g.zw == nil {
		return nil
	}
	return g.zw.Close()
}

// WithGzip compresses responses for clients that accept gzip.
func WithGzip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gw := &gzipWriter{ResponseWriter: w, bypass: r.Method == http.MethodHead}
		defer func() { _ = gw.close() }()
		next.ServeHTTP(gw, r)
	})
}
