package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"go.uber.org/zap"
)

const (
	defaultCompressionMinBytes = 1024
	brotliLevel                = 6
	gzipLevel                  = 6
)

var compressibleTypes = map[string]bool{
	"application/json":   true,
	"application/x-yaml": true,
	"text/csv":           true,
	"text/plain":         true,
}

// compressWriter holds the whole response so the encoding can be chosen
// once its size and content type are known
type compressWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *compressWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *compressWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.buf.Write(p)
}

// Compression encodes text responses with brotli or gzip, preferring
// brotli, when the client accepts it and the body is large enough
func (m *Middleware) Compression(next http.Handler) http.Handler {
	minBytes := m.config.Server.CompressionMinBytes
	if minBytes <= 0 {
		minBytes = defaultCompressionMinBytes
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoding := negotiateEncoding(r.Header.Get("Accept-Encoding"))
		if encoding == "" || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		cw := &compressWriter{ResponseWriter: w}
		next.ServeHTTP(cw, r)
		if cw.status == 0 {
			cw.status = http.StatusOK
		}

		body := cw.buf.Bytes()
		header := w.Header()
		header.Add("Vary", "Accept-Encoding")

		if len(body) < minBytes || header.Get("Content-Encoding") != "" || !isCompressible(header.Get("Content-Type")) {
			w.WriteHeader(cw.status)
			_, _ = w.Write(body)
			return
		}

		compressed, err := compress(encoding, body)
		if err != nil {
			m.logger.Warn("Response compression failed", zap.String("encoding", encoding), zap.Error(err))
			w.WriteHeader(cw.status)
			_, _ = w.Write(body)
			return
		}

		header.Set("Content-Encoding", encoding)
		header.Set("Content-Length", strconv.Itoa(len(compressed)))
		w.WriteHeader(cw.status)
		_, _ = w.Write(compressed)
	})
}

// negotiateEncoding picks br, then gzip, skipping codings with q=0
func negotiateEncoding(acceptEncoding string) string {
	accepted := make(map[string]bool)
	for _, part := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		if q > 0 {
			accepted[strings.ToLower(name)] = true
		}
	}

	switch {
	case accepted["br"]:
		return "br"
	case accepted["gzip"]:
		return "gzip"
	default:
		return ""
	}
}

func isCompressible(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return compressibleTypes[mediaType]
}

func compress(encoding string, body []byte) ([]byte, error) {
	var out bytes.Buffer
	var zw io.WriteCloser
	switch encoding {
	case "br":
		zw = brotli.NewWriterLevel(&out, brotliLevel)
	default:
		gz, err := gzip.NewWriterLevel(&out, gzipLevel)
		if err != nil {
			return nil, err
		}
		zw = gz
	}

	if _, err := zw.Write(body); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
