package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// GzipConfig holds configuration for response compression
type GzipConfig struct {
	MinSize      int      // Minimum response size to compress (bytes)
	Level        int      // Gzip compression level (1-9)
	ContentTypes []string // Content types to compress
}

// DefaultGzipConfig returns the default compression configuration
func DefaultGzipConfig() GzipConfig {
	return GzipConfig{
		MinSize: 1024,
		Level:   6,
		ContentTypes: []string{
			"application/json",
			"text/plain",
			"text/html",
		},
	}
}

// GzipMiddleware provides gzip compression for responses
type GzipMiddleware struct {
	config GzipConfig
	pool   sync.Pool

	totalResponses      int64
	compressedResponses int64
	bytesIn             int64
	bytesOut            int64
}

// NewGzipMiddleware creates a new compression middleware
func NewGzipMiddleware(config GzipConfig) *GzipMiddleware {
	gm := &GzipMiddleware{config: config}
	gm.pool = sync.Pool{
		New: func() interface{} {
			gz, _ := gzip.NewWriterLevel(io.Discard, config.Level)
			return gz
		},
	}
	return gm
}

// Handler returns a Gin middleware that compresses eligible responses
func (gm *GzipMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		bw := &bufferedWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()

		atomic.AddInt64(&gm.totalResponses, 1)

		body := bw.buf.Bytes()
		atomic.AddInt64(&gm.bytesIn, int64(len(body)))

		if len(body) < gm.config.MinSize || !gm.shouldCompress(bw.Header().Get("Content-Type")) {
			gm.flushPlain(bw, body)
			return
		}

		var compressed bytes.Buffer
		gz := gm.pool.Get().(*gzip.Writer)
		gz.Reset(&compressed)
		if _, err := gz.Write(body); err != nil {
			gz.Close()
			gm.pool.Put(gz)
			gm.flushPlain(bw, body)
			return
		}
		gz.Close()
		gm.pool.Put(gz)

		atomic.AddInt64(&gm.compressedResponses, 1)
		atomic.AddInt64(&gm.bytesOut, int64(compressed.Len()))

		bw.Header().Set("Content-Encoding", "gzip")
		bw.Header().Set("Vary", "Accept-Encoding")
		bw.Header().Set("Content-Length", strconv.Itoa(compressed.Len()))
		bw.writeThrough(compressed.Bytes())
	}
}

// shouldCompress checks if the content type should be compressed
func (gm *GzipMiddleware) shouldCompress(contentType string) bool {
	for _, ct := range gm.config.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

func (gm *GzipMiddleware) flushPlain(bw *bufferedWriter, body []byte) {
	atomic.AddInt64(&gm.bytesOut, int64(len(body)))
	bw.writeThrough(body)
}

// GetStats returns compression statistics
func (gm *GzipMiddleware) GetStats() map[string]interface{} {
	total := atomic.LoadInt64(&gm.totalResponses)
	compressed := atomic.LoadInt64(&gm.compressedResponses)
	in := atomic.LoadInt64(&gm.bytesIn)
	out := atomic.LoadInt64(&gm.bytesOut)

	ratio := 0.0
	if in > 0 {
		ratio = 1.0 - float64(out)/float64(in)
	}

	return map[string]interface{}{
		"total_responses":      total,
		"compressed_responses": compressed,
		"bytes_in":             in,
		"bytes_out":            out,
		"savings_ratio":        ratio,
	}
}

// bufferedWriter captures the response body so the middleware can decide
// whether to compress after the handler has run. Status codes pass straight
// through so middleware further up the chain still sees them.
type bufferedWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (bw *bufferedWriter) Write(data []byte) (int, error) {
	return bw.buf.Write(data)
}

func (bw *bufferedWriter) WriteString(s string) (int, error) {
	return bw.buf.WriteString(s)
}

func (bw *bufferedWriter) writeThrough(data []byte) {
	if len(data) > 0 {
		bw.ResponseWriter.Write(data)
	} else {
		bw.ResponseWriter.WriteHeaderNow()
	}
}
