package mcp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/matyjas/nq-mcp/internal/common"
)

// maxRequestBody caps JSON-RPC request bodies on the HTTP transport.
const maxRequestBody = 1 << 20 // 1MB

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
	chain      http.Handler
}

// NewHandler serves s over stateless streamable HTTP.
func NewHandler(s *mcpserver.MCPServer, logger *common.Logger) *Handler {
	h := &Handler{
		streamable: mcpserver.NewStreamableHTTPServer(s,
			mcpserver.WithStateLess(true),
		),
		logger: logger,
	}

	// Applied in reverse order (last applied = first executed)
	var chain http.Handler = h.streamable
	chain = h.recoveryMiddleware(chain)
	chain = maxBodySizeMiddleware(maxRequestBody)(chain)
	chain = h.loggingMiddleware(chain)
	h.chain = chain
	return h
}

// ServeHTTP runs the middleware chain and delegates to the streamable HTTP server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}

// NewMux mounts the handler at endpointPath.
func NewMux(endpointPath string, h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(endpointPath, h)
	return mux
}

// loggingMiddleware tags the request with a correlation ID and logs the outcome.
func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get("X-Request-ID")
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		w.Header().Set("X-Correlation-ID", correlationID)

		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		l := h.logger.WithCorrelationId(correlationID)
		evt := l.Debug()
		if rw.statusCode >= 500 {
			evt = l.Error()
		} else if rw.statusCode >= 400 {
			evt = l.Warn()
		}
		evt.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int("bytes", rw.bytesWritten).
			Str("remote", r.RemoteAddr).
			Msg("HTTP request")
	})
}

// recoveryMiddleware recovers from panics and returns 500 error.
func (h *Handler) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.logger.Error().
					Str("error", fmt.Sprintf("%v", err)).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// maxBodySizeMiddleware limits the size of request bodies.
func maxBodySizeMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter captures status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// Flush keeps event-stream responses working through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
