package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/san-kum/mandelview/internal/mandel"
)

//go:embed static
var static embed.FS

var staticFS = mustSub(static, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("server: embedded %s: %v", dir, err))
	}
	return sub
}

// Server streams renders to browser clients over websockets. Each
// connection owns its own viewport.
type Server struct {
	renderer       *mandel.Renderer
	start          mandel.Viewport
	width, height  int
	originPatterns []string
	buffers        *mandel.BufferPool
}

type Option func(*Server)

// WithSize sets the frame size sent to clients.
func WithSize(width, height int) Option {
	return func(s *Server) {
		s.width, s.height = width, height
	}
}

// WithOriginPatterns restricts which browser origins may connect.
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) {
		s.originPatterns = patterns
	}
}

func New(r *mandel.Renderer, start mandel.Viewport, opts ...Option) *Server {
	cfg := r.Config()
	s := &Server{
		renderer:       r,
		start:          start,
		width:          cfg.Width,
		height:         cfg.Height,
		originPatterns: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.buffers = mandel.NewBufferPool(s.width, s.height)
	return s
}

// Handler serves the viewer page on / and the websocket endpoint on /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	mux.Handle("/", http.FileServer(http.FS(staticFS)))
	return mux
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	log.Printf("viewer connected: %s", r.RemoteAddr)
	sess := newSession(s, c)
	err = sess.run(r.Context())
	switch {
	case err == nil, websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
		log.Printf("viewer disconnected: %s", r.RemoteAddr)
	default:
		log.Printf("viewer %s: %v", r.RemoteAddr, err)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on http://%s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
