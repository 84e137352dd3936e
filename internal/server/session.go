package server

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/san-kum/mandelview/internal/analysis"
	"github.com/san-kum/mandelview/internal/export"
	"github.com/san-kum/mandelview/internal/mandel"
)

const commandBuffer = 64

// Status is sent as a text message after every frame, or alone when a
// command is rejected.
type Status struct {
	Real          float64 `json:"real"`
	Imag          float64 `json:"imag"`
	Side          float64 `json:"side"`
	Zoom          float64 `json:"zoom"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Applied       int     `json:"applied"`
	InSetFraction float64 `json:"in_set_fraction"`
	ElapsedMs     int64   `json:"elapsed_ms"`
	Error         string  `json:"error,omitempty"`
}

// session renders for one connection. Commands are read on a separate
// goroutine; the render loop drains everything queued before rendering, so
// a burst of commands costs one frame and renders never overlap.
type session struct {
	srv  *Server
	conn *websocket.Conn
	view mandel.Viewport
}

func newSession(s *Server, c *websocket.Conn) *session {
	return &session{srv: s, conn: c, view: s.start}
}

type inbound struct {
	cmd mandel.Command
	err error
}

func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan inbound, commandBuffer)
	readErr := make(chan error, 1)
	go func() {
		readErr <- s.readLoop(ctx, in)
	}()

	if err := s.sendFrame(ctx, 0); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case msg := <-in:
			applied, rejected := s.drain(msg, in)
			if applied > 0 {
				if err := s.sendFrame(ctx, applied); err != nil {
					return err
				}
			}
			for _, err := range rejected {
				if err := s.sendStatus(ctx, Status{Error: err.Error()}); err != nil {
					return err
				}
			}
		}
	}
}

// drain applies first and everything already queued behind it without
// blocking. Rejected commands are returned so they can be reported after
// the frame.
func (s *session) drain(first inbound, in <-chan inbound) (applied int, rejected []error) {
	cfg := s.srv.renderer.Config()
	msg := first
	for {
		if msg.err != nil {
			rejected = append(rejected, msg.err)
		} else {
			s.view = cfg.Apply(s.view, msg.cmd)
			applied++
		}
		select {
		case msg = <-in:
		default:
			return applied, rejected
		}
	}
}

func (s *session) readLoop(ctx context.Context, in chan<- inbound) error {
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			return err
		}
		msg := inbound{err: fmt.Errorf("expected text command, got %v", typ)}
		if typ == websocket.MessageText {
			msg.cmd, msg.err = mandel.ParseCommand(string(data))
		}
		select {
		case in <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *session) sendFrame(ctx context.Context, applied int) error {
	pool := s.srv.buffers
	counts, grid := pool.Counts(), pool.Grid()
	defer pool.PutCounts(counts)
	defer pool.PutGrid(grid)

	start := time.Now()
	r := s.srv.renderer
	r.CountsInto(counts, s.view)
	r.ColorizeInto(grid, counts)
	elapsed := time.Since(start)

	var buf bytes.Buffer
	if err := export.WritePNG(&buf, grid); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := s.conn.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
		return err
	}

	width, height := pool.Size()
	return s.sendStatus(ctx, Status{
		Real:          s.view.Corner.Re,
		Imag:          s.view.Corner.Im,
		Side:          s.view.SideLength,
		Zoom:          s.view.Magnification(),
		Width:         width,
		Height:        height,
		Applied:       applied,
		InSetFraction: analysis.Summarize(counts).InSetFraction,
		ElapsedMs:     elapsed.Milliseconds(),
	})
}

func (s *session) sendStatus(ctx context.Context, st Status) error {
	return wsjson.Write(ctx, s.conn, st)
}
