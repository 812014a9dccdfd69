package command

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wegel/stilch-sub001/event"
)

// call is one decoded request awaiting dispatch on the single serializing
// goroutine, paired with the channel its result is delivered back on.
type call struct {
	req    Request
	result chan<- Response
}

// Server listens on a Unix domain socket and serializes every request
// through a single dispatch goroutine (spec.md §5: "single-threaded
// cooperative event loop"), so concurrent client connections never
// race a mutation against the WindowManager facade.
type Server struct {
	socketPath string
	dispatcher *Dispatcher
	bus        *event.Bus

	calls    chan call
	listener net.Listener

	wg sync.WaitGroup
}

// NewServer wires a Server around an already-constructed Dispatcher.
// The server emits an Ipc event on bus for every client connect,
// disconnect, and received command; it does not subscribe to bus.
func NewServer(socketPath string, d *Dispatcher, bus *event.Bus) *Server {
	return &Server{
		socketPath: socketPath,
		dispatcher: d,
		bus:        bus,
		calls:      make(chan call),
	}
}

// Serve binds the socket, starts the dispatch goroutine, and accepts
// connections until ctx is canceled. It removes any stale socket file
// left by a prior crashed run before binding, matching the "ephemeral,
// no persisted state" design (spec.md §6).
func (s *Server) Serve(ctx context.Context) error {
	if err := os.RemoveAll(s.socketPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return err
	}
	s.listener = ln
	log.Info("command surface listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.dispatchLoop(ctx)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				close(s.calls)
				s.wg.Wait()
				return nil
			default:
				return err
			}
		}
		s.wg.Add(1)
		go s.handleConn(ctx, conn)
	}
}

// dispatchLoop is the single goroutine every mutation runs through.
func (s *Server) dispatchLoop(ctx context.Context) {
	defer s.wg.Done()
	for c := range s.calls {
		resp := s.dispatcher.Dispatch(c.req)
		c.result <- resp
	}
}

// handleConn reads newline-delimited JSON requests from conn, submits
// each to the dispatch goroutine, and writes back the newline-delimited
// JSON response. One goroutine per connection; the only shared state it
// touches is the calls channel.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	connID := uuid.NewString()
	s.emit(event.IpcEv(event.IpcClientConnected, connID))
	defer s.emit(event.IpcEv(event.IpcClientDisconnected, connID))

	scanner := bufio.NewScanner(conn)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.reply(writer, Response{Type: "Error", Message: "invalid request: " + err.Error()})
			continue
		}
		s.emit(event.IpcEv(event.IpcCommandReceived, connID))

		result := make(chan Response, 1)
		select {
		case s.calls <- call{req: req, result: result}:
		case <-ctx.Done():
			return
		}
		select {
		case resp := <-result:
			s.reply(writer, resp)
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("command connection read error", "conn", connID, "err", err)
	}
}

func (s *Server) reply(w *bufio.Writer, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error("failed to marshal response", "err", err)
		return
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		log.Warn("command connection write error", "err", err)
		return
	}
	if err := w.Flush(); err != nil {
		log.Warn("command connection flush error", "err", err)
	}
}

func (s *Server) emit(e event.Event) {
	if err := s.bus.Emit(e); err != nil {
		log.Error("event emission failed", "err", err)
	}
}

// Close removes the socket file. Serve's own accept-loop shutdown is
// driven by context cancellation; Close is for tests that construct a
// Server without running Serve to completion.
func (s *Server) Close() error {
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}
