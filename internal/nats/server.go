// Package nats runs the embedded, in-process NATS server that backs attachr's
// local persistence: the seller product-list cache (a KV bucket) and the
// attach journal (a stream).
package nats

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/attachr/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Embedded bundles the server, its in-process connection and a JetStream context.
type Embedded struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
}

// Start launches an embedded JetStream server storing its files in dataDir.
// The server opens no network ports.
func Start(dataDir string) (*server.Server, error) {
	logger.Debug("starting embedded NATS server in %s", dataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
		NoSigs:     true,
		NoLog:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}
	logger.Debug("NATS server ready")
	return ns, nil
}

// ConnectInProcess opens a connection that talks to ns without sockets.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		return nil, fmt.Errorf("connect in-process: %w", err)
	}
	return conn, nil
}

// Open starts the server, connects to it and creates the JetStream context.
func Open(dataDir string) (*Embedded, error) {
	ns, err := Start(dataDir)
	if err != nil {
		return nil, err
	}
	nc, err := ConnectInProcess(ns)
	if err != nil {
		_ = Shutdown(nil, ns)
		return nil, err
	}
	js, err := jetstream.New(nc)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}
	return &Embedded{Server: ns, Conn: nc, JS: js}, nil
}

// Close drains the connection and stops the server.
func (e *Embedded) Close() error {
	if e == nil {
		return nil
	}
	return Shutdown(e.Conn, e.Server)
}

// Shutdown drains nc (closing it outright after 2s) and then stops ns,
// giving up after 5s.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drained := make(chan error, 1)
		go func() {
			drained <- nc.Drain()
		}()

		select {
		case err := <-drained:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("NATS drain timed out after 2s, forcing close")
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		done := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			logger.Error("NATS server shutdown timed out after 5s")
			return errors.New("nats server shutdown timed out")
		}
	}

	logger.Debug("NATS shutdown complete")
	return nil
}
