// Package nats runs the embedded JetStream server that backs the "nats"
// storage mode: drafts live in a KeyValue bucket and orders in a stream.
package nats

import (
	"errors"
	"time"

	"github.com/bandhan/bandhan/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.With("nats")

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// StartEmbeddedNATS starts a JetStream-enabled server storing its data under
// storeDir. It opens no network listener; connect with ConnectInProcess.
func StartEmbeddedNATS(storeDir string) (*server.Server, error) {
	log.Debug("starting embedded server, store dir %s", storeDir)

	ns, err := server.NewServer(&server.Options{
		ServerName: "bandhan",
		JetStream:  true,
		StoreDir:   storeDir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		log.Error("creating server: %v", err)
		return nil, err
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		log.Error("server not ready after %s", readyTimeout)
		return nil, errors.New("nats server failed to start within timeout")
	}

	log.Debug("server ready")
	return ns, nil
}

// ConnectInProcess opens a client connection that talks to ns without the
// network stack.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	nc, err := nats.Connect("", nats.InProcessServer(ns), nats.Name("bandhan"))
	if err != nil {
		log.Error("connecting in-process: %v", err)
		return nil, err
	}
	return nc, nil
}

func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Shutdown drains nc and stops ns, bounding each phase with a timeout.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		done := make(chan error, 1)
		go func() { done <- nc.Drain() }()

		select {
		case err := <-done:
			if err != nil {
				log.Warn("drain failed, closing: %v", err)
				nc.Close()
			}
		case <-time.After(drainTimeout):
			log.Warn("drain timed out after %s, closing", drainTimeout)
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		stopped := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(shutdownTimeout):
			log.Error("server shutdown timed out after %s", shutdownTimeout)
			return errors.New("nats server shutdown timed out")
		}
	}

	log.Debug("shutdown complete")
	return nil
}

// Conn bundles an embedded server with its in-process client.
type Conn struct {
	Server *server.Server
	NC     *nats.Conn
	JS     jetstream.JetStream
}

// Open starts the server under storeDir and connects to it.
func Open(storeDir string) (*Conn, error) {
	ns, err := StartEmbeddedNATS(storeDir)
	if err != nil {
		return nil, err
	}
	nc, err := ConnectInProcess(ns)
	if err != nil {
		_ = Shutdown(nil, ns)
		return nil, err
	}
	js, err := CreateJetStream(nc)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, err
	}
	return &Conn{Server: ns, NC: nc, JS: js}, nil
}

func (c *Conn) Close() error {
	return Shutdown(c.NC, c.Server)
}
