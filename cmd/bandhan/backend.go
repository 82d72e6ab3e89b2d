package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bandhan/bandhan/internal/config"
	"github.com/bandhan/bandhan/internal/draft"
	"github.com/bandhan/bandhan/internal/hooks"
	"github.com/bandhan/bandhan/internal/logger"
	bnats "github.com/bandhan/bandhan/internal/nats"
	"github.com/bandhan/bandhan/internal/order"
	"github.com/bandhan/bandhan/internal/state"
)

// backend owns the stores a command works against. The embedded NATS server
// is started lazily: file-backed drafts only need it once an order is
// placed or looked up.
type backend struct {
	cfg    *config.Config
	store  state.Store
	conn   *bnats.Conn
	orders *order.JetStreamService
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{cfg: cfg}

	switch cfg.Storage {
	case config.StorageNATS:
		conn, err := b.nats()
		if err != nil {
			return nil, err
		}
		kv, err := bnats.SetupDraftBucket(ctx, conn.JS)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to set up draft bucket: %w", err)
		}
		b.store = bnats.NewKVStore(kv)
	default:
		b.store = state.NewFileStore(filepath.Join(cfg.DataDir, "drafts"))
	}
	return b, nil
}

func (b *backend) nats() (*bnats.Conn, error) {
	if b.conn != nil {
		return b.conn, nil
	}
	conn, err := bnats.Open(filepath.Join(b.cfg.DataDir, "nats"))
	if err != nil {
		return nil, fmt.Errorf("failed to start NATS: %w", err)
	}
	b.conn = conn
	return conn, nil
}

func (b *backend) Drafts() *draft.Storage {
	return draft.New(b.store)
}

// Orders returns the order service, starting NATS if needed.
func (b *backend) Orders(ctx context.Context) (*order.JetStreamService, error) {
	if b.orders != nil {
		return b.orders, nil
	}
	conn, err := b.nats()
	if err != nil {
		return nil, err
	}
	stream, err := bnats.SetupOrderStream(ctx, conn.JS)
	if err != nil {
		return nil, fmt.Errorf("failed to set up order stream: %w", err)
	}
	b.orders = order.NewJetStreamService(conn.JS, stream, b.cfg.ShareBaseURL)
	return b.orders, nil
}

func (b *backend) Close() {
	if b.conn == nil {
		return
	}
	if err := b.conn.Close(); err != nil {
		logger.Warn("NATS shutdown: %v", err)
	}
	b.conn = nil
}

// runHooks runs the hooks selected by pick from the working directory's
// hooks file and prints the piped output.
func runHooks(ctx context.Context, pick func(*hooks.HooksConfig) hooks.HookList, vars hooks.Variables) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := hooks.LoadConfig(wd)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	list := pick(&cfg.Hooks)
	if len(list) == 0 {
		return nil
	}
	output, err := hooks.ExecuteAllPiped(ctx, list, wd, vars)
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Println(output)
	}
	return nil
}
