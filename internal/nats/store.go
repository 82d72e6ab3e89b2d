package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bandhan/bandhan/internal/state"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// DraftBucket holds drafts and game progress.
	DraftBucket = "bandhan_drafts"
	// OrderStream holds placed orders.
	OrderStream = "bandhan_orders"

	orderSubjectPrefix = "bandhan.orders"
)

// OrderSubject returns the subject an order for template is published on.
// Example: "bandhan.orders.love-timeline.asha-ravi-1a2b3c"
func OrderSubject(template, slug string) string {
	return fmt.Sprintf("%s.%s.%s", orderSubjectPrefix, template, slug)
}

// OrderSubjectForSlug matches the order with slug under any template.
func OrderSubjectForSlug(slug string) string {
	return fmt.Sprintf("%s.*.%s", orderSubjectPrefix, slug)
}

// SetupOrderStream creates or updates the order stream. Orders are kept for a
// year so share links stay resolvable.
func SetupOrderStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     OrderStream,
		Subjects: []string{orderSubjectPrefix + ".>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   365 * 24 * time.Hour,
	})
}

// SetupDraftBucket creates or updates the draft KeyValue bucket.
func SetupDraftBucket(ctx context.Context, js jetstream.JetStream) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      DraftBucket,
		Description: "bandhan drafts and game progress",
		History:     1,
		Storage:     jetstream.FileStorage,
	})
}

// KVStore adapts a JetStream KeyValue bucket to state.Store.
type KVStore struct {
	kv jetstream.KeyValue
}

func NewKVStore(kv jetstream.KeyValue) *KVStore {
	return &KVStore{kv: kv}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return entry.Value(), nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	rev, err := s.kv.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	log.Debug("put %s rev=%d", key, rev)
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	err := s.kv.Delete(ctx, key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}
