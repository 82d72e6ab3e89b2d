package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bandhan/bandhan/internal/logger"
	bnats "github.com/bandhan/bandhan/internal/nats"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.With("order")

// JetStreamService records orders in the order stream. Payment is taken as
// already captured; the reference is stored with the order.
type JetStreamService struct {
	js      jetstream.JetStream
	stream  jetstream.Stream
	baseURL string
	now     func() time.Time
	newID   func() string
}

func NewJetStreamService(js jetstream.JetStream, stream jetstream.Stream, baseURL string) *JetStreamService {
	return &JetStreamService{
		js:      js,
		stream:  stream,
		baseURL: baseURL,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *JetStreamService) Submit(ctx context.Context, req Request) (Receipt, error) {
	if req.Gift == nil {
		return Receipt{}, fmt.Errorf("%w: no gift", ErrIncomplete)
	}

	id := s.newID()
	o := Order{
		ID:       id,
		Slug:     Slug(req.Gift.BasicInfo, id),
		Template: req.Gift.SelectedTemplate,
		PlacedAt: s.now().UTC(),
		Payment:  req.Payment,
		Gift:     req.Gift.Clone(),
	}
	o.Link = ShareLink(s.baseURL, o.Slug)
	o.Gift.LastSaved = nil

	data, err := json.Marshal(o)
	if err != nil {
		return Receipt{}, fmt.Errorf("encoding order: %w", err)
	}

	template := string(o.Template)
	if template == "" {
		template = "none"
	}
	subject := bnats.OrderSubject(template, o.Slug)
	ack, err := s.js.Publish(ctx, subject, data, jetstream.WithMsgID(id))
	if err != nil {
		log.Error("publishing order to %s: %v", subject, err)
		return Receipt{}, fmt.Errorf("publishing order: %w", err)
	}

	log.Info("order %s placed as %s (seq=%d)", id, o.Slug, ack.Sequence)
	return Receipt{OrderID: id, Slug: o.Slug, Link: o.Link, PlacedAt: o.PlacedAt}, nil
}

// Lookup reads the order stream for slug and returns the latest record.
func (s *JetStreamService) Lookup(ctx context.Context, slug string) (*Order, error) {
	if !ValidSlug(slug) {
		return nil, ErrNotFound
	}
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject:     bnats.OrderSubjectForSlug(slug),
		DeliverPolicy:     jetstream.DeliverAllPolicy,
		AckPolicy:         jetstream.AckNonePolicy,
		InactiveThreshold: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}
	defer func() {
		if err := s.stream.DeleteConsumer(context.WithoutCancel(ctx), consumer.CachedInfo().Name); err != nil &&
			!errors.Is(err, jetstream.ErrConsumerNotFound) {
			log.Debug("deleting lookup consumer: %v", err)
		}
	}()

	const batchSize = 100
	var found *Order
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}
		n := 0
		for msg := range msgs.Messages() {
			n++
			var o Order
			if err := json.Unmarshal(msg.Data(), &o); err != nil {
				log.Warn("skipping malformed order on %s: %v", msg.Subject(), err)
				continue
			}
			found = &o
		}
		if n < batchSize {
			break
		}
	}

	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}
