// Package draft persists the in-progress gift so the user can close the
// wizard and pick up where they left off.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/logger"
	"github.com/bandhan/bandhan/internal/state"
)

// Storage keys. The legacy key predates the single JSON object and is still
// read as a fallback.
const (
	FormKey           = "bandhan_form_data"
	LegacyTemplateKey = "bandhan_selected_template"
)

var log = logger.With("draft")

// Snapshot is the stored draft object, keyed by top-level field.
type Snapshot map[string]json.RawMessage

func (s Snapshot) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Decode unmarshals the value at key into v. It reports false when the key is
// absent or does not decode.
func (s Snapshot) Decode(key string, v any) bool {
	raw, ok := s[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Storage reads and writes drafts through a state.Store. Store failures never
// reach the caller; they are logged and the wizard keeps working in memory.
type Storage struct {
	store state.Store
	now   func() time.Time
	mu    sync.Mutex
}

// Option configures a Storage.
type Option func(*Storage)

// WithClock overrides the time source used for lastSaved.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) { s.now = now }
}

func New(store state.Store, opts ...Option) *Storage {
	s := &Storage{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save merges patch into the stored object at top-level key granularity and
// stamps lastSaved.
func (s *Storage) Save(ctx context.Context, patch map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.load(ctx)
	for k, v := range patch {
		raw, err := json.Marshal(v)
		if err != nil {
			log.Warn("encoding %s: %v", k, err)
			return
		}
		snap[k] = raw
	}
	stamp, _ := json.Marshal(s.now().UTC())
	snap["lastSaved"] = stamp

	data, err := json.Marshal(snap)
	if err != nil {
		log.Warn("encoding draft: %v", err)
		return
	}
	if err := s.store.Put(ctx, FormKey, data); err != nil {
		log.Warn("saving draft: %v", err)
	}
}

// Load returns the stored object, or an empty snapshot when there is none or
// it cannot be parsed.
func (s *Storage) Load(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Storage) load(ctx context.Context) Snapshot {
	data, err := s.store.Get(ctx, FormKey)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			log.Warn("loading draft: %v", err)
		}
		return Snapshot{}
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap == nil {
		log.Warn("parsing draft: %v", err)
		return Snapshot{}
	}
	return snap
}

// Clear removes the draft and the legacy template key.
func (s *Storage) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{FormKey, LegacyTemplateKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			log.Warn("clearing %s: %v", key, err)
		}
	}
}

// SaveSelectedTemplate records the template choice and its price.
func (s *Storage) SaveSelectedTemplate(ctx context.Context, id gift.TemplateID, price float64) {
	s.Save(ctx, map[string]any{
		"selectedTemplate": id,
		"templatePrice":    price,
	})
	if err := s.store.Put(ctx, LegacyTemplateKey, []byte(id)); err != nil {
		log.Warn("saving legacy template: %v", err)
	}
}

// GetSelectedTemplate returns the stored template and price, falling back to
// the legacy key with the catalog price.
func (s *Storage) GetSelectedTemplate(ctx context.Context) (gift.TemplateID, float64, bool) {
	snap := s.Load(ctx)

	var id gift.TemplateID
	if snap.Decode("selectedTemplate", &id) && id != "" {
		var price float64
		if !snap.Decode("templatePrice", &price) {
			if t, ok := gift.Lookup(id); ok {
				price = t.Price
			}
		}
		return id, price, true
	}

	data, err := s.store.Get(ctx, LegacyTemplateKey)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			log.Warn("loading legacy template: %v", err)
		}
		return "", 0, false
	}
	id = gift.TemplateID(strings.TrimSpace(string(data)))
	if id == "" {
		return "", 0, false
	}
	var price float64
	if t, ok := gift.Lookup(id); ok {
		price = t.Price
	}
	return id, price, true
}

// SaveState writes every field of st. A nil secret letter is stored as null.
func (s *Storage) SaveState(ctx context.Context, st *gift.FormState) {
	data, err := json.Marshal(st)
	if err != nil {
		log.Warn("encoding form state: %v", err)
		return
	}
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(data, &patch); err != nil {
		log.Warn("encoding form state: %v", err)
		return
	}
	delete(patch, "lastSaved")
	// A removed letter must overwrite the stored one.
	if _, ok := patch["secretLetter"]; !ok {
		patch["secretLetter"] = json.RawMessage("null")
	}

	fields := make(map[string]any, len(patch))
	for k, v := range patch {
		fields[k] = v
	}
	s.Save(ctx, fields)
}

// Hydrate overwrites the fields of st that are present in storage and reports
// whether anything was stored.
func (s *Storage) Hydrate(ctx context.Context, st *gift.FormState) bool {
	snap := s.Load(ctx)
	if !snap.Has("selectedTemplate") {
		if id, price, ok := s.GetSelectedTemplate(ctx); ok {
			st.SelectedTemplate, st.TemplatePrice = id, price
			if len(snap) == 0 {
				return true
			}
		}
	}
	if len(snap) == 0 {
		return false
	}

	data, err := json.Marshal(snap)
	if err != nil {
		log.Warn("encoding snapshot: %v", err)
		return false
	}
	if err := json.Unmarshal(data, st); err != nil {
		log.Warn("hydrating form state: %v", err)
	}
	st.Normalize()
	return true
}

// Status returns the autosave line for the stored draft.
func (s *Storage) Status(ctx context.Context, now time.Time) string {
	var saved time.Time
	if s.Load(ctx).Decode("lastSaved", &saved) {
		return AutoSaveStatus(&saved, now)
	}
	return AutoSaveStatus(nil, now)
}
