package letter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bandhan/bandhan/internal/logger"
	"github.com/bandhan/bandhan/internal/state"
)

// ProgressKey stores the game progress for the local draft.
const ProgressKey = "bandhan_secret_game"

var log = logger.With("letter")

// Progress is the persisted part of a game.
type Progress struct {
	Wins     int  `json:"wins"`
	Unlocked bool `json:"unlocked"`
}

// KeyFor returns the progress key for a published gift, or ProgressKey for
// the local draft when slug is empty.
func KeyFor(slug string) string {
	if slug == "" {
		return ProgressKey
	}
	return ProgressKey + "_" + slug
}

// LoadProgress returns the stored progress, or the zero value when nothing is
// stored or it cannot be read.
func LoadProgress(ctx context.Context, store state.Store, key string) Progress {
	data, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			log.Warn("loading progress: %v", err)
		}
		return Progress{}
	}
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn("parsing progress: %v", err)
		return Progress{}
	}
	if p.Wins < 0 {
		p.Wins = 0
	}
	if p.Wins >= WinsToUnlock {
		p.Unlocked = true
	}
	return p
}

func SaveProgress(ctx context.Context, store state.Store, key string, p Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

func ResetProgress(ctx context.Context, store state.Store, key string) error {
	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}
	return nil
}
