package hooks

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for hooks loaded from .bandhan.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig contains all hook configurations.
type HooksConfig struct {
	// OrderComplete runs after an order is placed.
	OrderComplete HookList `yaml:"order_complete"`
	// DraftCleared runs after the local draft is discarded.
	DraftCleared HookList `yaml:"draft_cleared"`
}

// HookConfig defines a single hook's configuration.
type HookConfig struct {
	Command    string `yaml:"command"`
	Timeout    int    `yaml:"timeout"`     // seconds, default 30
	PipeOutput bool   `yaml:"pipe_output"` // show output to the user
}

// HookList accepts either a single hook mapping or a sequence of them.
type HookList []*HookConfig

func (l *HookList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var h HookConfig
		if err := node.Decode(&h); err != nil {
			return err
		}
		*l = HookList{&h}
		return nil
	case yaml.SequenceNode:
		var hooks []*HookConfig
		if err := node.Decode(&hooks); err != nil {
			return err
		}
		*l = hooks
		return nil
	default:
		return fmt.Errorf("line %d: hook must be a mapping or a list", node.Line)
	}
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30
