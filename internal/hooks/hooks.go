// Package hooks runs user-configured shell commands at points in the gift
// lifecycle, such as posting the share link somewhere once an order is placed.
package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/bandhan/bandhan/internal/logger"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".bandhan.hooks.yml"

var log = logger.With("hooks")

// LoadConfig reads ConfigFileName from workDir. A missing file yields nil
// and no error; only an unreadable or malformed file is an error.
func LoadConfig(workDir string) (*Config, error) {
	path := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("no hooks config at %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	log.Debug("loaded %s: %d order_complete, %d draft_cleared",
		path, len(cfg.Hooks.OrderComplete), len(cfg.Hooks.DraftCleared))
	return &cfg, nil
}

// Variables describe the gift a hook runs for. They are substituted into
// {{slug}}, {{link}}, {{template}}, {{order_id}} and {{to}} in the command and
// exported as BANDHAN_SLUG, BANDHAN_LINK, BANDHAN_TEMPLATE, BANDHAN_ORDER_ID
// and BANDHAN_TO.
type Variables struct {
	Slug     string
	Link     string
	Template string
	OrderID  string
	To       string
}

func (v Variables) pairs() [][2]string {
	return [][2]string{
		{"slug", v.Slug},
		{"link", v.Link},
		{"template", v.Template},
		{"order_id", v.OrderID},
		{"to", v.To},
	}
}

func (v Variables) expand(command string) string {
	var args []string
	for _, p := range v.pairs() {
		args = append(args, "{{"+p[0]+"}}", p[1])
	}
	return strings.NewReplacer(args...).Replace(command)
}

func (v Variables) env() []string {
	env := os.Environ()
	for _, p := range v.pairs() {
		env = append(env, "BANDHAN_"+strings.ToUpper(p[0])+"="+p[1])
	}
	return env
}

// Execute runs hook through sh -c in workDir and returns what it printed.
// A failing or timed out command is reported in the returned text, not as an
// error; the only error is ctx being done.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	command := vars.expand(hook.Command)
	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log.Debug("executing (timeout %ds): %s", timeout, command)

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Env = vars.env()
	cmd.WaitDelay = time.Second
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	switch {
	case ctx.Err() != nil:
		return "", ctx.Err()
	case errors.Is(execCtx.Err(), context.DeadlineExceeded):
		log.Warn("timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String()), nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		output += "\n[stderr]\n" + stderr.String()
	}
	if runErr != nil {
		log.Warn("command failed: %v", runErr)
		return fmt.Sprintf("[Hook command failed: %v]\n%s", runErr, output), nil
	}
	return output, nil
}

// ExecuteAllPiped runs hooks in order and joins the output of those with
// pipe_output set. Hooks without it still run; their output is only logged.
func ExecuteAllPiped(ctx context.Context, hooks []*HookConfig, workDir string, vars Variables) (string, error) {
	var piped []string
	for _, hook := range hooks {
		output, err := Execute(ctx, hook, workDir, vars)
		if err != nil {
			return "", err
		}
		switch {
		case output == "":
		case hook.PipeOutput:
			piped = append(piped, output)
		default:
			log.Debug("hook output (not piped): %s", strings.TrimSpace(output))
		}
	}
	return strings.Join(piped, "\n"), nil
}
