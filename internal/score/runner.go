package score

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes one scoring call and returns the raw model output.
// The production implementation shells out to a local AI CLI; tests
// inject fakes.
type Runner interface {
	Run(ctx context.Context, prompt string) ([]byte, error)
}

// PromptArg in a CLI argument is replaced with the prompt text. When
// no argument carries it, the prompt is written to stdin instead
// (some model CLIs want one, some the other).
const PromptArg = "{prompt}"

// CLIRunner invokes a local text-generation command and captures its
// stdout.
type CLIRunner struct {
	Command string
	Args    []string
	Env     []string // extra environment, e.g. a backend API key
}

func (r *CLIRunner) Run(ctx context.Context, prompt string) ([]byte, error) {
	if strings.TrimSpace(r.Command) == "" {
		return nil, fmt.Errorf("scoring command not configured")
	}

	args := make([]string, len(r.Args))
	viaArgv := false
	for i, a := range r.Args {
		if strings.Contains(a, PromptArg) {
			a = strings.ReplaceAll(a, PromptArg, prompt)
			viaArgv = true
		}
		args[i] = a
	}

	cmd := exec.CommandContext(ctx, r.Command, args...)
	cmd.Env = append(os.Environ(), r.Env...)
	if !viaArgv {
		cmd.Stdin = strings.NewReader(prompt)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, fmt.Errorf("scoring command: %w (stderr: %s)", err, msg)
	}
	return stdout.Bytes(), nil
}
