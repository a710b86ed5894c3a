package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/wonderfulspam/format-smith/pkg/document"
	"github.com/wonderfulspam/format-smith/pkg/language"
)

// styleListPattern matches the line of `clang-format --help` that lists the
// predefined styles, e.g. "  LLVM, GNU, Google, Chromium, Microsoft, Mozilla, WebKit."
var styleListPattern = regexp.MustCompile(`^\s*(\w+(?:, \w+)*)\.$`)

// ClangFormat obtains styles by running a clang-format executable.
type ClangFormat struct {
	executable string
	timeout    time.Duration
}

// NewClangFormat creates a provider for the given executable. Empty values
// fall back to DefaultExecutable and DefaultTimeout.
func NewClangFormat(executable string, timeout time.Duration) *ClangFormat {
	if executable == "" {
		executable = DefaultExecutable
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ClangFormat{executable: executable, timeout: timeout}
}

// Executable returns the executable the provider runs.
func (c *ClangFormat) Executable() string {
	return c.executable
}

// ListStyleNames parses the predefined style names out of the --help text.
func (c *ClangFormat) ListStyleNames(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "--help")
	if err != nil {
		return nil, err
	}

	names, err := parseStyleNames(string(out))
	if err != nil {
		return nil, &FormatError{Source: c.executable + " --help output", Err: err}
	}
	return names, nil
}

// GetStyle dumps the configuration of a predefined style.
func (c *ClangFormat) GetStyle(ctx context.Context, name string, lang language.Language) (*document.Mapping, error) {
	args := []string{"--dump-config", "--style", name}
	if lang.IsSet() {
		args = append(args, "--assume-filename", lang.FileExtension())
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	config, err := document.ParseSingle(out)
	if err != nil {
		return nil, &FormatError{Source: fmt.Sprintf("style %s (%s)", name, lang), Err: err}
	}
	return config, nil
}

// run executes the tool with a deadline and returns its standard output.
func (c *ClangFormat) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.executable, args...)
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", c.timeout, ctxErr)
		}
		return nil, &InvocationError{
			Executable: c.executable,
			Args:       args,
			Stderr:     stderr.String(),
			Err:        err,
		}
	}

	return out, nil
}

// parseStyleNames extracts the first line matching styleListPattern and
// returns its names sorted.
func parseStyleNames(helpText string) ([]string, error) {
	for _, line := range strings.Split(helpText, "\n") {
		match := styleListPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}

		names := strings.Split(match[1], ", ")
		sort.Strings(names)
		return names, nil
	}

	return nil, errors.New("no predefined style list found")
}
