package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aalvaropc/mkr1/internal/domain"
	"github.com/aalvaropc/mkr1/internal/ports"
)

// Handler reads INPUT.txt and writes OUTPUT.txt inside <root>/mkr1.
type Handler struct {
	root    string
	console io.Writer
}

type Option func(*Handler)

// WithConsole sets where the write confirmation is printed. Defaults to stdout.
func WithConsole(w io.Writer) Option {
	return func(h *Handler) {
		if w != nil {
			h.console = w
		}
	}
}

func NewHandler(root string, opts ...Option) *Handler {
	h := &Handler{
		root:    root,
		console: os.Stdout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var (
	_ ports.InputReader  = (*Handler)(nil)
	_ ports.OutputWriter = (*Handler)(nil)
)

func (h *Handler) InputPath() string {
	return filepath.Join(h.root, domain.ProjectFolder, domain.InputFileName)
}

func (h *Handler) OutputPath() string {
	return filepath.Join(h.root, domain.ProjectFolder, domain.OutputFileName)
}

// inputSpace is the whitespace accepted around the number: tab through
// carriage return, and space.
const inputSpace = " \t\n\v\f\r"

// ReadInput parses the whole input file as one base-10 integer.
// Surrounding ASCII whitespace and a leading sign are accepted. Anything other
// than a regular file at the input path counts as missing.
func (h *Handler) ReadInput() (int, error) {
	path := h.InputPath()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return 0, &domain.OpError{
			Op:   "fileio.readinput",
			Kind: domain.KindFileNotFound,
			Path: path,
			Err:  domain.ErrFileNotFound,
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "fileio.readinput",
			Kind: domain.KindExecution,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	n, err := strconv.ParseInt(strings.Trim(string(b), inputSpace), 10, 32)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "fileio.parseinput",
			Kind: domain.KindFormat,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrFormat, err),
		}
	}
	return int(n), nil
}

// WriteOutput replaces the output file with the decimal form of result.
func (h *Handler) WriteOutput(result int64) error {
	path := h.OutputPath()

	if err := os.WriteFile(path, []byte(strconv.FormatInt(result, 10)), 0o644); err != nil {
		return &domain.OpError{
			Op:   "fileio.writeoutput",
			Kind: domain.KindExecution,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	fmt.Fprintf(h.console, "Output written to: %s\n", path)
	return nil
}
