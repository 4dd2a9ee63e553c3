package fsproject

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/mkr1/internal/domain"
	"github.com/aalvaropc/mkr1/internal/ports"
)

const gitignoreHeader = "# mkr1"

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.ProjectInitializer = (*Initializer)(nil)

// Init creates <root>/mkr1 with a seed input and a config template.
// Existing files are kept unless force is set.
func (i *Initializer) Init(spec domain.ProjectSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	if err := os.MkdirAll(filepath.Join(root, domain.ProjectFolder), 0o755); err != nil {
		return initError(root, err)
	}

	if err := ensureGitignore(root, gitignoreEntries(spec.HistoryDir)); err != nil {
		return initError(filepath.Join(root, ".gitignore"), err)
	}

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		dst := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(p, "templates/")))
		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		return os.WriteFile(dst, b, 0o644)
	})
	if err != nil {
		return initError(root, err)
	}
	return nil
}

func initError(p string, err error) error {
	return &domain.OpError{
		Op:   "fsproject.init",
		Kind: domain.KindExecution,
		Path: p,
		Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
	}
}

// gitignoreEntries lists the generated artifacts: the output file, the run
// history directory and the log directory.
func gitignoreEntries(historyDir string) []string {
	if strings.TrimSpace(historyDir) == "" {
		historyDir = domain.DefaultConfig().History.Dir
	}
	return []string{
		path.Join(domain.ProjectFolder, domain.OutputFileName),
		path.Join(domain.ProjectFolder, filepath.ToSlash(historyDir)) + "/",
		".mkr1/",
	}
}

// ensureGitignore appends the entries .gitignore does not already list,
// under a single header.
func ensureGitignore(root string, entries []string) error {
	p := filepath.Join(root, ".gitignore")

	b, err := os.ReadFile(p)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	existing := string(b)

	have := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		have[strings.TrimSpace(line)] = true
	}

	var add []string
	if !have[gitignoreHeader] {
		add = append(add, gitignoreHeader)
	}
	missing := 0
	for _, e := range entries {
		if !have[e] {
			add = append(add, e)
			missing++
		}
	}
	if missing == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(existing)
	if existing != "" {
		if !strings.HasSuffix(existing, "\n") {
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Join(add, "\n"))
	sb.WriteByte('\n')

	return os.WriteFile(p, []byte(sb.String()), 0o644)
}
