package usecase

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aalvaropc/mkr1/internal/domain"
	"github.com/aalvaropc/mkr1/internal/infra/fileio"
	"github.com/aalvaropc/mkr1/internal/infra/runstore"
)

// --- fakes ---

type fakeInput struct {
	n   int
	err error
}

func (f fakeInput) ReadInput() (int, error) { return f.n, f.err }

type fakeOutput struct {
	written []int64
	err     error
}

func (f *fakeOutput) WriteOutput(result int64) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, result)
	return nil
}

func (f *fakeOutput) OutputPath() string { return "/fake/mkr1/OUTPUT.txt" }

type fakeStore struct {
	saved []domain.RunRecord
	err   error
}

func (s *fakeStore) SaveRun(run domain.RunRecord) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, run)
	return "run-123", nil
}

type failingCalc struct{ err error }

func (c failingCalc) Calculate(int) (int64, error) { return 0, c.err }

// --- unit tests ---

func TestComputeDerangement_WritesResult(t *testing.T) {
	out := &fakeOutput{}
	store := &fakeStore{}
	start := time.Unix(1000, 0)

	uc := NewComputeDerangement(fakeInput{n: 5}, out, domain.NewCalculator(),
		WithRunStore(store),
		WithNow(func() time.Time { return start }),
	)

	run, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if run.Input != 5 || run.Result != 44 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if len(out.written) != 1 || out.written[0] != 44 {
		t.Fatalf("expected 44 written once, got %v", out.written)
	}
	if len(store.saved) != 1 || store.saved[0].Result != 44 {
		t.Fatalf("expected run saved, got %+v", store.saved)
	}
	if run.OutputPath != "/fake/mkr1/OUTPUT.txt" {
		t.Fatalf("expected output path recorded, got %q", run.OutputPath)
	}
}

func TestComputeDerangement_ReadErrorStopsPipeline(t *testing.T) {
	readErr := &domain.OpError{Op: "fileio.readinput", Kind: domain.KindFileNotFound, Err: domain.ErrFileNotFound}
	out := &fakeOutput{}
	store := &fakeStore{}

	uc := NewComputeDerangement(fakeInput{err: readErr}, out, domain.NewCalculator(), WithRunStore(store))
	_, err := uc.Execute(context.Background())
	if !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
	if len(out.written) != 0 || len(store.saved) != 0 {
		t.Fatalf("expected nothing written or saved")
	}
}

func TestComputeDerangement_NegativeInput(t *testing.T) {
	out := &fakeOutput{}

	uc := NewComputeDerangement(fakeInput{n: -3}, out, domain.NewCalculator())
	_, err := uc.Execute(context.Background())
	if !domain.IsKind(err, domain.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
	if len(out.written) != 0 {
		t.Fatalf("expected no output for invalid input")
	}
}

func TestComputeDerangement_CalculatorError(t *testing.T) {
	calcErr := errors.New("boom")

	uc := NewComputeDerangement(fakeInput{n: 2}, &fakeOutput{}, failingCalc{err: calcErr})
	if _, err := uc.Execute(context.Background()); !errors.Is(err, calcErr) {
		t.Fatalf("expected calc error, got %v", err)
	}
}

func TestComputeDerangement_WriteErrorSkipsHistory(t *testing.T) {
	writeErr := errors.New("disk full")
	store := &fakeStore{}

	uc := NewComputeDerangement(fakeInput{n: 2}, &fakeOutput{err: writeErr}, domain.NewCalculator(), WithRunStore(store))
	if _, err := uc.Execute(context.Background()); !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("expected no history for failed run")
	}
}

func TestComputeDerangement_HistoryFailureIsNotFatal(t *testing.T) {
	out := &fakeOutput{}

	uc := NewComputeDerangement(fakeInput{n: 0}, out, domain.NewCalculator(),
		WithRunStore(&fakeStore{err: errors.New("read-only")}),
	)
	run, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("expected success despite history failure, got %v", err)
	}
	if run.Result != 1 {
		t.Fatalf("expected 1, got %d", run.Result)
	}
}

func TestComputeDerangement_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &fakeOutput{}
	uc := NewComputeDerangement(fakeInput{n: 5}, out, domain.NewCalculator())
	if _, err := uc.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(out.written) != 0 {
		t.Fatalf("expected nothing written")
	}
}

// --- integration with the file handler ---

func setupProject(t *testing.T, input string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "mkr1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "INPUT.txt"), []byte(input), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return root
}

func TestComputeDerangement_FileRoundTrip(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"5", "44"},
		{"0", "1"},
		{"20\n", "895014631192902121"},
	}

	for _, c := range cases {
		root := setupProject(t, c.input)
		h := fileio.NewHandler(root, fileio.WithConsole(&bytes.Buffer{}))
		store := runstore.NewJSONStore(root, domain.DefaultConfig())

		uc := NewComputeDerangement(h, h, domain.NewCalculator(), WithRunStore(store))
		for i := 0; i < 2; i++ {
			if _, err := uc.Execute(context.Background()); err != nil {
				t.Fatalf("input %q run #%d: %v", c.input, i+1, err)
			}

			b, err := os.ReadFile(filepath.Join(root, "mkr1", "OUTPUT.txt"))
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if string(b) != c.want {
				t.Fatalf("input %q run #%d: expected %q, got %q", c.input, i+1, c.want, string(b))
			}
		}

		entries, err := os.ReadDir(store.Dir())
		if err != nil {
			t.Fatalf("read history dir: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 history records, got %d", len(entries))
		}
	}
}
