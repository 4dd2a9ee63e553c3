package domain

import "time"

// Project layout constants. The project root is the directory that directly
// contains ProjectFolder.
const (
	ProjectFolder  = "mkr1"
	InputFileName  = "INPUT.txt"
	OutputFileName = "OUTPUT.txt"
	ConfigFileName = "mkr1.yaml"
)

// RunRecord describes one read/compute/write pass.
type RunRecord struct {
	Input      int       `json:"input"`
	Result     int64     `json:"result"`
	OutputPath string    `json:"output_path"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// Duration returns the elapsed time, or zero if either bound is unset.
func (r RunRecord) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// ProjectSpec describes where a new mkr1 project is scaffolded.
// An empty HistoryDir means DefaultConfig().History.Dir.
type ProjectSpec struct {
	Root       string
	HistoryDir string
}
