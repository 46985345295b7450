// Package stats renders a fridge.Stats snapshot to disk for the
// fridgectl REPL's "stats dump" command: build the bytes in memory, then hand
// them to an atomic file writer so a reader never observes a
// half-written file.
package stats

import (
	"bytes"
	"fmt"
	"time"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/kvfridge/fridge/pkg/fridge"
)

// Snapshot is the serializable form of a fridge.Stats reading, stamped
// with the time it was taken.
type Snapshot struct {
	TakenAt       time.Time `yaml:"taken_at"`
	Buckets       int       `yaml:"buckets"`
	Entries       int       `yaml:"entries"`
	MaxChainDepth int       `yaml:"max_chain_depth"`
	WaitingKeys   int       `yaml:"waiting_keys"`
}

// FromStore takes a [fridge.Stats] reading and stamps it with now.
func FromStore(st fridge.Stats, now time.Time) Snapshot {
	return Snapshot{
		TakenAt:       now,
		Buckets:       st.Buckets,
		Entries:       st.Entries,
		MaxChainDepth: st.MaxChainDepth,
		WaitingKeys:   st.WaitingKeys,
	}
}

// Dump marshals snap as YAML and writes it to path atomically: the
// file at path either contains the previous snapshot in full or this
// one, never a torn mix of both.
func Dump(path string, snap Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal stats snapshot: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write stats snapshot %q: %w", path, err)
	}

	return nil
}
