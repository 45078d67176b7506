package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// Staged is a set of files written under temporary names beside their
// destinations. Nothing appears at a destination path until Commit.
type Staged struct {
	moves []move
}

type move struct {
	tmp, dst string
}

// Write stages b for path. The parent directory is created if needed.
func (s *Staged) Write(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(f.Name(), 0o644); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	s.moves = append(s.moves, move{tmp: f.Name(), dst: path})
	return nil
}

// Paths lists the destinations in staging order.
func (s *Staged) Paths() []string {
	out := make([]string, len(s.moves))
	for i, m := range s.moves {
		out[i] = m.dst
	}
	return out
}

// Commit renames every staged file onto its destination. On the first
// failure the files not yet renamed are removed.
func (s *Staged) Commit() error {
	if s == nil {
		return nil
	}
	for i, m := range s.moves {
		if err := os.Rename(m.tmp, m.dst); err != nil {
			s.moves = s.moves[i:]
			s.Discard()
			return fmt.Errorf("publish %s: %w", m.dst, err)
		}
	}
	s.moves = nil
	return nil
}

// Discard removes every staged file. It is safe on a nil or committed Staged.
func (s *Staged) Discard() {
	if s == nil {
		return
	}
	for _, m := range s.moves {
		_ = os.Remove(m.tmp)
	}
	s.moves = nil
}
