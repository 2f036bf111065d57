package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
)

// JSONFile keeps scores in memory and rewrites the whole file on every Put.
//
// The document is an object keyed by song id:
//
//	{"12": {"songId": 12, "minGuesses": 4, "timestamp": 1700000000000}}
type JSONFile struct {
	mu     sync.RWMutex
	path   string
	scores map[int]Score
}

// OpenJSON loads path. A missing or unreadable file starts an empty board;
// the condition is logged, never returned.
func OpenJSON(path string) *JSONFile {
	f := &JSONFile{path: path, scores: make(map[int]Score)}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("leaderboard dir not created")
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("leaderboard unreadable, starting empty")
		}
		return f
	}

	var raw map[string]Score
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("leaderboard corrupt, starting empty")
		return f
	}
	for k, s := range raw {
		id, err := strconv.Atoi(k)
		if err != nil || s.MinGuesses <= 0 {
			log.Warn().Str("key", k).Msg("leaderboard entry skipped")
			continue
		}
		s.SongID = id
		f.scores[id] = s
	}
	log.Info().Int("entries", len(f.scores)).Str("path", path).Msg("leaderboard loaded")
	return f
}

// Get returns the score for songID.
func (f *JSONFile) Get(_ context.Context, songID int) (Score, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.scores[songID]
	return s, ok, nil
}

// All returns a copy of every score.
func (f *JSONFile) All(_ context.Context) ([]Score, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Score, 0, len(f.scores))
	for _, s := range f.scores {
		out = append(out, s)
	}
	return out, nil
}

// Put stores s and flushes the file. Memory is only updated once the file
// has been replaced.
func (f *JSONFile) Put(_ context.Context, s Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[string]Score, len(f.scores)+1)
	for id, v := range f.scores {
		next[strconv.Itoa(id)] = v
	}
	next[strconv.Itoa(s.SongID)] = s

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(f.path, data); err != nil {
		return err
	}
	f.scores[s.SongID] = s
	return nil
}

// writeFileAtomic writes data to a temp file beside path and renames it
// over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
