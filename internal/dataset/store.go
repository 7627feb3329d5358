package dataset

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/statementlens/statementlens/internal/models"
)

// ErrDuplicateFile is returned when a file name has already been ingested in
// this session. The set keys on names, not content hashes, so a renamed
// duplicate slips through; that is a documented limitation.
var ErrDuplicateFile = errors.New("file already ingested")

// Store owns the merged transaction dataset and the uploaded-file set. All
// mutations funnel through its methods under one lock, preserving the
// single-writer discipline; readers get snapshot copies.
type Store struct {
	mu       sync.RWMutex
	rows     []models.Transaction
	files    map[string]struct{}
	revision uint64
}

// NewStore returns an empty dataset store.
func NewStore() *Store {
	return &Store{files: make(map[string]struct{})}
}

// Ingest merges newly extracted rows into the dataset. Rows are deduplicated
// by RawLine with last-write-wins semantics, which in practice only collapses
// true duplicates — though two genuinely distinct transactions with
// byte-identical narratives would be silently merged too. The merged set is
// re-sorted by date descending afterwards.
//
// Returns the number of rows actually added, or ErrDuplicateFile if the name
// was ingested before.
func (s *Store) Ingest(fileName string, rows []models.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[fileName]; ok {
		return 0, ErrDuplicateFile
	}
	s.files[fileName] = struct{}{}

	index := make(map[string]int, len(s.rows))
	for i, r := range s.rows {
		index[r.RawLine] = i
	}

	added := 0
	for _, r := range rows {
		if i, ok := index[r.RawLine]; ok {
			s.rows[i] = r
			continue
		}
		index[r.RawLine] = len(s.rows)
		s.rows = append(s.rows, r)
		added++
	}

	sortByDateDesc(s.rows)
	s.revision++
	return added, nil
}

// RemoveFile drops every transaction originating from the named file and
// forgets the name. Removal preserves the existing sort order. Reports
// whether the name was known.
func (s *Store) RemoveFile(fileName string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[fileName]; !ok {
		return 0, false
	}
	delete(s.files, fileName)

	kept := s.rows[:0]
	removed := 0
	for _, r := range s.rows {
		if r.FileName == fileName {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.rows = kept
	s.revision++
	return removed, true
}

// Clear empties the dataset and the uploaded-file set.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.files = make(map[string]struct{})
	s.revision++
}

// Snapshot returns a copy of the dataset in its current sort order.
func (s *Store) Snapshot() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of transactions in the dataset.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// HasFile reports whether the named file was already ingested.
func (s *Store) HasFile(fileName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[fileName]
	return ok
}

// Files returns the ingested file names, sorted.
func (s *Store) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for name := range s.files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Types returns the distinct non-empty category labels present in the
// dataset, sorted. Feeds the type filter choices.
func (s *Store) Types() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, r := range s.rows {
		if r.Type != "" {
			seen[r.Type] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Revision is a counter bumped on every mutation; cache keys derived from it
// go stale exactly when the dataset changes.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// sortByDateDesc orders rows newest first. Rows without a parsed date sort
// as if dated at the epoch, deterministically placing them at the end. The
// sort is stable so equal-dated rows keep their merge order.
func sortByDateDesc(rows []models.Transaction) {
	sort.SliceStable(rows, func(i, j int) bool {
		return dateKey(rows[i]).After(dateKey(rows[j]))
	})
}

func dateKey(t models.Transaction) time.Time {
	if t.DateObj == nil {
		return time.Time{}
	}
	return *t.DateObj
}
