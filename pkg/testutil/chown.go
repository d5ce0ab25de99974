package testutil

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
)

// Ownership is the uid and gid a path was last chowned to
type Ownership struct {
	UID int
	GID int
}

// ChownRecorder wraps a filesystem and records every Chown call made through
// it before passing the call on.
type ChownRecorder struct {
	afero.Fs

	mu    sync.Mutex
	owned map[string]Ownership
}

// NewChownRecorder wraps fs
func NewChownRecorder(fs afero.Fs) *ChownRecorder {
	return &ChownRecorder{Fs: fs, owned: make(map[string]Ownership)}
}

// Chown records name and delegates to the wrapped filesystem
func (r *ChownRecorder) Chown(name string, uid, gid int) error {
	r.mu.Lock()
	r.owned[filepath.Clean(name)] = Ownership{UID: uid, GID: gid}
	r.mu.Unlock()
	return r.Fs.Chown(name, uid, gid)
}

// Chowned returns every recorded path, sorted
func (r *ChownRecorder) Chowned() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.owned))
	for p := range r.owned {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// OwnerOf returns the ownership recorded for path
func (r *ChownRecorder) OwnerOf(path string) (Ownership, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.owned[filepath.Clean(path)]
	return o, ok
}

// Reset forgets everything recorded so far
func (r *ChownRecorder) Reset() {
	r.mu.Lock()
	r.owned = make(map[string]Ownership)
	r.mu.Unlock()
}
