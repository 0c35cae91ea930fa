// Package memsnap keeps the board of the last finished game in memory
// for the web layer. The JSON file written next to the board images
// lets the cache survive a restart.
package memsnap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/hoshinonyaruko/snake-term/structs"
)

const snapshotFile = "board.json"

var (
	lastSnap  *structs.Snapshot
	lastMutex sync.RWMutex
)

// Set replaces the cached snapshot.
func Set(s structs.Snapshot) {
	lastMutex.Lock()
	lastSnap = &s
	lastMutex.Unlock()
}

// Get returns the cached snapshot, when one exists.
func Get() (structs.Snapshot, bool) {
	lastMutex.RLock()
	snap := lastSnap
	lastMutex.RUnlock()
	if snap == nil {
		return structs.Snapshot{}, false
	}
	return *snap, true
}

// Path is where the snapshot JSON lives under the static directory.
func Path(staticDir string) string {
	return filepath.Join(staticDir, snapshotFile)
}

// Load warms the cache from the snapshot JSON left by a previous run.
// A missing file is not an error.
func Load(staticDir string) error {
	data, err := os.ReadFile(Path(staticDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var s structs.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	Set(s)
	return nil
}
