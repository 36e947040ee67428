package compliance

import (
	"os"
	"sync"
	"time"
)

// DesignCache serves a loaded design and reloads it only when either CSV
// file's modification time changes, so edits show up without a restart but
// steady-state requests skip the parse.
type DesignCache struct {
	roomsPath string
	doorsPath string

	mu       sync.Mutex
	valid    bool
	roomsMod time.Time
	doorsMod time.Time
	rooms    []Room
	doors    []Door
}

// NewDesignCache creates a cache over the given design CSV paths.
func NewDesignCache(roomsPath, doorsPath string) *DesignCache {
	return &DesignCache{roomsPath: roomsPath, doorsPath: doorsPath}
}

// Load returns the cached design when both files are unchanged, otherwise
// reloads from disk. Load errors are never cached.
func (c *DesignCache) Load() ([]Room, []Door, error) {
	roomsInfo, roomsErr := os.Stat(c.roomsPath)
	doorsInfo, doorsErr := os.Stat(c.doorsPath)

	c.mu.Lock()
	defer c.mu.Unlock()

	if roomsErr == nil && doorsErr == nil &&
		c.valid &&
		roomsInfo.ModTime().Equal(c.roomsMod) &&
		doorsInfo.ModTime().Equal(c.doorsMod) {
		return c.rooms, c.doors, nil
	}

	// Let the loader produce the canonical missing-file error.
	rooms, doors, err := LoadDesign(c.roomsPath, c.doorsPath)
	if err != nil {
		c.valid = false
		return nil, nil, err
	}

	c.rooms = rooms
	c.doors = doors
	if roomsErr == nil {
		c.roomsMod = roomsInfo.ModTime()
	}
	if doorsErr == nil {
		c.doorsMod = doorsInfo.ModTime()
	}
	c.valid = roomsErr == nil && doorsErr == nil
	return rooms, doors, nil
}
