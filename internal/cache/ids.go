package cache

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewPendingID returns an identifier for a pending create. The unix
// millisecond prefix keeps ids sortable by creation time; the random
// suffix makes collisions on one device practically impossible.
func NewPendingID() string {
	return "pend_" + stamp()
}

// NewTempID returns a placeholder listing id used until the server
// assigns the real one.
func NewTempID() string {
	return "tmp_" + stamp()
}

func stamp() string {
	var suffix [4]byte
	_, _ = rand.Read(suffix[:])
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + hex.EncodeToString(suffix[:])
}
