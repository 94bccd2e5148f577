// Package cvstore stores uploaded CV files and hands back the stored name.
// File content is accepted as-is; validating it is not this layer's job.
package cvstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// Store saves one CV blob for a user and returns the name it was stored
// under. The stored name is what the session keeps and what the profile
// view shows.
type Store interface {
	Save(ctx context.Context, username, filename string, r io.Reader) (string, error)
}

// storageKey builds a per-upload unique object name. The original file name
// is reduced to its base to keep path elements out of the key.
func storageKey(username, filename string) string {
	return fmt.Sprintf("cv/%s/%s-%s", username, uuid.New(), filepath.Base(filename))
}
