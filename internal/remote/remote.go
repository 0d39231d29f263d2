// Package remote stores backup documents outside the local database and
// moves them between a remote backend and the store.
package remote

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/portalroom/internal/common"
)

// BackupFile is the object or file name a backup is stored under.
const BackupFile = "portalroom.json"

// ErrNoBackup is returned by Pull when the backend holds no backup yet.
var ErrNoBackup = fmt.Errorf("%w: remote backup", common.ErrNotFound)

// BlobStore keeps a single opaque blob.
type BlobStore interface {
	Push(ctx context.Context, data []byte) error
	Pull(ctx context.Context) ([]byte, error)
	// Location describes where the blob lives, for messages.
	Location() string
}
