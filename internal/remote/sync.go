package remote

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/portalroom/internal/common"
	"github.com/dmitrijs2005/portalroom/internal/cryptox"
	"github.com/dmitrijs2005/portalroom/internal/logging"
)

// Archive is the part of the store a Syncer needs.
type Archive interface {
	Export() ([]byte, error)
	Import(ctx context.Context, data []byte) error
}

var ErrPassphraseRequired = fmt.Errorf("%w: remote backup is encrypted, a passphrase is required", common.ErrValidation)

// Syncer copies the full export document to and from a BlobStore. With a
// passphrase the blob is sealed before upload.
type Syncer struct {
	archive    Archive
	blobs      BlobStore
	passphrase string
	log        logging.Logger
}

func NewSyncer(archive Archive, blobs BlobStore, passphrase string, log logging.Logger) *Syncer {
	return &Syncer{archive: archive, blobs: blobs, passphrase: passphrase, log: log}
}

// PushResult describes a finished upload.
type PushResult struct {
	Location string
	// CreatedGist is the ID of a gist the push created; it must be
	// configured for later pushes to update it instead of creating another.
	CreatedGist string
}

// Push exports the store and uploads it. Export happens before any network
// call so the store is not held during the upload.
func (s *Syncer) Push(ctx context.Context) (PushResult, error) {
	data, err := s.archive.Export()
	if err != nil {
		return PushResult{}, err
	}
	if s.passphrase != "" {
		if data, err = cryptox.Seal(data, s.passphrase); err != nil {
			return PushResult{}, fmt.Errorf("cannot seal backup: %w", err)
		}
	}

	gist, isGist := s.blobs.(*GistStore)
	newGist := isGist && gist.GistID() == ""
	if err := s.blobs.Push(ctx, data); err != nil {
		return PushResult{}, err
	}

	res := PushResult{Location: s.blobs.Location()}
	if newGist {
		res.CreatedGist = gist.GistID()
	}
	s.log.Info(ctx, "backup pushed", "location", res.Location, "bytes", len(data))
	return res, nil
}

// Pull downloads the backup and imports it, replacing local users and links.
func (s *Syncer) Pull(ctx context.Context) error {
	data, err := s.blobs.Pull(ctx)
	if err != nil {
		return err
	}
	if cryptox.IsSealed(data) {
		if s.passphrase == "" {
			return ErrPassphraseRequired
		}
		if data, err = cryptox.Open(data, s.passphrase); err != nil {
			return fmt.Errorf("%w: cannot open backup: %v", common.ErrValidation, err)
		}
	}
	if err := s.archive.Import(ctx, data); err != nil {
		return err
	}
	s.log.Info(ctx, "backup pulled", "location", s.blobs.Location())
	return nil
}
