package photo

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// ObjectStore is where processed portraits end up. It returns the public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Uploader struct {
	proc  Processor
	store ObjectStore
}

func NewUploader(proc Processor, store ObjectStore) *Uploader {
	return &Uploader{proc: proc, store: store}
}

// UploadBarberPhoto stores a new portrait under a fresh key so cached
// copies of the previous one never shadow it.
func (u *Uploader) UploadBarberPhoto(ctx context.Context, barberID uint, r io.Reader) (string, error) {
	data, err := u.proc.Process(r)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("barbers/%d/%s.webp", barberID, uuid.NewString())
	return u.store.Put(ctx, key, ContentTypeWebP, data)
}
