package photo

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/storage"
	"scorebook/core/store"
	"scorebook/core/utils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service stores photos attached to catalog and event rows. The row lives in
// the database and rides along in snapshots; the payload is content
// addressed in object storage under its sha256 hash, so identical bytes are
// one photo no matter how often or where they are attached.
type Service struct {
	store   store.Store
	objects storage.Client
	bucket  string
	logger  *zap.Logger
}

// NewService creates a new photo service.
func NewService(s store.Store, objects storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{store: s, objects: objects, bucket: bucket, logger: logger}
}

// Attach stores payload and binds it to the given row. The payload hash is
// the photo's identity: attaching bytes that are already stored returns the
// existing row without another upload.
func (s *Service) Attach(ctx context.Context, refTable, refID, name, contentType string, payload []byte) (*schema.Photo, error) {
	if len(payload) == 0 {
		return nil, errs.Invalid("photo", "payload", "must not be empty")
	}
	if err := s.checkRef(ctx, refTable, refID); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(payload)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.photoByHash(ctx, hash)
	if err == nil {
		return existing, nil
	}
	if !errs.IsNotFound(err) {
		return nil, err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.objects.PutObject(ctx, s.bucket, hash, bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, fmt.Errorf("store photo payload %s: %w", hash, err)
	}

	photo := schema.Photo{
		ID:          uuid.NewString(),
		Hash:        hash,
		RefID:       refID,
		RefTable:    refTable,
		ContentType: contentType,
		Size:        int64(len(payload)),
	}
	if name != "" {
		photo.Name = utils.Ptr(name)
	}
	if err := s.store.Insert(ctx, schema.TablePhotos, store.RowOf(photo)); err != nil {
		// two concurrent attaches of the same bytes: the hash is unique,
		// whoever lost the race returns the winner's row
		if errs.IsIntegrity(err) {
			return s.photoByHash(ctx, hash)
		}
		return nil, err
	}

	s.logger.Info("Attached photo",
		zap.String("photoId", photo.ID),
		zap.String("hash", hash),
		zap.String("refTable", refTable),
		zap.String("refId", refID),
		zap.Int64("size", photo.Size))
	return s.GetPhoto(ctx, photo.ID)
}

// GetPhoto returns one photo row.
func (s *Service) GetPhoto(ctx context.Context, id string) (*schema.Photo, error) {
	row, err := s.store.SelectOne(ctx, schema.TablePhotos, store.ByID(id))
	if err != nil {
		return nil, err
	}
	var photo schema.Photo
	if err := store.ScanRow(row, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// Open returns a photo row together with its payload stream. The caller
// owns the reader.
func (s *Service) Open(ctx context.Context, id string) (*schema.Photo, io.ReadCloser, error) {
	photo, err := s.GetPhoto(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.objects.GetObject(ctx, s.bucket, photo.Hash, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("open photo payload %s: %w", photo.Hash, err)
	}
	return photo, reader, nil
}

// ListForRef returns every photo attached to one row, oldest first.
func (s *Service) ListForRef(ctx context.Context, refTable, refID string) ([]schema.Photo, error) {
	rows, err := s.store.Select(ctx, schema.TablePhotos, store.NewQuery().
		Eq("ref_table", refTable).
		Eq("ref_id", refID).
		OrderBy("created_at", false))
	if err != nil {
		return nil, err
	}

	photos := make([]schema.Photo, 0, len(rows))
	for _, row := range rows {
		var photo schema.Photo
		if err := store.ScanRow(row, &photo); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// Detach removes a photo row and its payload. The payload goes first: if
// object storage refuses, the row stays and the call can be retried.
func (s *Service) Detach(ctx context.Context, id string) error {
	photo, err := s.GetPhoto(ctx, id)
	if err != nil {
		return err
	}

	if err := s.objects.RemoveObject(ctx, s.bucket, photo.Hash, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove photo payload %s: %w", photo.Hash, err)
	}
	if _, err := s.store.Delete(ctx, schema.TablePhotos, store.ByID(id)); err != nil {
		return err
	}

	s.logger.Info("Detached photo", zap.String("photoId", id), zap.String("hash", photo.Hash))
	return nil
}

// checkRef validates the target row. Photos attach to snapshot tables only,
// never to other photos, and the row must exist locally.
func (s *Service) checkRef(ctx context.Context, refTable, refID string) error {
	t, ok := schema.TableByName(refTable)
	if !ok || !t.Synced || refTable == schema.TablePhotos {
		return errs.Invalid("photo", "refTable", fmt.Sprintf("%s cannot carry photos", refTable))
	}
	if refID == "" {
		return errs.Invalid("photo", "refId", "must not be empty")
	}
	_, err := s.store.SelectOne(ctx, refTable, store.ByID(refID))
	return err
}

func (s *Service) photoByHash(ctx context.Context, hash string) (*schema.Photo, error) {
	row, err := s.store.SelectOne(ctx, schema.TablePhotos, store.NewQuery().Eq("hash", hash))
	if err != nil {
		return nil, err
	}
	var photo schema.Photo
	if err := store.ScanRow(row, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}
