package photo_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"testing"

	"scorebook/core/database"
	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/storage/mocks"
	"scorebook/core/store"
	"scorebook/feature/photo"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type world struct {
	service *photo.Service
	client  *mocks.Client
	store   store.Store
	venueID string
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	s := store.NewGorm(db)

	venueID := uuid.NewString()
	require.NoError(t, s.Insert(context.Background(), schema.TableVenues, store.Row{
		"id": venueID, "name": "Old Links",
	}))

	client := new(mocks.Client)
	return &world{
		service: photo.NewService(s, client, "photos", zap.NewNop()),
		client:  client,
		store:   s,
		venueID: venueID,
	}
}

func hashOf(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func TestAttachPhotoContentAddressed(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	payload := []byte("eighteenth green at dusk")
	hash := hashOf(payload)

	w.client.On("PutObject", mock.Anything, "photos", hash, mock.Anything, int64(len(payload)), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	p, err := w.service.Attach(ctx, schema.TableVenues, w.venueID, "dusk.jpg", "image/jpeg", payload)
	require.NoError(t, err)
	assert.Equal(t, hash, p.Hash)
	assert.Equal(t, w.venueID, p.RefID)
	assert.Equal(t, schema.TableVenues, p.RefTable)
	assert.Equal(t, "image/jpeg", p.ContentType)
	assert.EqualValues(t, len(payload), p.Size)
	require.NotNil(t, p.Name)
	assert.Equal(t, "dusk.jpg", *p.Name)
	assert.NotZero(t, p.CreatedAt)

	// identical bytes land on the existing row, no second upload
	again, err := w.service.Attach(ctx, schema.TableVenues, w.venueID, "copy.jpg", "image/jpeg", payload)
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
	w.client.AssertNumberOfCalls(t, "PutObject", 1)

	n, err := w.store.Count(ctx, schema.TablePhotos, store.NewQuery())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	w.client.AssertExpectations(t)
}

func TestAttachPhotoValidation(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	_, err := w.service.Attach(ctx, schema.TableVenues, w.venueID, "", "image/jpeg", nil)
	assert.True(t, errs.IsValidation(err), "empty payload")

	_, err = w.service.Attach(ctx, "nonsense", w.venueID, "", "image/jpeg", []byte("x"))
	assert.True(t, errs.IsValidation(err), "unknown table")

	_, err = w.service.Attach(ctx, schema.TableMergeEntries, "m1", "", "image/jpeg", []byte("x"))
	assert.True(t, errs.IsValidation(err), "device-local table")

	_, err = w.service.Attach(ctx, schema.TablePhotos, "p1", "", "image/jpeg", []byte("x"))
	assert.True(t, errs.IsValidation(err), "photos on photos")

	_, err = w.service.Attach(ctx, schema.TableVenues, "missing", "", "image/jpeg", []byte("x"))
	assert.True(t, errs.IsNotFound(err), "unknown row")

	w.client.AssertNumberOfCalls(t, "PutObject", 0)
}

func TestOpenPhoto(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	payload := []byte("scorecard snapshot")

	w.client.On("PutObject", mock.Anything, "photos", hashOf(payload), mock.Anything, int64(len(payload)), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	p, err := w.service.Attach(ctx, schema.TableVenues, w.venueID, "", "image/png", payload)
	require.NoError(t, err)
	assert.Equal(t, "image/png", p.ContentType)
	assert.Nil(t, p.Name)

	w.client.On("GetObject", mock.Anything, "photos", p.Hash, mock.Anything).
		Return(io.NopCloser(bytes.NewReader(payload)), nil)

	got, reader, err := w.service.Open(ctx, p.ID)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, p.ID, got.ID)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, _, err = w.service.Open(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))
}

func TestListPhotosForRef(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	other := uuid.NewString()
	require.NoError(t, w.store.Insert(ctx, schema.TableVenues, store.Row{"id": other, "name": "New Course"}))

	w.client.On("PutObject", mock.Anything, "photos", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	_, err := w.service.Attach(ctx, schema.TableVenues, w.venueID, "a.jpg", "image/jpeg", []byte("first"))
	require.NoError(t, err)
	_, err = w.service.Attach(ctx, schema.TableVenues, w.venueID, "b.jpg", "image/jpeg", []byte("second"))
	require.NoError(t, err)
	_, err = w.service.Attach(ctx, schema.TableVenues, other, "c.jpg", "image/jpeg", []byte("third"))
	require.NoError(t, err)

	photos, err := w.service.ListForRef(ctx, schema.TableVenues, w.venueID)
	require.NoError(t, err)
	assert.Len(t, photos, 2)

	photos, err = w.service.ListForRef(ctx, schema.TableVenues, "unknown")
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestDetachPhoto(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	payload := []byte("to be removed")

	w.client.On("PutObject", mock.Anything, "photos", hashOf(payload), mock.Anything, int64(len(payload)), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	p, err := w.service.Attach(ctx, schema.TableVenues, w.venueID, "", "image/jpeg", payload)
	require.NoError(t, err)

	w.client.On("RemoveObject", mock.Anything, "photos", p.Hash, mock.Anything).Return(nil).Once()

	require.NoError(t, w.service.Detach(ctx, p.ID))
	_, err = w.service.GetPhoto(ctx, p.ID)
	assert.True(t, errs.IsNotFound(err))

	err = w.service.Detach(ctx, p.ID)
	assert.True(t, errs.IsNotFound(err))
	w.client.AssertExpectations(t)
}
