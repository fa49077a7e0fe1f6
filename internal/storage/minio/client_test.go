package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
)

type putCall struct {
	key         string
	size        int64
	contentType string
	data        []byte
}

// fakeAPI implements objectAPI without network access.
type fakeAPI struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	puts   []putCall
	putErr error

	getRC  io.ReadCloser
	getErr error

	removed   []string
	removeErr error

	statErr error
}

func (f *fakeAPI) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeAPI) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	if f.makeBucketErr != nil {
		return f.makeBucketErr
	}
	f.madeBucket = bucket
	return nil
}

func (f *fakeAPI) PutObject(_ context.Context, _, key string, reader io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	data, _ := io.ReadAll(reader)
	f.puts = append(f.puts, putCall{key: key, size: size, contentType: opts.ContentType, data: data})
	return minioLib.UploadInfo{Key: key, Size: size}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, _, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeAPI) RemoveObject(_ context.Context, _, key string, _ minioLib.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeAPI) StatObject(_ context.Context, _, key string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{Key: key}, f.statErr
}

func TestNewClient_Bucket(t *testing.T) {
	tests := []struct {
		name       string
		api        *fakeAPI
		wantErr    bool
		wantMadeBy string
	}{
		{name: "bucket exists", api: &fakeAPI{bucketExists: true}},
		{name: "bucket created", api: &fakeAPI{}, wantMadeBy: "photos"},
		{name: "exists check fails", api: &fakeAPI{bucketExistsErr: errors.New("boom")}, wantErr: true},
		{name: "create fails", api: &fakeAPI{makeBucketErr: errors.New("denied")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newClient(context.Background(), tt.api, "photos")
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, c)
				assert.Contains(t, err.Error(), "failed to ensure bucket exists")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "photos", c.bucket)
			assert.Equal(t, tt.wantMadeBy, tt.api.madeBucket)
		})
	}
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeAPI{}
		c := &Client{api: api, bucket: "photos"}

		err := c.Upload(ctx, "products/1", bytes.NewReader([]byte("png")), 3, "image/png")
		require.NoError(t, err)
		require.Len(t, api.puts, 1)
		assert.Equal(t, putCall{key: "products/1", size: 3, contentType: "image/png", data: []byte("png")}, api.puts[0])
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeAPI{putErr: errors.New("put-fail")}, bucket: "photos"}

		err := c.Upload(ctx, "products/1", bytes.NewReader([]byte("png")), 3, "image/png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeAPI{getRC: io.NopCloser(bytes.NewReader([]byte("abc")))}
		c := &Client{api: api, bucket: "photos"}

		rc, err := c.Download(ctx, "products/1")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})

	t.Run("missing object", func(t *testing.T) {
		api := &fakeAPI{statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}}
		c := &Client{api: api, bucket: "photos"}

		rc, err := c.Download(ctx, "products/1")
		assert.Nil(t, rc)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get error", func(t *testing.T) {
		api := &fakeAPI{getErr: errors.New("get-fail")}
		c := &Client{api: api, bucket: "photos"}

		rc, err := c.Download(ctx, "products/1")
		assert.Nil(t, rc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	api := &fakeAPI{}
	c := &Client{api: api, bucket: "photos"}
	require.NoError(t, c.Delete(ctx, "products/1"))
	assert.Equal(t, []string{"products/1"}, api.removed)

	c = &Client{api: &fakeAPI{removeErr: errors.New("remove-fail")}, bucket: "photos"}
	err := c.Delete(ctx, "products/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete object")
}

func TestClient_Exists(t *testing.T) {
	tests := []struct {
		name    string
		statErr error
		want    bool
		wantErr bool
	}{
		{name: "exists", want: true},
		{name: "not found", statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}},
		{name: "other error", statErr: errors.New("stat-fail"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{api: &fakeAPI{statErr: tt.statErr}, bucket: "photos"}

			ok, err := c.Exists(context.Background(), "products/1")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to stat object")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}
}
