package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, "01HXYZ.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/01HXYZ.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "01HXYZ.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "01HXYZ.jpg"))
	_, err = os.Stat(filepath.Join(dir, "01HXYZ.jpg"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, "01HXYZ.jpg"), "deleting twice is fine")
}

func TestLocal_NeverOverwrites(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Save(ctx, "a.png", "image/png", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "a.png", "image/png", strings.NewReader("second"))
	assert.Error(t, err)

	data, err := os.ReadFile(filepath.Join(store.Dir(), "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestLocal_RejectsPaths(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../escape.jpg", "sub/dir.jpg"} {
		_, err := store.Save(context.Background(), name, "image/png", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocal_PartialWriteRemoved(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "broken.jpg", "image/jpeg", failingReader{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(store.Dir(), "broken.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}

type fakeObjectAPI struct {
	put     *s3.PutObjectInput
	body    string
	deleted []string
	putErr  error
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_Save(t *testing.T) {
	api := &fakeObjectAPI{}
	store := newS3WithClient(api, "rehla-uploads", "https://cdn.example.com/")

	url, err := store.Save(context.Background(), "01HABC.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/01HABC.png", url)

	require.NotNil(t, api.put)
	assert.Equal(t, "rehla-uploads", aws.ToString(api.put.Bucket))
	assert.Equal(t, "01HABC.png", aws.ToString(api.put.Key))
	assert.Equal(t, "image/png", aws.ToString(api.put.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(api.put.ContentLength))
	assert.Equal(t, "png", api.body)

	require.NoError(t, store.Delete(context.Background(), "01HABC.png"))
	assert.Equal(t, []string{"01HABC.png"}, api.deleted)
}

func TestS3_SaveError(t *testing.T) {
	api := &fakeObjectAPI{putErr: errors.New("access denied")}
	store := newS3WithClient(api, "b", "https://cdn.example.com")

	_, err := store.Save(context.Background(), "x.jpg", "image/jpeg", strings.NewReader("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestDefaultPublicURL(t *testing.T) {
	assert.Equal(t, "https://pics.s3.eu-west-1.amazonaws.com",
		defaultPublicURL(S3Options{Bucket: "pics", Region: "eu-west-1"}))
	assert.Equal(t, "http://127.0.0.1:9000/pics",
		defaultPublicURL(S3Options{Bucket: "pics", Endpoint: "http://127.0.0.1:9000/"}))
}
