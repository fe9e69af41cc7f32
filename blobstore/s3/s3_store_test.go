package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gradir/blobstore"
)

// fakeS3 simulates a bucket: a key-to-bytes map with S3's typed
// not-found error. Snapshots stay below the multipart threshold, so
// only the single-shot PutObject path is implemented.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &s3.ListObjectsV2Output{}
	for key := range f.objects {
		if params.Prefix == nil || strings.HasPrefix(key, *params.Prefix) {
			k := key
			out.Contents = append(out.Contents, types.Object{Key: &k})
		}
	}
	return out, nil
}

func (f *fakeS3) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func TestS3Store_PutGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewStore(fake, "bucket", "witness-cache")

	data := []byte("snapshot bytes")
	require.NoError(t, store.Put(ctx, "base.snap", data))

	// Keys carry the root prefix.
	assert.Contains(t, fake.objects, "witness-cache/base.snap")

	got, err := store.Get(ctx, "base.snap")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestS3Store_GetNotFound(t *testing.T) {
	store := NewStore(newFakeS3(), "bucket", "witness-cache")

	_, err := store.Get(context.Background(), "missing.snap")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestS3Store_ListRelativizesPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeS3(), "bucket", "witness-cache")

	require.NoError(t, store.Put(ctx, "base.snap", []byte("a")))
	require.NoError(t, store.Put(ctx, "nightly/latest.snap", []byte("b")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"base.snap", "nightly/latest.snap"}, names)

	names, err = store.List(ctx, "nightly")
	require.NoError(t, err)
	assert.Equal(t, []string{"nightly/latest.snap"}, names)
}

func TestS3Store_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeS3(), "bucket", "witness-cache")

	require.NoError(t, store.Put(ctx, "base.snap", []byte("a")))
	require.NoError(t, store.Delete(ctx, "base.snap"))

	_, err := store.Get(ctx, "base.snap")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
