package media

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectAPI struct {
	mock.Mock
}

func (m *mockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func (m *mockObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.DeleteObjectOutput)
	return out, args.Error(1)
}

func TestS3Uploader_Upload(t *testing.T) {
	api := new(mockObjectAPI)
	u := NewS3Uploader(api, "classroom", "/uploads/", "https://cdn.example.com/")
	u.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }

	api.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "classroom" &&
			strings.HasPrefix(*in.Key, "uploads/2024/3/9/") &&
			strings.HasSuffix(*in.Key, "-my-photo.jpg") &&
			*in.ContentLength == 3 &&
			*in.ContentType == "image/jpeg"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	obj, err := u.Upload(context.Background(), bytes.NewReader([]byte("abc")), 3, "My Photo.jpg")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+obj.Key, obj.URL)
	api.AssertExpectations(t)
}

func TestS3Uploader_UploadError(t *testing.T) {
	api := new(mockObjectAPI)
	u := NewS3Uploader(api, "classroom", "", "http://minio:9000/classroom")

	api.On("PutObject", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	obj, err := u.Upload(context.Background(), bytes.NewReader(nil), 0, "a.png")

	assert.Nil(t, obj)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestS3Uploader_Delete(t *testing.T) {
	api := new(mockObjectAPI)
	u := NewS3Uploader(api, "classroom", "", "http://minio:9000/classroom")

	api.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Bucket == "classroom" && *in.Key == "2024/1/1/x-a.png"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	assert.NoError(t, u.Delete(context.Background(), "2024/1/1/x-a.png"))
	api.AssertExpectations(t)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "my-photo.jpg", sanitizeName("My Photo.jpg"))
	assert.Equal(t, "evil.png", sanitizeName("../../evil.png"))
	assert.Equal(t, "evil.png", sanitizeName(`C:\tmp\evil.png`))
	assert.Equal(t, "file", sanitizeName("..."))
}
