package report

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"renting-scraper/core/storage/mocks"
	"renting-scraper/feature/property/diff"
	"renting-scraper/feature/property/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	result := &diff.Result{
		Diffs: []diff.Diff{
			{
				Type: diff.TypeNew,
				Entity: models.PropertyEntity{
					Source:      models.SourceImovirtual,
					ExternalID:  "1",
					Description: "T2",
					Price:       900,
				},
			},
		},
		Summary: diff.Summary{Observed: 1, New: 1},
	}

	t.Run("Stores the serialized run", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("BucketExists", mock.Anything, "runs").Return(true, nil)

		var stored []byte
		client.On("PutObject", mock.Anything, "runs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				var err error
				stored, err = io.ReadAll(args.Get(3).(io.Reader))
				require.NoError(t, err)
			}).
			Return(minio.UploadInfo{}, nil)

		name, err := Upload(context.Background(), client, "runs", result)
		require.NoError(t, err)
		assert.Regexp(t, `^reports/.*\.json$`, name)

		var rep Report
		require.NoError(t, json.Unmarshal(stored, &rep))
		assert.Equal(t, 1, rep.Summary.New)
		require.Len(t, rep.Diffs, 1)
		assert.Equal(t, "1", rep.Diffs[0].Entity.ExternalID)
		assert.False(t, rep.GeneratedAt.IsZero())

		client.AssertExpectations(t)
	})

	t.Run("Creates the bucket on first use", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("BucketExists", mock.Anything, "runs").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "runs", minio.MakeBucketOptions{}).Return(nil)
		client.On("PutObject", mock.Anything, "runs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		_, err := Upload(context.Background(), client, "runs", result)
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Propagates bucket check failures", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("BucketExists", mock.Anything, "runs").Return(false, assert.AnError)

		_, err := Upload(context.Background(), client, "runs", result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check report bucket")
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Sets the JSON content type", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("BucketExists", mock.Anything, "runs").Return(true, nil)
		client.On("PutObject", mock.Anything, "runs", mock.Anything, mock.Anything, mock.Anything,
			minio.PutObjectOptions{ContentType: "application/json"}).
			Return(minio.UploadInfo{}, nil)

		_, err := Upload(context.Background(), client, "runs", result)
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Propagates upload failures", func(t *testing.T) {
		client := &mocks.Client{}
		client.On("BucketExists", mock.Anything, mock.Anything).Return(true, nil)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, assert.AnError)

		_, err := Upload(context.Background(), client, "runs", result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload run report")
	})
}
