package integrity

import (
	"context"
	"errors"
	"testing"

	"asset-inventory/core/storage"
	"asset-inventory/core/storage/mocks"
	"asset-inventory/feature/integrity/checks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testStorage = storage.Config{Bucket: "test-bucket", Region: "us-east-1"}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestService_Storage(t *testing.T) {
	t.Run("CheckOnly", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects())

		svc := NewService(mockClient, testStorage, zap.NewNop(), nil)
		result, err := svc.Storage(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "checked", result.Status)
		assert.Equal(t, checks.RequiredFolders, result.Missing)
		mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FixFolders", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects())
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		svc := NewService(mockClient, testStorage, zap.NewNop(), nil)
		result, err := svc.Storage(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, "fixed", result.Status)
		assert.Equal(t, checks.RequiredFolders, result.Fixed)
		mockClient.AssertNumberOfCalls(t, "PutObject", len(checks.RequiredFolders))
	})

	t.Run("FixMissingBucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "test-bucket", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		svc := NewService(mockClient, testStorage, zap.NewNop(), nil)
		result, err := svc.Storage(context.Background(), true)
		require.NoError(t, err)
		assert.True(t, result.BucketCreated)
		assert.Equal(t, "fixed", result.Status)
	})

	t.Run("MissingBucketWithoutFix", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

		svc := NewService(mockClient, testStorage, zap.NewNop(), nil)
		_, err := svc.Storage(context.Background(), false)
		assert.ErrorIs(t, err, checks.ErrBucketMissing)
	})

	t.Run("FixFails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects())
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, errors.New("quota"))

		svc := NewService(mockClient, testStorage, zap.NewNop(), nil)
		result, err := svc.Storage(context.Background(), true)
		assert.Error(t, err)
		require.NotNil(t, result)
		assert.Equal(t, checks.RequiredFolders, result.Missing)
	})
}

func TestService_CheckSchema(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `priority_tiers`").WillReturnError(errors.New("access denied"))
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `assets`").WillReturnRows(sqlmock.NewRows([]string{"Field", "Type"}))
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `maintenance_tasks`").WillReturnRows(sqlmock.NewRows([]string{"Field", "Type"}))
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `criticality_records`").WillReturnRows(sqlmock.NewRows([]string{"Field", "Type"}))

	svc := NewService(new(mocks.Client), testStorage, zap.NewNop(), db)
	report, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "priority_tiers")
	assert.True(t, report.Tables["assets"].Missing)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
