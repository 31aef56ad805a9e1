package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB opens a GORM connection over a sqlmock database so services can
// be exercised without Postgres.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// fakeBlobStore records saves and deletes in memory and can be armed to
// fail, standing in for the blob collaborator.
type fakeBlobStore struct {
	saved   map[string][]byte
	deleted []string
	failOn  string // "save" or "delete"
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{saved: make(map[string][]byte)}
}

func (f *fakeBlobStore) Save(ctx context.Context, key string, data []byte) error {
	if f.failOn == "save" {
		return fmt.Errorf("disk full")
	}
	f.saved[key] = data
	return nil
}

func (f *fakeBlobStore) Open(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.saved[key]
	if !ok {
		return nil, fmt.Errorf("image not found")
	}
	return data, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	if f.failOn == "delete" {
		return fmt.Errorf("delete failed")
	}
	f.deleted = append(f.deleted, key)
	delete(f.saved, key)
	return nil
}
