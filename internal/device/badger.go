package device

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/models"
	"go.uber.org/zap"
)

// BadgerStorage persists device values in an embedded BadgerDB directory
type BadgerStorage struct {
	db *badger.DB
}

// badgerLogger adapts SafeLogger to BadgerDB's Logger interface
type badgerLogger struct {
	logger *logging.SafeLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenBadger opens (creating if needed) the storage at path. An empty path
// opens an in-memory database.
func OpenBadger(path string, logger *logging.SafeLogger) (*BadgerStorage, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o700); err != nil {
			return nil, fmt.Errorf("creating device store directory: %w", err)
		}
		opts = badger.DefaultOptions(path).WithSyncWrites(true)
	}
	opts = opts.
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening device store: %w", err)
	}

	logger.Debug("device store opened", zap.String("path", path))
	return &BadgerStorage{db: db}, nil
}

func (b *BadgerStorage) Get(_ context.Context, key string) (string, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", models.ErrDeviceIDNotSet
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	return string(value), nil
}

func (b *BadgerStorage) Set(_ context.Context, key, value string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	return nil
}

// Close flushes and closes the database
func (b *BadgerStorage) Close() error {
	return b.db.Close()
}
