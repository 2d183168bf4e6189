// Package database persists installed package records in a bbolt file.
package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/glorpus-work/senget/pkg/fsutil"
	"github.com/glorpus-work/senget/pkg/model"
)

const bucketPackages = "packages"

// ErrLocked is returned when another process holds the database.
var ErrLocked = errors.New("the package database is in use by another senget process")

// Store is the installed package database. Records are keyed by the
// lowercase package name.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), fsutil.DirModeDefault); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bbolt.Open(path, fsutil.FileModeSecure, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to open package database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPackages))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func packages(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	bucket := tx.Bucket([]byte(bucketPackages))
	if bucket == nil {
		return nil, berrors.ErrBucketNotFound
	}
	return bucket, nil
}

func key(pkg model.Package) []byte {
	return []byte(pkg.LowerName)
}

// Find returns the package whose name or full name equals name, ignoring
// case, or nil when there is none.
func (s *Store) Find(name string) (*model.Package, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	var found *model.Package

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := packages(tx)
		if err != nil {
			return err
		}
		if data := bucket.Get([]byte(lower)); data != nil {
			found = &model.Package{}
			return json.Unmarshal(data, found)
		}
		return bucket.ForEach(func(_, data []byte) error {
			if found != nil {
				return nil
			}
			var pkg model.Package
			if err := json.Unmarshal(data, &pkg); err != nil {
				return fmt.Errorf("corrupt package record: %w", err)
			}
			if pkg.LowerFullName == lower {
				found = &pkg
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Add stores pkg.
func (s *Store) Add(pkg model.Package) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return put(tx, pkg)
	})
}

// Remove deletes pkg. Removing a missing record is not an error.
func (s *Store) Remove(pkg model.Package) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := packages(tx)
		if err != nil {
			return err
		}
		return bucket.Delete(key(pkg))
	})
}

// Replace swaps old for updated in a single transaction.
func (s *Store) Replace(old, updated model.Package) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := packages(tx)
		if err != nil {
			return err
		}
		if err := bucket.Delete(key(old)); err != nil {
			return err
		}
		return put(tx, updated)
	})
}

// ListAll returns every record sorted by name.
func (s *Store) ListAll() ([]model.Package, error) {
	var all []model.Package
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := packages(tx)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(_, data []byte) error {
			var pkg model.Package
			if err := json.Unmarshal(data, &pkg); err != nil {
				return fmt.Errorf("corrupt package record: %w", err)
			}
			all = append(all, pkg)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LowerName < all[j].LowerName })
	return all, nil
}

func put(tx *bbolt.Tx, pkg model.Package) error {
	bucket, err := packages(tx)
	if err != nil {
		return err
	}
	if pkg.LowerName == "" {
		return fmt.Errorf("package record has no name")
	}
	data, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("failed to marshal package: %w", err)
	}
	return bucket.Put(key(pkg), data)
}
