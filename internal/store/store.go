// read-only access to the static data the test service
// is built from: the item catalog and the norm table.
package store

import (
	"fmt"

	"github.com/pkg/errors"
)

// Repository is the source of the test items and
// scoring norms. Implementations must be safe to call
// from concurrent requests; nothing is ever written back.
type Repository interface {
	LoadItems() ([]Item, error)
	LoadNorms() ([]NormRow, error)
}

// LoadError reports a data source that is missing or
// does not hold valid content.
type LoadError struct {
	// the file (or other source) that failed
	Source string
	// underlying cause
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Cause() error { return e.Err }

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether any error in the chain is a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// FileRepository reads the catalog (json) and the norm table (csv)
// from local files on every call, there is no caching.
type FileRepository struct {
	itemsPath string
	normsPath string
}

func NewFileRepository(itemsPath, normsPath string) *FileRepository {
	return &FileRepository{itemsPath: itemsPath, normsPath: normsPath}
}

func (r *FileRepository) ItemsPath() string { return r.itemsPath }

func (r *FileRepository) NormsPath() string { return r.normsPath }
