package strip

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/duosnap/booth/pkg/config"
	"github.com/duosnap/booth/pkg/logger"
	osx "github.com/duosnap/booth/pkg/os"
)

var (
	ErrNotFound = errors.New("artifact not found")
	ErrBadName  = errors.New("bad artifact name")
)

// Store keeps final strips until they are downloaded once.
type Store interface {
	Put(name string, data []byte) error
	// Take returns the artifact and removes it: strips are single-use.
	Take(name string) ([]byte, error)
}

// NewStore picks the storage backend: an S3-compatible bucket when an
// endpoint is configured, the local directory otherwise.
func NewStore(conf config.Storage, log *logger.Logger) (Store, error) {
	if conf.S3.Endpoint != "" {
		return newS3Store(conf.S3, log)
	}
	return newDirStore(conf.Dir)
}

type dirStore struct {
	dir string
}

func newDirStore(dir string) (*dirStore, error) {
	if err := osx.CheckCreateDir(dir); err != nil {
		return nil, err
	}
	return &dirStore{dir: dir}, nil
}

func (s *dirStore) Put(name string, data []byte) error {
	if !validName(name) {
		return ErrBadName
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0644)
}

func (s *dirStore) Take(name string) ([]byte, error) {
	if !validName(name) {
		return nil, ErrBadName
	}
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, os.Remove(path)
}

// validName rejects anything that could escape the storage root.
func validName(name string) bool {
	return name != "" && name == filepath.Base(name) && name != "." && name != ".."
}
