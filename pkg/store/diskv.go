package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const (
	// DocumentKey holds the current dashboard document.
	DocumentKey = "dashboard-v3"
	// LegacyKey holds the document of the previous storage generation. It is
	// read only when DocumentKey is absent.
	LegacyKey = "dashboard-v2"
	// BackupPrefix is shared by every backup snapshot key.
	BackupPrefix = "backup-"
)

// ErrQuotaExceeded is returned by a write that would grow the store past
// its quota.
var ErrQuotaExceeded = errors.New("store: quota exceeded")

// ErrNotRewritten is returned by Load, joined with the cause, when the
// loaded document could not be written back. The document was still
// restored.
var ErrNotRewritten = errors.New("store: loaded document not rewritten")

// KV is the key-value contract the persistence layer needs.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
	Has(key string) bool
	// Keys lists the keys starting with prefix, sorted.
	Keys(prefix string) []string
}

// NewKV opens a diskv store at basePath limited to quota bytes.
func NewKV(basePath string, quota int64) KV {
	return &diskvKV{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		quota:    quota,
	}
}

type diskvKV struct {
	d        *diskv.Diskv
	basePath string
	quota    int64
}

// Read goes to disk; another process may have replaced the file since it
// was cached.
func (k *diskvKV) Read(key string) ([]byte, error) {
	rc, err := k.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (k *diskvKV) Write(key string, val []byte) error {
	if k.quota > 0 {
		used := k.usage() - k.size(key)
		if need := used + int64(len(val)); need > k.quota {
			return fmt.Errorf("%w: %d bytes needed, %d allowed", ErrQuotaExceeded, need, k.quota)
		}
	}
	return k.d.Write(key, val)
}

func (k *diskvKV) Erase(key string) error {
	return k.d.Erase(key)
}

func (k *diskvKV) Has(key string) bool {
	return k.d.Has(key)
}

func (k *diskvKV) Keys(prefix string) []string {
	var keys []string
	for key := range k.d.Keys(nil) {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (k *diskvKV) usage() int64 {
	var total int64
	for _, key := range k.Keys("") {
		total += k.size(key)
	}
	return total
}

func (k *diskvKV) size(key string) int64 {
	info, err := os.Stat(k.pathFor(key))
	if err != nil {
		return 0
	}
	return info.Size()
}

func (k *diskvKV) pathFor(key string) string {
	pk := keyToPathTransform(key)
	return filepath.Join(append(append([]string{k.basePath}, pk.Path...), pk.FileName)...)
}

// notFound reports whether err means the key is absent.
func notFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// keyToPathTransform maps `dir-file` keys onto dir/file.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
