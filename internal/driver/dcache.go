package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/convert"
	"github.com/lukeapage/flow-to-ts/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a sha256 cache key.
type Digest [32]byte

// DiskCache хранит результаты конвертации на диске по ключу
// sha256(исходник + опции). Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached conversion.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	// Converter version; output of another build is never reused
	Version string

	Code     string
	Skip     bool
	Eligible bool
	HasJSX   bool
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey hashes the source together with every option that changes the
// output. The style file is hashed by content so edits to it invalidate.
func CacheKey(src []byte, opts *convert.Options) (Digest, error) {
	h := sha256.New()
	_, _ = h.Write(src)
	_, _ = h.Write([]byte{0})
	if opts != nil {
		flag := func(b bool) {
			_, _ = h.Write([]byte(strconv.FormatBool(b) + ";"))
		}
		flag(opts.SkipNonFlow)
		flag(opts.InlineUtilityTypes)
		if req := opts.Format; req != nil {
			style, err := config.ResolveStyle(req)
			if err != nil {
				return Digest{}, err
			}
			fmt.Fprintf(h, "%+v", style)
		}
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "ts", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a result to the disk cache.
func (c *DiskCache) Put(key Digest, res convert.Result) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		_ = os.Remove(tmp)
	}()

	payload := DiskPayload{
		Schema:   diskCacheSchemaVersion,
		Version:  version.Version,
		Code:     res.Code,
		Skip:     res.Skip,
		Eligible: res.Eligible,
		HasJSX:   res.HasJSX,
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads a cached result. A payload of another schema or converter
// version is a miss.
func (c *DiskCache) Get(key Digest) (convert.Result, bool, error) {
	if c == nil {
		return convert.Result{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return convert.Result{}, false, nil
		}
		return convert.Result{}, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return convert.Result{}, false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Version != version.Version {
		return convert.Result{}, false, nil
	}
	return convert.Result{
		Code:     payload.Code,
		Skip:     payload.Skip,
		Eligible: payload.Eligible,
		HasJSX:   payload.HasJSX,
	}, true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
