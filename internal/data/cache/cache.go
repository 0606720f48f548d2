package cache

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/util"
)

type CacheMissReason int

const (
	MissReasonNone CacheMissReason = iota
	MissReasonError
	MissReasonSize
	MissReasonModTime
	MissReasonFingerprint
	MissReasonNotFound
)

func (r CacheMissReason) String() string {
	switch r {
	case MissReasonNone:
		return "none"
	case MissReasonError:
		return "error"
	case MissReasonSize:
		return "size"
	case MissReasonModTime:
		return "modtime"
	case MissReasonFingerprint:
		return "fingerprint"
	case MissReasonNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// CachedHistory is a parsed history file together with the file state it was
// parsed from.
type CachedHistory struct {
	FilePath           string         `json:"file_path"`
	FileSize           int64          `json:"file_size"`
	LastModified       int64          `json:"last_modified"`
	ContentFingerprint string         `json:"content_fingerprint"`
	History            *model.History `json:"history"`
}

type CacheResult struct {
	History    *model.History
	Found      bool
	MissReason CacheMissReason
}

type Cache interface {
	Get(filePath string) CacheResult
	Set(filePath string, history *model.History) error
	Clear() error
}

// FileCache stores parsed histories as JSON files under baseDir, with an
// in-memory layer in front.
type FileCache struct {
	baseDir     string
	mu          sync.RWMutex
	memoryCache map[string]*CachedHistory
}

func NewFileCache(baseDir string) (*FileCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &FileCache{
		baseDir:     baseDir,
		memoryCache: make(map[string]*CachedHistory),
	}, nil
}

// BaseDir returns the directory holding the cache files
func (c *FileCache) BaseDir() string {
	return c.baseDir
}

// cacheKey derives the cache file name of a history file path,
// e.g. "/data/history.jsonl" -> "history-1a2b3c4d"
func cacheKey(filePath string) string {
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return fmt.Sprintf("%s-%08x", name, crc32.ChecksumIEEE([]byte(filePath)))
}

func (c *FileCache) Get(filePath string) CacheResult {
	key := cacheKey(filePath)

	c.mu.RLock()
	memData, exists := c.memoryCache[key]
	c.mu.RUnlock()

	if exists {
		if reason := c.validate(memData); reason == MissReasonNone {
			return CacheResult{History: memData.History, Found: true}
		}
		c.mu.Lock()
		delete(c.memoryCache, key)
		c.mu.Unlock()
	}

	return c.getFromFile(key)
}

func (c *FileCache) getFromFile(key string) CacheResult {
	raw, err := os.ReadFile(filepath.Join(c.baseDir, key+".json"))
	if err != nil {
		return CacheResult{MissReason: MissReasonNotFound}
	}

	var data CachedHistory
	if err := sonic.Unmarshal(raw, &data); err != nil || data.History == nil {
		return CacheResult{MissReason: MissReasonError}
	}

	if reason := c.validate(&data); reason != MissReasonNone {
		return CacheResult{MissReason: reason}
	}

	c.mu.Lock()
	c.memoryCache[key] = &data
	c.mu.Unlock()

	return CacheResult{History: data.History, Found: true}
}

// validate compares the cached file state with the file on disk
func (c *FileCache) validate(data *CachedHistory) CacheMissReason {
	info, err := os.Stat(data.FilePath)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Cache validation failed for %s: %v", data.FilePath, err))
		return MissReasonError
	}

	if info.Size() != data.FileSize {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: size changed (cached: %d, current: %d)",
			data.FilePath, data.FileSize, info.Size()))
		return MissReasonSize
	}
	if info.ModTime().UnixNano() != data.LastModified {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: modtime changed", data.FilePath))
		return MissReasonModTime
	}

	fingerprint, err := util.CalculateFileFingerprint(data.FilePath)
	if err != nil || fingerprint != data.ContentFingerprint {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: fingerprint mismatch (cached: %s, current: %s)",
			data.FilePath, data.ContentFingerprint, fingerprint))
		return MissReasonFingerprint
	}
	return MissReasonNone
}

func (c *FileCache) Set(filePath string, history *model.History) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return err
	}
	fingerprint, err := util.CalculateFileFingerprint(filePath)
	if err != nil {
		return err
	}

	data := &CachedHistory{
		FilePath:           filePath,
		FileSize:           info.Size(),
		LastModified:       info.ModTime().UnixNano(),
		ContentFingerprint: fingerprint,
		History:            history,
	}

	raw, err := sonic.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry for %s: %w", filePath, err)
	}

	key := cacheKey(filePath)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.WriteFile(filepath.Join(c.baseDir, key+".json"), raw, 0644); err != nil {
		return err
	}
	c.memoryCache[key] = data
	return nil
}

// Clear drops the memory layer and removes every .json file in baseDir
func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memoryCache = make(map[string]*CachedHistory)

	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			if err := os.Remove(filepath.Join(c.baseDir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats returns the number of entries in memory and on disk
func (c *FileCache) Stats() (memoryCount, fileCount int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	memoryCount = len(c.memoryCache)
	entries, _ := os.ReadDir(c.baseDir)
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			fileCount++
		}
	}
	return memoryCount, fileCount
}
