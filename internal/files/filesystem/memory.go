package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() any           { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths resolve against the root.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	root    string
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.entries[root] = newDirEntry(root)
	return mfs
}

// Root returns the root directory of the virtual tree.
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddBytesWithTime(filePath, []byte(content), time.Now())
}

// AddBytes adds a file with raw content, for non-UTF-8 fixtures.
func (mfs *MemoryFileSystem) AddBytes(filePath string, content []byte) {
	mfs.AddBytesWithTime(filePath, content, time.Now())
}

// AddBytesWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddBytesWithTime(filePath string, content []byte, modTime time.Time) {
	absPath := mfs.resolve(filePath)
	data := make([]byte, len(content))
	copy(data, content)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.entries[absPath] = &memoryEntry{
		content: data,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(data)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.ensureParents(absPath)
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	absPath := mfs.resolve(dirPath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if _, ok := mfs.entries[absPath]; !ok {
		mfs.entries[absPath] = newDirEntry(absPath)
	}
	mfs.ensureParents(absPath)
}

func newDirEntry(absPath string) *memoryEntry {
	return &memoryEntry{
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// ensureParents must be called with mu held.
func (mfs *MemoryFileSystem) ensureParents(absPath string) {
	for dir := path.Dir(absPath); dir != absPath; absPath, dir = dir, path.Dir(dir) {
		if _, ok := mfs.entries[dir]; ok {
			return
		}
		mfs.entries[dir] = newDirEntry(dir)
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) lookup(p string) (*memoryEntry, bool) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	e, ok := mfs.entries[mfs.resolve(p)]
	return e, ok
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	absPath := mfs.resolve(dirPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	dir, ok := mfs.entries[absPath]
	if !ok {
		return nil, fmt.Errorf("failed to read directory: %s: %w", dirPath, fs.ErrNotExist)
	}
	if !dir.info.isDir {
		return nil, fmt.Errorf("failed to read directory: not a directory: %s", dirPath)
	}

	prefix := absPath + "/"
	if absPath == "/" {
		prefix = "/"
	}

	var result []FileInfo
	for p, e := range mfs.entries {
		if p == absPath || !strings.HasPrefix(p, prefix) {
			continue
		}
		if strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			continue
		}
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	e, ok := mfs.lookup(filePath)
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if e.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	out := make([]byte, len(e.content))
	copy(out, e.content)
	return out, nil
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	data, err := mfs.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	e, ok := mfs.lookup(statPath)
	if !ok {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return e.info, nil
}
