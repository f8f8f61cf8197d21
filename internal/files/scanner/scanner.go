package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/vvka-141/pgload/internal/files/filesystem"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// Scanner discovers input files in a directory.
// Scanner is safe for concurrent use as long as the filesystem provider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

var _ pgload.FileScanner = (*Scanner)(nil)

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// Scan lists the matching files in sourcePath, sorted by name.
func (s *Scanner) Scan(sourcePath, extension string) (pgload.ScanResult, error) {
	info, err := s.fsProvider.Stat(sourcePath)
	if err != nil {
		return pgload.ScanResult{}, fmt.Errorf("%w: source directory %s: %v", pgload.ErrInvalidConfig, sourcePath, err)
	}
	if !info.IsDir() {
		return pgload.ScanResult{}, fmt.Errorf("%w: source path is not a directory: %s", pgload.ErrInvalidConfig, sourcePath)
	}

	entries, err := s.fsProvider.ReadDir(sourcePath)
	if err != nil {
		return pgload.ScanResult{}, fmt.Errorf("failed to list %s: %w", sourcePath, err)
	}

	var files []pgload.SourceFile
	for _, entry := range entries {
		if !pgload.HasExtension(entry.Name(), extension) {
			continue
		}
		path := filepath.Join(sourcePath, entry.Name())
		info := s.resolve(path, entry)
		if !info.Mode().IsRegular() && info.Mode()&fs.ModeSymlink == 0 {
			continue
		}
		files = append(files, pgload.SourceFile{
			Path:       path,
			Name:       entry.Name(),
			TableName:  pgload.TableNameForFile(entry.Name()),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return pgload.ScanResult{
		Files:      files,
		Collisions: FindCollisions(files),
	}, nil
}

// resolve follows a symlinked entry to its target. A dangling link is kept
// as is so that reading it fails loudly instead of the file vanishing.
func (s *Scanner) resolve(path string, entry filesystem.FileInfo) filesystem.FileInfo {
	if entry.Mode()&fs.ModeSymlink == 0 {
		return entry
	}
	target, err := s.fsProvider.Stat(path)
	if err != nil {
		return entry
	}
	return target
}

// FindCollisions groups files that map to the same table name. Files within
// a collision keep their processing order; collisions are ordered by table.
func FindCollisions(files []pgload.SourceFile) []pgload.Collision {
	byTable := make(map[string][]string)
	for _, f := range files {
		byTable[f.TableName] = append(byTable[f.TableName], f.Name)
	}

	var collisions []pgload.Collision
	for table, names := range byTable {
		if len(names) > 1 {
			collisions = append(collisions, pgload.Collision{Table: table, Files: names})
		}
	}
	sort.Slice(collisions, func(i, j int) bool { return collisions[i].Table < collisions[j].Table })
	return collisions
}
