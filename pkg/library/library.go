package library

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/episodez/pkg/match"
)

// DefaultExtensions are the media extensions considered useful when none are configured
var DefaultExtensions = []string{".mkv", ".mp4", ".avi", ".m4v", ".mpg", ".mpeg", ".wmv", ".ts", ".m2ts", ".iso"}

// FileEntry is a file or directory found on disk
type FileEntry struct {
	Name  string `json:"name"`
	Ext   string `json:"ext,omitempty"`
	Dir   string `json:"dir"`
	Size  int64  `json:"size"`
	IsDir bool   `json:"isDir"`
}

// NewFileEntry builds an entry from a full path
func NewFileEntry(path string, size int64, isDir bool) FileEntry {
	name := filepath.Base(path)

	ext := ""
	if !isDir {
		ext = filepath.Ext(name)
	}

	return FileEntry{
		Name:  name,
		Ext:   ext,
		Dir:   filepath.Dir(path),
		Size:  size,
		IsDir: isDir,
	}
}

// Path is the full path of the entry
func (f FileEntry) Path() string {
	return filepath.Join(f.Dir, f.Name)
}

// Stem is the name without its extension
func (f FileEntry) Stem() string {
	return strings.TrimSuffix(f.Name, f.Ext)
}

// Entry converts to the form the matcher identifies
func (f FileEntry) Entry() *match.Entry {
	return &match.Entry{
		Name:  f.Name,
		Ext:   f.Ext,
		Dir:   f.Dir,
		IsDir: f.IsDir,
	}
}

// HumanSize renders the size for display, e.g. 1.2 GiB
func (f FileEntry) HumanSize() string {
	if f.Size < 0 {
		return "unknown"
	}

	return humanize.IBytes(uint64(f.Size))
}

func (f FileEntry) String() string {
	return fmt.Sprintf("%s (%s)", f.Path(), f.HumanSize())
}

// normalizeExtensions lower cases extensions and ensures a leading period
func normalizeExtensions(extensions []string) []string {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(normalized, ext) {
			normalized = append(normalized, ext)
		}
	}

	return normalized
}

// formatSeasonDirectory formats season number as "Season XX"
func formatSeasonDirectory(season int) string {
	return fmt.Sprintf("Season %02d", season)
}
