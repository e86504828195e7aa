package publicfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Sort priorities, lower sorts first.
const (
	priorityImage  = 0
	priorityFile   = 1
	priorityFolder = 2
)

type Entry struct {
	Name         string
	Kind         Kind
	Extension    string
	SizeBytes    int64
	ModifiedAt   time.Time
	CreatedAt    time.Time
	IsImage      bool
	SortPriority int
}

func (e Entry) IsDir() bool {
	return e.Kind == KindFolder
}

// scanResult holds the direct children of one directory, split by kind.
type scanResult struct {
	folders []Entry
	files   []Entry
}

func (s scanResult) total() int {
	return len(s.folders) + len(s.files)
}

// ensurePublicDir creates the public directory when it is missing and
// reports whether this call created it.
func (p *PublicFilesService) ensurePublicDir() (bool, error) {
	if _, err := os.Stat(p.publicDir); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat public directory: %w", err)
	}

	if err := os.MkdirAll(p.publicDir, 0755); err != nil {
		return false, fmt.Errorf("create public directory: %w", err)
	}
	return true, nil
}

// scanDirectory enumerates the direct children of dir. Entries whose name
// does not match search are dropped before they are classified.
func scanDirectory(dir, search string) (scanResult, error) {
	var result scanResult

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return result, fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if name == "." || name == ".." {
			continue
		}
		if !matchesSearch(name, search) {
			continue
		}

		fullPath := filepath.Join(dir, name)
		info, err := os.Stat(fullPath)
		if err != nil {
			log.Debug().Err(err).Str("path", fullPath).Msg("Skipping entry that cannot be stat'ed")
			continue
		}

		if info.IsDir() {
			result.folders = append(result.folders, Entry{
				Name:         name,
				Kind:         KindFolder,
				ModifiedAt:   info.ModTime(),
				CreatedAt:    changeTime(fullPath, info),
				SortPriority: priorityFolder,
			})
			continue
		}

		ext := extensionOf(name)
		if !isAllowedExtension(ext) {
			continue
		}

		image := isImage(ext)
		priority := priorityFile
		if image {
			priority = priorityImage
		}

		result.files = append(result.files, Entry{
			Name:         name,
			Kind:         KindFile,
			Extension:    ext,
			SizeBytes:    info.Size(),
			ModifiedAt:   info.ModTime(),
			CreatedAt:    changeTime(fullPath, info),
			IsImage:      image,
			SortPriority: priority,
		})
	}

	return result, nil
}
