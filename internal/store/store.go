// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skanenje/prompt-enhancer/internal/common/logger"
)

// Store is the framework lookup used by the pipeline. The pipeline only
// reads; Save exists for the upload path and must be visible to the next
// lookup.
type Store interface {
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, id string) (*Framework, error)
	Save(ctx context.Context, def []byte) (*Framework, error)
}

// ErrNotFound is returned by Get for unknown framework identifiers.
var ErrNotFound = fmt.Errorf("FRAMEWORK_NOT_FOUND")

// FileStore keeps one JSON definition per file under Dir. Reads hit the
// filesystem every time so uploads are observed without coordination;
// wrap with NewCached for a redis read cache.
type FileStore struct {
	dir    string
	logger logger.Logger
}

func NewFileStore(dir string, log logger.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: log.WithFields(map[string]interface{}{"component": "framework-store"}),
	}
}

func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read framework dir: %w", err)
	}

	items := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fw, err := s.readFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			// A broken definition must not take down listing.
			s.logger.Warn("skipping unreadable framework file", map[string]interface{}{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		if fw.ID == "" {
			fw.ID = strings.TrimSuffix(entry.Name(), ".json")
		}
		items = append(items, Summary{ID: fw.ID, Name: fw.Name, Description: fw.Description})
	}

	// os.ReadDir is sorted by filename; keep that as the stable
	// enumeration order the selector relies on for tie-breaks.
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Framework, error) {
	path := filepath.Join(s.dir, id+".json")
	if _, err := os.Stat(path); err != nil {
		// Identifiers are case-sensitive on write but lookups fall
		// back to a case-insensitive scan.
		found := ""
		entries, dirErr := os.ReadDir(s.dir)
		if dirErr != nil {
			return nil, fmt.Errorf("read framework dir: %w", dirErr)
		}
		for _, entry := range entries {
			if strings.EqualFold(entry.Name(), id+".json") {
				found = entry.Name()
				break
			}
		}
		if found == "" {
			return nil, ErrNotFound
		}
		path = filepath.Join(s.dir, found)
	}

	fw, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	if fw.ID == "" {
		fw.ID = id
	}
	return fw, nil
}

// Save validates and writes a definition via a temp file and atomic rename
// so concurrent readers never observe partial JSON.
func (s *FileStore) Save(ctx context.Context, def []byte) (*Framework, error) {
	if err := ValidateDefinition(def); err != nil {
		return nil, err
	}

	var fw Framework
	if err := json.Unmarshal(def, &fw); err != nil {
		return nil, fmt.Errorf("decode framework definition: %w", err)
	}
	if fw.Fields == nil {
		fw.Fields = map[string]string{}
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*.json")
	if err != nil {
		return nil, fmt.Errorf("create temp framework file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(def); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("write framework file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("close framework file: %w", err)
	}

	final := filepath.Join(s.dir, fw.ID+".json")
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("replace framework file: %w", err)
	}

	s.logger.Info("framework saved", map[string]interface{}{
		"frameworkId": fw.ID,
		"fields":      len(fw.Fields),
	})
	return &fw, nil
}

func (s *FileStore) readFile(path string) (*Framework, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read framework file: %w", err)
	}
	var fw Framework
	if err := json.Unmarshal(data, &fw); err != nil {
		return nil, fmt.Errorf("decode framework file %s: %w", filepath.Base(path), err)
	}
	if fw.Fields == nil {
		fw.Fields = map[string]string{}
	}
	return &fw, nil
}
