// Package resume loads the plain-text resume corpus and matches skills
// against it.
package resume

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
)

// Corpus caches the resume texts keyed by filename. An unreadable file
// keeps its key with empty text so matching continues over the rest.
type Corpus struct {
	dir string

	mu    sync.RWMutex
	texts map[string]string
}

// NewCorpus reads every .txt file under dir once and returns the cache.
// A missing directory is an empty corpus.
func NewCorpus(dir string) *Corpus {
	c := &Corpus{dir: dir}
	c.Reload()
	return c
}

// Reload rereads the resume directory.
func (c *Corpus) Reload() {
	texts := loadTexts(c.dir)
	c.mu.Lock()
	c.texts = texts
	c.mu.Unlock()
}

// Texts returns the cached resume texts keyed by filename.
func (c *Corpus) Texts() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.texts
}

func loadTexts(dir string) map[string]string {
	texts := make(map[string]string)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Sugar.Warnf("Cannot read resume dir %s: %v", dir, err)
		}
		return texts
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Sugar.Warnf("Cannot read resume %s: %v", entry.Name(), err)
			texts[entry.Name()] = ""
			continue
		}
		texts[entry.Name()] = string(data)
	}
	return texts
}
