package resume

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
)

// Watch reloads the corpus whenever a .txt file in the resume directory
// changes. It returns a stop function.
func (c *Corpus) Watch() (func(), error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(c.dir); err != nil {
		logger.Sugar.Warnf("Cannot watch resume dir %s: %v", c.dir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(strings.ToLower(event.Name), ".txt") {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logger.Sugar.Infof("Resume corpus changed, reloading: %s", filepath.Base(event.Name))
				c.Reload()
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Sugar.Warnf("Resume watcher error: %v", err)
			}
		}
	}()

	return func() { fsw.Close() }, nil
}
