package catalog

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
)

// Watch reloads the catalogs whenever one of the backing files is
// written or recreated. It returns a stop function. The watcher
// observes the parent directories so editors that replace files
// atomically are still caught.
func (c *Catalog) Watch() (func(), error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := map[string]bool{
		filepath.Clean(c.processFile): true,
		filepath.Clean(c.userFile):    true,
	}
	dirs := map[string]bool{}
	for path := range watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.Sugar.Warnf("Cannot watch catalog dir %s: %v", dir, err)
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !watched[filepath.Clean(event.Name)] {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				logger.Sugar.Infof("Catalog file changed, reloading: %s", event.Name)
				c.Reload()
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Sugar.Warnf("Catalog watcher error: %v", err)
			}
		}
	}()

	return func() { fsw.Close() }, nil
}
