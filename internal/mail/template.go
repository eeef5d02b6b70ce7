package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// TemplateRenderer parses the HTML mail templates from a directory and can
// optionally watch it for changes, so template edits land without a restart.
type TemplateRenderer struct {
	dir    string
	logger *zap.Logger

	mu        sync.RWMutex
	templates *template.Template

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewTemplateRenderer parses all *.html templates under dir.
func NewTemplateRenderer(dir string, logger *zap.Logger) (*TemplateRenderer, error) {
	r := &TemplateRenderer{
		dir:    dir,
		logger: logger,
		done:   make(chan struct{}),
	}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Watch starts watching the template directory and reparses on change.
func (r *TemplateRenderer) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return err
	}
	r.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := r.reload(); err != nil {
					r.logger.Warn("mail template reload failed", zap.Error(err))
					continue
				}
				r.logger.Info("mail templates reloaded", zap.String("trigger", event.Name))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("mail template watcher error", zap.Error(err))
			case <-r.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the watcher if one is running.
func (r *TemplateRenderer) Close() error {
	close(r.done)
	if r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}

func (r *TemplateRenderer) reload() error {
	parsed, err := template.ParseGlob(filepath.Join(r.dir, "*.html"))
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.templates = parsed
	r.mu.Unlock()
	return nil
}

// Render executes the named template with data. Template "activation" is
// looked up as "activation.html".
func (r *TemplateRenderer) Render(name string, data map[string]any) (string, error) {
	r.mu.RLock()
	tpl := r.templates.Lookup(name + ".html")
	r.mu.RUnlock()

	if tpl == nil {
		return "", fmt.Errorf("mail template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
