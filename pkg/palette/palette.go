package palette

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultColor is returned for categories the palette does not know.
const DefaultColor = "bg-gray-500"

var builtin = []Entry{
	{Category: "Technology", Color: "bg-blue-500"},
	{Category: "Music", Color: "bg-purple-500"},
	{Category: "Sports", Color: "bg-green-500"},
	{Category: "Business", Color: "bg-yellow-500"},
	{Category: "Education", Color: "bg-indigo-500"},
	{Category: "Health", Color: "bg-red-500"},
	{Category: "Art", Color: "bg-pink-500"},
	{Category: "Food", Color: "bg-orange-500"},
}

// Entry is one category to color tag mapping.
type Entry struct {
	Category string `json:"category" yaml:"category"`
	Color    string `json:"color" yaml:"color"`
}

type fileFormat struct {
	Default    string  `yaml:"default"`
	Categories []Entry `yaml:"categories"`
}

// Palette maps event categories to display color tags. Safe for concurrent use.
// Entries are keyed by the normalised category and keep their display casing.
type Palette struct {
	mu       sync.RWMutex
	colors   map[string]Entry
	fallback string
	path     string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
}

// New returns a palette holding the built-in mapping.
func New(logger *zap.Logger) *Palette {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Palette{colors: builtinColors(0), fallback: DefaultColor, logger: logger}
}

// Load reads overrides from a YAML file on top of the built-in mapping.
func Load(path string, logger *zap.Logger) (*Palette, error) {
	p := New(logger)
	p.path = path
	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Color returns the tag for a category, case-insensitively, or the default tag.
func (p *Palette) Color(category string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if entry, ok := p.colors[normalize(category)]; ok {
		return entry.Color
	}
	return p.fallback
}

// Entries lists the known mappings sorted by category.
func (p *Palette) Entries() []Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entries := make([]Entry, 0, len(p.colors))
	for _, entry := range p.colors {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return normalize(entries[i].Category) < normalize(entries[j].Category)
	})
	return entries
}

// Watch hot-reloads the YAML file on change until the returned stop is called.
// The parent directory is watched so editors that save by rename keep reloading.
// A palette built without a file returns a no-op stop.
func (p *Palette) Watch() (stop func(), err error) {
	if p.path == "" {
		return func() {}, nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("palette watcher: %w", err)
	}
	dir := filepath.Dir(p.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("palette watcher add %s: %w", dir, err)
	}
	target := filepath.Clean(p.path)
	p.watcher = w

	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				if err := p.reload(); err != nil {
					p.logger.Warn("palette reload failed, keeping previous mapping", zap.String("path", p.path), zap.Error(err))
					continue
				}
				p.logger.Info("palette reloaded", zap.String("path", p.path))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				p.logger.Warn("palette watcher error", zap.Error(err))
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			w.Close()
		})
	}, nil
}

func (p *Palette) reload() error {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read palette %s: %w", p.path, err)
	}
	var parsed fileFormat
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse palette %s: %w", p.path, err)
	}

	colors := builtinColors(len(parsed.Categories))
	for _, entry := range parsed.Categories {
		key := normalize(entry.Category)
		if key == "" || entry.Color == "" {
			continue
		}
		colors[key] = Entry{Category: strings.TrimSpace(entry.Category), Color: entry.Color}
	}
	fallback := DefaultColor
	if parsed.Default != "" {
		fallback = parsed.Default
	}

	p.mu.Lock()
	p.colors = colors
	p.fallback = fallback
	p.mu.Unlock()
	return nil
}

func builtinColors(extra int) map[string]Entry {
	colors := make(map[string]Entry, len(builtin)+extra)
	for _, entry := range builtin {
		colors[normalize(entry.Category)] = entry
	}
	return colors
}

func normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
