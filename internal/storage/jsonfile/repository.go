package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"drishti-notifier/internal/observability"
	"drishti-notifier/internal/storage"
)

// Repository хранит историю в одном JSON файле, который целиком перезаписывается при сохранении.
// Каждый список при загрузке и сохранении обрезается до maxSize последних записей.
type Repository struct {
	path    string
	maxSize int
	logger  *observability.Logger
}

func NewRepository(path string, maxSize int, logger *observability.Logger) *Repository {
	return &Repository{
		path:    path,
		maxSize: maxSize,
		logger:  logger,
	}
}

const defaultFileMode fs.FileMode = 0o644

var _ storage.Repository = (*Repository)(nil)

// Load читает историю. Отсутствующий или битый файл даёт пустую историю.
func (r *Repository) Load() *storage.History {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Info("History file not found, starting empty", "path", r.path)
		} else {
			r.logger.Warn("Could not read history, starting empty",
				"path", r.path,
				"error", err.Error(),
			)
		}
		return storage.NewHistory()
	}

	var history storage.History
	if err := json.Unmarshal(data, &history); err != nil {
		r.logger.Warn("Could not parse history, starting empty",
			"path", r.path,
			"error", err.Error(),
		)
		return storage.NewHistory()
	}
	history.Normalize(r.maxSize)

	r.logger.Info("History loaded",
		"path", r.path,
		"news", history.Len(storage.ListNews),
		"editorials", history.Len(storage.ListEditorials),
		"news_articles", history.Len(storage.ListNewsArticles),
	)

	return &history
}

// Save атомарно перезаписывает файл: пишем во временный файл рядом и переименовываем.
// Права существующего файла сохраняются, новый файл создаётся с 0644.
func (r *Repository) Save(history *storage.History) error {
	history.Normalize(r.maxSize)

	data, err := Encode(history)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// после успешного rename файла уже нет
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("Failed to remove temp history file", "path", tmpPath, "error", err.Error())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	if err := os.Chmod(tmpPath, r.fileMode()); err != nil {
		return fmt.Errorf("failed to chmod history: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	r.logger.Info("History saved",
		"path", r.path,
		"news", history.Len(storage.ListNews),
		"editorials", history.Len(storage.ListEditorials),
		"news_articles", history.Len(storage.ListNewsArticles),
	)

	return nil
}

func (r *Repository) fileMode() fs.FileMode {
	info, err := os.Stat(r.path)
	if err != nil {
		return defaultFileMode
	}
	return info.Mode().Perm()
}

// Encode renders the history the way it is stored on disk: two-space indent,
// no HTML escaping, trailing newline.
func Encode(history *storage.History) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(history); err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return buf.Bytes(), nil
}
