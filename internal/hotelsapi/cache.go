package hotelsapi

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"hotelsLookerBot/pkg/logger/sl"
)

// fileCache файловый кэш сырых ответов travel-API: один json-файл на запрос,
// имя файла детерминированно строится из параметров запроса. Наличие файла -
// безусловное попадание, записи не устаревают. Пустая директория отключает кэш.
type fileCache struct {
	log *slog.Logger
	dir string
}

func newFileCache(log *slog.Logger, dir string) *fileCache {
	return &fileCache{log: log, dir: dir}
}

var reCacheSpaces = regexp.MustCompile(`\s+`)

// cacheKey строит ключ кэша из нормализованных аргументов запроса:
// пробелы схлопываются в дефис, все в нижнем регистре, части через "_"
func cacheKey(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = reCacheSpaces.ReplaceAllString(strings.TrimSpace(p), "-")
		if p != "" {
			cleaned = append(cleaned, strings.ToLower(p))
		}
	}
	return strings.Join(cleaned, "_")
}

func (c *fileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *fileCache) get(key string) ([]byte, bool) {
	if c.dir == "" || key == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.path(key))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// put записывает ответ в кэш. Ошибка записи только логируется:
// запрос при этом остается успешным, просто без кэширования.
func (c *fileCache) put(key string, data []byte) {
	if c.dir == "" || key == "" || len(data) == 0 {
		return
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		c.log.Warn("не удалось создать директорию кэша", sl.Err(err))
		return
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		c.log.Warn("не удалось записать файл кэша", slog.String("key", key), sl.Err(err))
	}
}
