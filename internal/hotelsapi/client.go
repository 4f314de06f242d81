// Package hotelsapi реализует фасад поиска: три запроса к travel-API
// (регионы, предложения отелей, сводка по отелю) с файловым кэшем ответов.
package hotelsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"hotelsLookerBot/pkg/logger/sl"
)

type Config struct {
	APIKey   string        `yaml:"api_key" env:"HOTELS_API_KEY"`
	Host     string        `yaml:"host" env-default:"hotels4.p.rapidapi.com"`
	CacheDir string        `yaml:"cache_dir" env-default:"json_data"`
	Timeout  time.Duration `yaml:"timeout" env-default:"6s"`
}

// Client клиент travel-API. Каждый запрос делает до maxAttempts попыток:
// таймауты повторяются со случайной паузой, остальные ошибки протокола
// прерывают запрос сразу.
type Client struct {
	log    *slog.Logger
	cfg    Config
	client *http.Client
	cache  *fileCache

	mu             sync.Mutex
	quotaLimit     string
	quotaRemaining string
}

const maxAttempts = 3

var ErrRequestFailed = errors.New("request to hotels api failed")

func New(log *slog.Logger, cfg Config) *Client {
	return &Client{
		log:    log,
		cfg:    cfg,
		client: &http.Client{},
		cache:  newFileCache(log, cfg.CacheDir),
	}
}

// attemptOutcome классифицирует результат одной попытки запроса
type attemptOutcome int

const (
	outcomeOK attemptOutcome = iota
	outcomeRetryable
	outcomeFatal
)

// cachedRequest возвращает ответ из кэша по ключу, а при промахе делает
// запрос и записывает удачный ответ в кэш. Ошибка записи кэша не считается
// ошибкой запроса: просто этот ответ не будет закэширован.
func (c *Client) cachedRequest(ctx context.Context, key, method, tailURL string, query url.Values, body any) ([]byte, error) {
	if data, ok := c.cache.get(key); ok {
		return data, nil
	}

	data, err := c.doRequest(ctx, method, tailURL, query, body)
	if err != nil {
		return nil, err
	}

	c.cache.put(key, data)
	return data, nil
}

// doRequest выполняет запрос к travel-API с повторами по таймаутам
func (c *Client) doRequest(ctx context.Context, method, tailURL string, query url.Values, body any) ([]byte, error) {
	const op = "hotelsapi.doRequest"

	log := c.log.With(slog.String("op", op), slog.String("url", tailURL))

	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		data, outcome, err := c.attempt(ctx, method, tailURL, query, encoded)
		switch outcome {
		case outcomeOK:
			return data, nil
		case outcomeFatal:
			log.Warn("запрос прерван", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		case outcomeRetryable:
			lastErr = err
			log.Warn("таймаут запроса, повтор", slog.Int("attempt", attempt), sl.Err(err))
			if attempt < maxAttempts {
				select {
				case <-time.After(time.Duration(1+rand.Intn(3)) * time.Second):
				case <-ctx.Done():
					return nil, fmt.Errorf("%s: %w", op, ctx.Err())
				}
			}
		}
	}

	return nil, fmt.Errorf("%s: %w: %w", op, ErrRequestFailed, lastErr)
}

// attempt одна попытка запроса с ограничением времени
func (c *Client) attempt(ctx context.Context, method, tailURL string, query url.Values, body []byte) ([]byte, attemptOutcome, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	reqURL := "https://" + c.cfg.Host + tailURL
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, reqURL, reader)
	if err != nil {
		return nil, outcomeFatal, err
	}
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, outcomeRetryable, err
		}
		return nil, outcomeFatal, err
	}
	defer resp.Body.Close()

	c.recordQuota(resp.Header)

	if resp.StatusCode != http.StatusOK {
		return nil, outcomeFatal, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, outcomeRetryable, err
		}
		return nil, outcomeFatal, err
	}

	return data, outcomeOK, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// recordQuota запоминает заголовки лимита запросов для логов оператора
func (c *Client) recordQuota(h http.Header) {
	limit := h.Get("X-RateLimit-Requests-Limit")
	remaining := h.Get("X-RateLimit-Requests-Remaining")
	if limit == "" && remaining == "" {
		return
	}

	c.mu.Lock()
	c.quotaLimit = limit
	c.quotaRemaining = remaining
	c.mu.Unlock()

	c.log.Debug("квота travel-api",
		slog.String("limit", limit),
		slog.String("remaining", remaining),
	)
}

// Quota последние известные значения лимита запросов к travel-API
func (c *Client) Quota() (limit, remaining string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quotaLimit, c.quotaRemaining
}
