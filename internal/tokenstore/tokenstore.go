// Package tokenstore keeps the backend bearer token between CLI runs, the
// way the browser front end kept it in local storage.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

// ErrNoToken is returned by Load when nothing is stored.
var ErrNoToken = errors.New("no token stored")

const (
	BackendFile  = "file"
	BackendRedis = "redis"

	defaultRedisKey = "ravyz:token"
)

// File stores the token in a single file with owner-only permissions.
type File struct {
	fs   afero.Fs
	path string
}

func NewFile(fs afero.Fs, path string) *File {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &File{fs: fs, path: path}
}

// DefaultPath is ~/.config/ravyz/token, or a relative file when the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".ravyz-token"
	}
	return filepath.Join(dir, "ravyz", "token")
}

func (f *File) Path() string { return f.path }

func (f *File) Load(_ context.Context) (string, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token file %q: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (f *File) Save(_ context.Context, token string) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := afero.WriteFile(f.fs, f.path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file %q: %w", f.path, err)
	}
	return nil
}

func (f *File) Clear(_ context.Context) error {
	err := f.fs.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file %q: %w", f.path, err)
	}
	return nil
}

// Redis shares one token between machines through a redis key.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	// TTL expires the stored token; zero keeps it until cleared.
	TTL time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisWithClient(client, cfg.Key, cfg.TTL)
}

func NewRedisWithClient(client *redis.Client, key string, ttl time.Duration) *Redis {
	if strings.TrimSpace(key) == "" {
		key = defaultRedisKey
	}
	return &Redis{client: client, key: key, ttl: ttl}
}

func (r *Redis) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token from redis: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(token), nil
}

func (r *Redis) Save(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key, strings.TrimSpace(token), r.ttl).Err(); err != nil {
		return fmt.Errorf("writing token to redis: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("removing token from redis: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
