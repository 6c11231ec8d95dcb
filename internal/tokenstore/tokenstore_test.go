package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

func TestFileRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFile(fs, "/home/ana/.config/ravyz/token")
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken before save, got %v", err)
	}

	if err := store.Save(ctx, " abc \n"); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	token, err := store.Load(ctx)
	if err != nil || token != "abc" {
		t.Fatalf("expected trimmed token, got %q (%v)", token, err)
	}

	info, err := fs.Stat(store.Path())
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("unexpected clear error: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clearing twice must not fail: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken after clear, got %v", err)
	}
}

func TestFileBlankToken(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "token", []byte("   \n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}

	if _, err := NewFile(fs, "token").Load(context.Background()); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken for blank file, got %v", err)
	}
}

// memoryRedis answers GET, SET and DEL in process so no server is dialed.
type memoryRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
	fail error
}

func newMemoryRedis(t *testing.T) (*memoryRedis, *redis.Client) {
	t.Helper()

	m := &memoryRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(m)
	t.Cleanup(func() { client.Close() })
	return m, client
}

func (m *memoryRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (m *memoryRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (m *memoryRedis) ProcessHook(_ redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.fail != nil {
			cmd.SetErr(m.fail)
			return m.fail
		}

		args := cmd.Args()
		key := fmt.Sprint(args[1])
		switch cmd.Name() {
		case "get":
			c := cmd.(*redis.StringCmd)
			v, ok := m.data[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case "set":
			m.data[key] = fmt.Sprint(args[2])
			delete(m.ttl, key)
			if len(args) == 5 && args[3] == "ex" {
				seconds, _ := args[4].(int64)
				m.ttl[key] = time.Duration(seconds) * time.Second
			}
			cmd.(*redis.StatusCmd).SetVal("OK")
		case "del":
			var n int64
			if _, ok := m.data[key]; ok {
				n = 1
			}
			delete(m.data, key)
			delete(m.ttl, key)
			cmd.(*redis.IntCmd).SetVal(n)
		default:
			err := fmt.Errorf("unexpected command %q", cmd.Name())
			cmd.SetErr(err)
			return err
		}
		return nil
	}
}

func TestRedisRoundTrip(t *testing.T) {
	m, client := newMemoryRedis(t)
	store := NewRedisWithClient(client, "", time.Hour)
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken for a missing key, got %v", err)
	}

	if err := store.Save(ctx, " abc \n"); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if m.data[defaultRedisKey] != "abc" || m.ttl[defaultRedisKey] != time.Hour {
		t.Fatalf("unexpected stored value %q with ttl %v", m.data[defaultRedisKey], m.ttl[defaultRedisKey])
	}

	token, err := store.Load(ctx)
	if err != nil || token != "abc" {
		t.Fatalf("expected stored token, got %q (%v)", token, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("unexpected clear error: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clearing twice must not fail: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken after clear, got %v", err)
	}
}

func TestRedisWithoutTTL(t *testing.T) {
	m, client := newMemoryRedis(t)
	store := NewRedisWithClient(client, "team:token", 0)

	if err := store.Save(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if m.data["team:token"] != "abc" {
		t.Fatalf("expected the configured key, got %v", m.data)
	}
	if ttl, ok := m.ttl["team:token"]; ok {
		t.Fatalf("expected no expiry, got %v", ttl)
	}
}

func TestRedisBlankToken(t *testing.T) {
	m, client := newMemoryRedis(t)
	m.data[defaultRedisKey] = "   "

	if _, err := NewRedisWithClient(client, "", 0).Load(context.Background()); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken for a blank value, got %v", err)
	}
}

func TestRedisErrors(t *testing.T) {
	m, client := newMemoryRedis(t)
	m.fail = errors.New("connection refused")
	store := NewRedisWithClient(client, "", 0)
	ctx := context.Background()

	if _, err := store.Load(ctx); err == nil || errors.Is(err, ErrNoToken) || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected the redis error, got %v", err)
	}
	if err := store.Save(ctx, "abc"); err == nil || !strings.Contains(err.Error(), "writing token") {
		t.Fatalf("expected a write error, got %v", err)
	}
	if err := store.Clear(ctx); err == nil || !strings.Contains(err.Error(), "removing token") {
		t.Fatalf("expected a remove error, got %v", err)
	}
}
