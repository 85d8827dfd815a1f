package persistence

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tempestive/DFAnet/pkg/api"
)

// RedisSnapshotStore is a SnapshotStore backed by Redis.
// It uses a simple key structure:
//
//	<prefix>snap:<key>  => gob-encoded redisSnapshotPayload
//	<prefix>idx:keys    => SET of all snapshot keys
//
// The index is always updated alongside the snapshot via a pipeline, and
// List reads from it. With a TTL configured, snapshots expire but index
// entries are only pruned lazily when Load finds the snapshot gone.
type RedisSnapshotStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ api.SnapshotStore = (*RedisSnapshotStore)(nil)

// redisSnapshotPayload is the stored envelope: the encoding plus the
// document bytes in that encoding.
type redisSnapshotPayload struct {
	Format   string
	Document []byte
}

// RedisOption configures a RedisSnapshotStore.
type RedisOption func(*RedisSnapshotStore)

// WithTTL makes saved snapshots expire after d. Zero (the default) keeps
// them until deleted.
func WithTTL(d time.Duration) RedisOption {
	return func(s *RedisSnapshotStore) {
		s.ttl = d
	}
}

// NewRedisSnapshotStore creates a RedisSnapshotStore.
// prefix is optional but recommended (e.g. "dfanet:").
func NewRedisSnapshotStore(client *redis.Client, prefix string, opts ...RedisOption) *RedisSnapshotStore {
	if prefix == "" {
		prefix = "dfanet:"
	}
	s := &RedisSnapshotStore{
		client: client,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSnapshotStore) keySnapshot(key string) string {
	return s.prefix + "snap:" + key
}

func (s *RedisSnapshotStore) keyIndex() string {
	return s.prefix + "idx:keys"
}

func (s *RedisSnapshotStore) Save(ctx context.Context, key string, doc *api.Document, format api.Format) error {
	data, err := EncodeDocument(doc, format)
	if err != nil {
		return err
	}

	payload := redisSnapshotPayload{
		Format:   string(format),
		Document: data,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&payload); err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keySnapshot(key), buf.Bytes(), s.ttl)
	pipe.SAdd(ctx, s.keyIndex(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}
	return nil
}

func (s *RedisSnapshotStore) Load(ctx context.Context, key string) (*api.Document, error) {
	data, err := s.client.Get(ctx, s.keySnapshot(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired or never saved; drop any stale index entry.
			_ = s.client.SRem(ctx, s.keyIndex(), key).Err()
			return nil, fmt.Errorf("key %q: %w", key, api.ErrSnapshotNotFound)
		}
		return nil, &api.SnapshotError{Op: "load", Err: err}
	}

	var payload redisSnapshotPayload
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&payload); err != nil {
		return nil, &api.SnapshotError{Op: "load", Err: err}
	}

	return DecodeDocument(payload.Document, api.Format(payload.Format))
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, key string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.keySnapshot(key))
	pipe.SRem(ctx, s.keyIndex(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return &api.SnapshotError{Op: "delete", Err: err}
	}
	if del.Val() == 0 {
		return fmt.Errorf("key %q: %w", key, api.ErrSnapshotNotFound)
	}
	return nil
}

func (s *RedisSnapshotStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.keyIndex()).Result()
	if err != nil {
		return nil, &api.SnapshotError{Op: "list", Err: err}
	}
	slices.Sort(keys)
	return keys, nil
}
