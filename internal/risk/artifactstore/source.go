// internal/risk/artifactstore/source.go
package artifactstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// ErrArtifactNotFound is returned when a source has no document under a name.
var ErrArtifactNotFound = errors.New("artifact not found")

// Source reads raw artifact documents by name.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Describe() string
}

// FileSource reads artifacts from a directory.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s in %s: %w", name, s.Dir, ErrArtifactNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s *FileSource) Describe() string { return "file:" + s.Dir }

// RedisSource reads and writes artifacts as string values under "<prefix>:<name>".
type RedisSource struct {
	client redis.Cmdable
	prefix string
}

func NewRedisSource(client redis.Cmdable, prefix string) *RedisSource {
	return &RedisSource{client: client, prefix: prefix}
}

func (s *RedisSource) Key(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisSource) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.Key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", s.Key(name), ErrArtifactNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.Key(name), err)
	}
	return data, nil
}

// Write stores one artifact document without expiry.
func (s *RedisSource) Write(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.Key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key(name), err)
	}
	return nil
}

func (s *RedisSource) Describe() string { return "redis:" + s.prefix }
