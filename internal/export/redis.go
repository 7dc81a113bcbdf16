package export

import (
	"context"
	"crater-nest/internal/logger"
	"crater-nest/internal/nest"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 文档注释：Redis 哈希输出
// 约束：整表替换（DEL 后 HSET）于同一事务管道内完成；TTL 为 0 时不过期。
type RedisSink struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func (s *RedisSink) Write(ctx context.Context, counts nest.Counts) error {
	if s.Client == nil {
		return fmt.Errorf("%w: redis client not configured", ErrOutputUnwritable)
	}
	pipe := s.Client.TxPipeline()
	pipe.Del(ctx, s.Key)
	if len(counts) > 0 {
		vals := make(map[string]any, len(counts))
		for id, n := range counts {
			vals[id] = n
		}
		pipe.HSet(ctx, s.Key, vals)
		if s.TTL > 0 {
			pipe.Expire(ctx, s.Key, s.TTL)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: redis %s: %v", ErrOutputUnwritable, s.Key, err)
	}
	logger.L().Debug("export_redis_written", "key", s.Key, "keys", len(counts))
	return nil
}

// ReadRedis：读回哈希中的计数
func ReadRedis(ctx context.Context, rc *redis.Client, key string) (nest.Counts, error) {
	m, err := rc.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(nest.Counts, len(m))
	for id, v := range m {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return nil, fmt.Errorf("key %s field %s: %w", key, id, err)
		}
		out[id] = n
	}
	return out, nil
}
