package daycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Cache guarda a lista de agendamentos de uma agenda em um dia.
// Get devolve ok=false em cache miss.
type Cache interface {
	Get(ctx context.Context, calendarID uint, dateKey string) ([]models.Appointment, bool, error)
	Set(ctx context.Context, calendarID uint, dateKey string, aps []models.Appointment) error
	Invalidate(ctx context.Context, calendarID uint, dateKeys ...string) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient cria o cliente a partir de uma URL redis://.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func Key(calendarID uint, dateKey string) string {
	return fmt.Sprintf("appointments:%d:%s", calendarID, dateKey)
}

func (c *RedisCache) Get(ctx context.Context, calendarID uint, dateKey string) ([]models.Appointment, bool, error) {
	val, err := c.client.Get(ctx, Key(calendarID, dateKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get day from redis: %w", err)
	}

	var aps []models.Appointment
	if err := json.Unmarshal(val, &aps); err != nil {
		return nil, false, fmt.Errorf("unmarshal day: %w", err)
	}
	return aps, true, nil
}

func (c *RedisCache) Set(ctx context.Context, calendarID uint, dateKey string, aps []models.Appointment) error {
	if aps == nil {
		aps = []models.Appointment{}
	}
	data, err := json.Marshal(aps)
	if err != nil {
		return fmt.Errorf("marshal day: %w", err)
	}

	if err := c.client.Set(ctx, Key(calendarID, dateKey), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set day in redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, calendarID uint, dateKeys ...string) error {
	if len(dateKeys) == 0 {
		return nil
	}

	keys := make([]string, 0, len(dateKeys))
	for _, k := range dateKeys {
		keys = append(keys, Key(calendarID, k))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate day: %w", err)
	}
	return nil
}

// Ping verifica a conexão com o Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Nop é usado quando o Redis não está disponível: todo Get é miss.
type Nop struct{}

func (Nop) Get(context.Context, uint, string) ([]models.Appointment, bool, error) {
	return nil, false, nil
}

func (Nop) Set(context.Context, uint, string, []models.Appointment) error { return nil }

func (Nop) Invalidate(context.Context, uint, ...string) error { return nil }

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = Nop{}
)
