package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sentimark/internal/model"
)

// EvalCache stores the last evaluation result keyed by the validation-set
// version. Uploading validation data bumps the version, so a cached result
// can never outlive the data it was computed from.
type EvalCache interface {
	ValidationVersion(ctx context.Context) (int64, error)
	BumpValidationVersion(ctx context.Context) error
	GetMetrics(ctx context.Context, version int64) (*model.EvaluationMetrics, error)
	SetMetrics(ctx context.Context, version int64, m *model.EvaluationMetrics) error
}

type evalCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEvalCache(client *redis.Client) EvalCache {
	return &evalCache{
		client: client,
		ttl:    time.Hour,
	}
}

const versionKey = "eval:validation_version"

func metricsKey(version int64) string {
	return fmt.Sprintf("eval:metrics:v%d", version)
}

func (c *evalCache) ValidationVersion(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (c *evalCache) BumpValidationVersion(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

func (c *evalCache) GetMetrics(ctx context.Context, version int64) (*model.EvaluationMetrics, error) {
	data, err := c.client.Get(ctx, metricsKey(version)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var m model.EvaluationMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *evalCache) SetMetrics(ctx context.Context, version int64, m *model.EvaluationMetrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, metricsKey(version), data, c.ttl).Err()
}
