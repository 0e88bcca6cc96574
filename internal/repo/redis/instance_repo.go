package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/pkg/validate"
	gatewaysvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/gateway"
)

const (
	instanceSetKey    = "gateway:instances"
	instanceKeyPrefix = "gateway:instance:"
)

// InstanceRepo is the redis-backed durable-instance registry behind the
// gateway resolver. Instances register an address and keep their record warm
// with heartbeats; resolution reads the full set on every request.
type InstanceRepo struct {
	client *goredis.Client
	now    func() time.Time
}

func NewInstanceRepo(client *goredis.Client) *InstanceRepo {
	return &InstanceRepo{client: client, now: time.Now}
}

func (r *InstanceRepo) Register(ctx context.Context, id, addr string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if !validate.Required(id) || !validate.Required(addr) {
		return fmt.Errorf("instance id and addr are required")
	}

	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, instanceSetKey, id)
	pipe.HSet(ctx, instanceKey(id), map[string]interface{}{
		"addr":      addr,
		"last_seen": r.now().Unix(),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("register gateway instance: %w", err)
	}
	return nil
}

func (r *InstanceRepo) Heartbeat(ctx context.Context, id string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	registered, err := r.client.SIsMember(ctx, instanceSetKey, id).Result()
	if err != nil {
		return fmt.Errorf("check gateway instance: %w", err)
	}
	if !registered {
		return fmt.Errorf("gateway instance %q is not registered", id)
	}

	if err := r.client.HSet(ctx, instanceKey(id), "last_seen", r.now().Unix()).Err(); err != nil {
		return fmt.Errorf("heartbeat gateway instance: %w", err)
	}
	return nil
}

func (r *InstanceRepo) Deregister(ctx context.Context, id string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	pipe := r.client.TxPipeline()
	pipe.SRem(ctx, instanceSetKey, id)
	pipe.Del(ctx, instanceKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deregister gateway instance: %w", err)
	}
	return nil
}

// List returns every registered instance. Records whose hash has vanished
// (manual cleanup, TTL) are skipped rather than failing the lookup.
func (r *InstanceRepo) List(ctx context.Context) ([]gatewaysvc.InstanceRecord, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	ids, err := r.client.SMembers(ctx, instanceSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list gateway instances: %w", err)
	}

	records := make([]gatewaysvc.InstanceRecord, 0, len(ids))
	for _, id := range ids {
		fields, err := r.client.HGetAll(ctx, instanceKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("read gateway instance %q: %w", id, err)
		}
		if len(fields) == 0 || fields["addr"] == "" {
			continue
		}

		record := gatewaysvc.InstanceRecord{ID: id, Addr: fields["addr"]}
		if ts, err := strconv.ParseInt(fields["last_seen"], 10, 64); err == nil {
			record.LastSeen = time.Unix(ts, 0)
		}
		records = append(records, record)
	}

	return records, nil
}

func instanceKey(id string) string {
	return instanceKeyPrefix + id
}
