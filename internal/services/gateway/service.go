// Package gateway resolves shard identifiers to durable backend instances.
// The registry is re-read on every request; the service never caches a
// mapping. Selection is rendezvous hashing over the live instances, so a
// given shard identifier keeps resolving to the same instance for as long as
// that instance stays registered.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxShardIDLen = 128

var (
	ErrInvalidShardID      = errors.New("invalid shard identifier")
	ErrNoInstances         = errors.New("no gateway instance available")
	ErrRegistryUnavailable = errors.New("instance registry unavailable")
)

// InstanceRecord is one registered durable backend instance.
type InstanceRecord struct {
	ID       string
	Addr     string
	LastSeen time.Time
}

// InstanceHandle addresses the instance a shard resolved to.
type InstanceHandle struct {
	ID   string
	Addr string
}

// Registry lists the currently registered instances.
type Registry interface {
	List(ctx context.Context) ([]InstanceRecord, error)
}

type Config struct {
	// LivenessWindow discards instances whose last heartbeat is older than
	// this. Zero disables the filter.
	LivenessWindow time.Duration
}

type Service struct {
	registry Registry
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(registry Registry, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve maps a shard identifier to exactly one live instance.
func (s *Service) Resolve(ctx context.Context, shardID string) (InstanceHandle, error) {
	if !validShardID(shardID) {
		return InstanceHandle{}, ErrInvalidShardID
	}

	records, err := s.registry.List(ctx)
	if err != nil {
		return InstanceHandle{}, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}

	live := s.filterLive(records)
	if len(live) == 0 {
		return InstanceHandle{}, ErrNoInstances
	}

	chosen := live[0]
	best := rendezvousScore(shardID, chosen.ID)
	for _, record := range live[1:] {
		if score := rendezvousScore(shardID, record.ID); score > best {
			best = score
			chosen = record
		}
	}

	s.logger.Debug("shard resolved",
		zap.String("shard_id", shardID),
		zap.String("instance_id", chosen.ID),
		zap.String("instance_addr", chosen.Addr),
	)

	return InstanceHandle{ID: chosen.ID, Addr: chosen.Addr}, nil
}

func (s *Service) filterLive(records []InstanceRecord) []InstanceRecord {
	if s.cfg.LivenessWindow <= 0 {
		return records
	}

	cutoff := s.now().Add(-s.cfg.LivenessWindow)
	live := records[:0:0]
	for _, record := range records {
		// A zero last-seen marks an operator-registered static record: it
		// never heartbeats and stays resolvable until deregistered.
		if record.LastSeen.IsZero() || record.LastSeen.After(cutoff) {
			live = append(live, record)
		}
	}
	return live
}

func validShardID(shardID string) bool {
	if shardID == "" || len(shardID) > maxShardIDLen {
		return false
	}
	return !strings.ContainsAny(shardID, " \t\r\n/")
}

func rendezvousScore(shardID, instanceID string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(shardID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(instanceID))
	return h.Sum64()
}
