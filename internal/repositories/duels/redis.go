package duels

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pokeduel/internal/redis"
)

const (
	// Key patterns: duel:{id} holds the JSON record and
	// duel:member:{member_id} the ID of that member's active duel.
	duelKeyPrefix   = "duel:"
	memberKeyPrefix = "duel:member:"
	defaultTTL      = 24 * time.Hour
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL bounds how long records live; zero uses 24 hours.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "cannot be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedis creates a Redis backed repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &redisRepository{client: cfg.Client, clock: cfg.Clock, ttl: ttl}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	rec := newRecord(input.Record, r.clock.Now())

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal duel")
	}

	keys := []string{duelKeyPrefix + rec.ID}
	if rec.Active() {
		for _, member := range rec.MemberIDs {
			keys = append(keys, memberKeyPrefix+member)
		}
	}

	res, err := createScript.Run(ctx, r.client, keys,
		data, rec.ID, r.ttl.Milliseconds(), duelKeyPrefix).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store duel %s", rec.ID)
	}
	switch {
	case res == createDuelExists:
		return nil, errors.AlreadyExistsf("duel %s already exists", rec.ID)
	case res > 0:
		return nil, errMemberBusy(rec.MemberIDs[res-1])
	}

	return &CreateOutput{Record: rec}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.InvalidArgument(errDuelIDEmpty)
	}

	rec, err := r.load(ctx, input.DuelID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Record: rec}, nil
}

func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.InvalidArgument(errDuelIDEmpty)
	}

	rec, err := r.load(ctx, input.DuelID)
	if err != nil {
		return nil, err
	}
	applyUpdate(rec, input)
	rec.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal duel")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, duelKeyPrefix+rec.ID, data, goredis.KeepTTL)
		if !rec.Active() {
			for _, member := range rec.MemberIDs {
				pipe.Del(ctx, memberKeyPrefix+member)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update duel %s", rec.ID)
	}

	return &UpdateOutput{Record: rec}, nil
}

func (r *redisRepository) FindActive(ctx context.Context, input *FindActiveInput) (*FindActiveOutput, error) {
	if input == nil || input.MemberID == "" {
		return nil, errors.InvalidArgument(errMemberIDEmpty)
	}

	duelID, err := r.client.Get(ctx, memberKeyPrefix+input.MemberID).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("member %s has no active duel", input.MemberID)
		}
		return nil, errors.Wrapf(err, "failed to look up member %s", input.MemberID)
	}

	rec, err := r.load(ctx, duelID)
	if err != nil {
		return nil, err
	}
	if !rec.Active() {
		return nil, errors.NotFoundf("member %s has no active duel", input.MemberID)
	}
	return &FindActiveOutput{Record: rec}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.DuelID == "" {
		return nil, errors.InvalidArgument(errDuelIDEmpty)
	}

	rec, err := r.load(ctx, input.DuelID)
	if err != nil {
		return nil, err
	}

	keys := []string{duelKeyPrefix + rec.ID}
	if rec.Active() {
		for _, member := range rec.MemberIDs {
			keys = append(keys, memberKeyPrefix+member)
		}
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete duel %s", rec.ID)
	}

	return &DeleteOutput{Success: true}, nil
}

func (r *redisRepository) load(ctx context.Context, duelID string) (*Record, error) {
	data, err := r.client.Get(ctx, duelKeyPrefix+duelID).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFound(errDuelNotFound)
		}
		return nil, errors.Wrapf(err, "failed to get duel %s", duelID)
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to unmarshal duel")
	}
	return &rec, nil
}

// createScript stores the record under KEYS[1] and points each member key
// in KEYS[2:] at it, all or nothing. A member key whose duel is gone is
// stale and gets taken over. Returns 0 on success, -1 if the duel exists,
// or the 1-based position of the first member already in a live duel.
var createScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return -1
end
for i = 2, #KEYS do
	local holder = redis.call('GET', KEYS[i])
	if holder and redis.call('EXISTS', ARGV[4] .. holder) == 1 then
		return i - 1
	end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
for i = 2, #KEYS do
	redis.call('SET', KEYS[i], ARGV[2], 'PX', ARGV[3])
end
return 0
`)

const createDuelExists = -1

// FindCorrupt returns duel keys whose record no longer decodes and member
// index keys pointing at a missing duel.
func FindCorrupt(ctx context.Context, client redisclient.Client) ([]string, error) {
	keys, err := redisclient.ScanKeys(ctx, client, duelKeyPrefix+"*")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan duels")
	}

	var corrupt []string
	for _, key := range keys {
		data, err := client.Get(ctx, key).Result()
		if redisclient.IsNil(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		if strings.HasPrefix(key, memberKeyPrefix) {
			n, err := client.Exists(ctx, duelKeyPrefix+data).Result()
			if err != nil {
				return nil, errors.Wrapf(err, "failed to check duel %s", data)
			}
			if n == 0 {
				corrupt = append(corrupt, key)
			}
			continue
		}

		var rec Record
		if json.Unmarshal([]byte(data), &rec) != nil || rec.ID == "" {
			corrupt = append(corrupt, key)
		}
	}
	return corrupt, nil
}
