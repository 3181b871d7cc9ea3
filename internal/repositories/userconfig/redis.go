package userconfig

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/KirkDiggler/pokeduel/internal/errors"
	redisclient "github.com/KirkDiggler/pokeduel/internal/redis"
)

const (
	// Key patterns: userconfig:member:{id} and userconfig:guild:{id}, each a
	// hash with one field per setting.
	memberKeyPrefix = "userconfig:member:"
	guildKeyPrefix  = "userconfig:guild:"

	fieldParty      = "party"
	fieldUseThreads = "use_threads"

	errMemberIDEmpty = "member ID cannot be empty"
	errGuildIDEmpty  = "guild ID cannot be empty"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client   redisclient.Client
	Defaults Defaults
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client   redisclient.Client
	defaults Defaults
}

// NewRedis creates a Redis backed repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client:   cfg.Client,
		defaults: cfg.Defaults,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) GetMember(ctx context.Context, input *GetMemberInput) (*GetMemberOutput, error) {
	if input == nil || input.MemberID == "" {
		return nil, errors.InvalidArgument(errMemberIDEmpty)
	}

	raw, err := r.client.HGet(ctx, memberKeyPrefix+input.MemberID, fieldParty).Result()
	if err != nil && !redisclient.IsNil(err) {
		return nil, errors.Wrapf(err, "failed to get member %s", input.MemberID)
	}

	member := &MemberConfig{MemberID: input.MemberID, Party: r.defaults.party()}
	if raw != "" {
		var party []PartyMember
		if err := json.Unmarshal([]byte(raw), &party); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to unmarshal party")
		}
		member.Party = party
	}

	return &GetMemberOutput{Member: member}, nil
}

func (r *redisRepository) SetParty(ctx context.Context, input *SetPartyInput) (*SetPartyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	party := clonePartyMembers(input.Party)
	data, err := json.Marshal(party)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal party")
	}
	if err := r.client.HSet(ctx, memberKeyPrefix+input.MemberID, fieldParty, data).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store party for %s", input.MemberID)
	}

	return &SetPartyOutput{Member: &MemberConfig{MemberID: input.MemberID, Party: party}}, nil
}

func (r *redisRepository) GetGuild(ctx context.Context, input *GetGuildInput) (*GetGuildOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	raw, err := r.client.HGet(ctx, guildKeyPrefix+input.GuildID, fieldUseThreads).Result()
	if err != nil && !redisclient.IsNil(err) {
		return nil, errors.Wrapf(err, "failed to get guild %s", input.GuildID)
	}

	guild := &GuildConfig{GuildID: input.GuildID, UseThreads: r.defaults.UseThreads}
	if raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to parse use_threads")
		}
		guild.UseThreads = v
	}

	return &GetGuildOutput{Guild: guild}, nil
}

func (r *redisRepository) SetUseThreads(ctx context.Context, input *SetUseThreadsInput) (*SetUseThreadsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	value := strconv.FormatBool(input.UseThreads)
	if err := r.client.HSet(ctx, guildKeyPrefix+input.GuildID, fieldUseThreads, value).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store use_threads for %s", input.GuildID)
	}

	return &SetUseThreadsOutput{Guild: &GuildConfig{GuildID: input.GuildID, UseThreads: input.UseThreads}}, nil
}

// FindCorrupt returns the keys whose stored settings no longer decode.
func FindCorrupt(ctx context.Context, client redisclient.Client) ([]string, error) {
	var corrupt []string

	members, err := redisclient.ScanKeys(ctx, client, memberKeyPrefix+"*")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan member settings")
	}
	for _, key := range members {
		raw, err := client.HGet(ctx, key, fieldParty).Result()
		if redisclient.IsNil(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}
		var party []PartyMember
		if json.Unmarshal([]byte(raw), &party) != nil {
			corrupt = append(corrupt, key)
		}
	}

	guilds, err := redisclient.ScanKeys(ctx, client, guildKeyPrefix+"*")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan guild settings")
	}
	for _, key := range guilds {
		raw, err := client.HGet(ctx, key, fieldUseThreads).Result()
		if redisclient.IsNil(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}
		if _, err := strconv.ParseBool(raw); err != nil {
			corrupt = append(corrupt, key)
		}
	}

	return corrupt, nil
}
