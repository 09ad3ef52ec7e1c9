package authn

import (
	"encoding/json"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"

	"portfolio-gateway/sdk"
)

const userSnapshotKey = "portfolio:authn:user"

// SnapshotStore is an interface for components that persist the auth state's
// user across gateway restarts. Deliberately, ONLY the user is ever
// persisted. Status always starts over at idle so the guard is forced to
// revalidate against the backend instead of trusting a stale
// "authenticated" flag.
type SnapshotStore interface {
	// Load retrieves the persisted user, if any. A nil user with a nil error
	// means no snapshot exists.
	Load() (*sdk.User, error)
	// Save persists the given user.
	Save(user *sdk.User) error
	// Clear discards any persisted user.
	Clear() error
}

type redisSnapshotStore struct {
	redisClient *redis.Client
}

// NewRedisSnapshotStore returns a Redis-based implementation of the
// SnapshotStore interface.
func NewRedisSnapshotStore(redisClient *redis.Client) SnapshotStore {
	return &redisSnapshotStore{
		redisClient: redisClient,
	}
}

func (r *redisSnapshotStore) Load() (*sdk.User, error) {
	userJSON, err := r.redisClient.Get(userSnapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error loading user snapshot from redis")
	}
	user := &sdk.User{}
	if err := json.Unmarshal([]byte(userJSON), user); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling user snapshot")
	}
	return user, nil
}

func (r *redisSnapshotStore) Save(user *sdk.User) error {
	if user == nil {
		return r.Clear()
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "error marshaling user snapshot")
	}
	if err := r.redisClient.Set(userSnapshotKey, userJSON, 0).Err(); err != nil {
		return errors.Wrap(err, "error saving user snapshot to redis")
	}
	return nil
}

func (r *redisSnapshotStore) Clear() error {
	if err := r.redisClient.Del(userSnapshotKey).Err(); err != nil {
		return errors.Wrap(err, "error clearing user snapshot from redis")
	}
	return nil
}
