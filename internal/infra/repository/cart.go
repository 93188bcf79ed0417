package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storefront/internal/domain/cart"
	"storefront/internal/infra"
)

const (
	cartKeyPrefix  = "cart:"
	leaseKeyPrefix = "cart-lease:"
	leasePollEvery = 50 * time.Millisecond
)

// releaseLeaseScript deletes the lease only when it still belongs to the
// holder, so an expired-and-reacquired lease is never released by the old
// owner.
var releaseLeaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// CartRepository persists each session's cart as a single JSON blob in Redis
// and serializes same-session mutations through a short-lived lease key.
type CartRepository struct {
	client    *redis.Client
	cartTTL   time.Duration
	leaseTTL  time.Duration
	leaseWait time.Duration
}

func NewCartRepository(client *redis.Client, cartTTL, leaseTTL, leaseWait time.Duration) *CartRepository {
	return &CartRepository{
		client:    client,
		cartTTL:   cartTTL,
		leaseTTL:  leaseTTL,
		leaseWait: leaseWait,
	}
}

func (r *CartRepository) Get(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+sessionID.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "cart not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to get cart", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to unmarshal cart", err)
	}

	return &c, nil
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to marshal cart", err)
	}

	if err := r.client.Set(ctx, cartKeyPrefix+c.SessionID.String(), data, r.cartTTL).Err(); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to save cart", err)
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := r.client.Del(ctx, cartKeyPrefix+sessionID.String()).Err(); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to delete cart", err)
	}
	return nil
}

// AcquireLease takes the per-session mutation lease, blocking up to the
// configured wait. Concurrent same-session mutations and order assembly all
// go through here, which is what keeps the snapshot-then-clear sequence a
// critical section.
func (r *CartRepository) AcquireLease(ctx context.Context, sessionID uuid.UUID) (func(), error) {
	key := leaseKeyPrefix + sessionID.String()
	holder := uuid.NewString()
	deadline := time.Now().Add(r.leaseWait)

	for {
		ok, err := r.client.SetNX(ctx, key, holder, r.leaseTTL).Result()
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to acquire cart lease", err)
		}
		if ok {
			release := func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseLeaseScript.Run(releaseCtx, r.client, []string{key}, holder).Err()
			}
			return release, nil
		}

		if time.Now().After(deadline) {
			return nil, infra.WrapRepoErr(infra.KindLeaseHeld, "cart is busy", nil)
		}

		select {
		case <-ctx.Done():
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "lease wait canceled", ctx.Err())
		case <-time.After(leasePollEvery):
		}
	}
}
