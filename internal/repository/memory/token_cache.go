package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// TokenCache memoizes Google token verification results so repeated logins
// with the same token skip the remote round-trip. Keys are token hashes;
// raw tokens never enter the cache.
type TokenCache struct {
	cache *cache.Cache
}

func NewTokenCache() *TokenCache {
	// Entries expire well before Google tokens do.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &TokenCache{
		cache: c,
	}
}

func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *TokenCache) Save(token string, userId uuid.UUID) {
	r.cache.Set(key(token), userId, cache.DefaultExpiration)
}

func (r *TokenCache) Get(token string) (uuid.UUID, bool) {
	if x, found := r.cache.Get(key(token)); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *TokenCache) Delete(token string) {
	r.cache.Delete(key(token))
}
