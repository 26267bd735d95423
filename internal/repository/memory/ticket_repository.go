package memory

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// TicketRepository hands out short lived single use tokens that let a
// browser upgrade to a websocket without putting the JWT in the URL.
type TicketRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewTicketRepository() *TicketRepository {
	ttl := 30 * time.Second
	return &TicketRepository{
		cache: cache.New(ttl, time.Minute),
		ttl:   ttl,
	}
}

func (r *TicketRepository) Issue(userId uuid.UUID) (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	r.cache.Set(token, userId, r.ttl)
	return token, nil
}

// Redeem consumes the ticket. A second redemption of the same token fails.
func (r *TicketRepository) Redeem(token string) (uuid.UUID, bool) {
	x, found := r.cache.Get(token)
	if !found {
		return uuid.Nil, false
	}
	r.cache.Delete(token)
	userId, ok := x.(uuid.UUID)
	return userId, ok
}
