package verifications

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/server/models"
)

// MemoryRepository keeps verification tokens in process memory.
type MemoryRepository struct {
	mu     sync.Mutex
	byHash map[string]*models.VerificationToken
	byID   map[string]*models.VerificationToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byHash: make(map[string]*models.VerificationToken),
		byID:   make(map[string]*models.VerificationToken),
	}
}

func (r *MemoryRepository) Create(_ context.Context, token *models.VerificationToken) (*models.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byHash[token.TokenHash]; ok {
		return nil, common.ErrAlreadyExists
	}
	token.CreatedAt = time.Now().UTC()

	c := *token
	r.byHash[c.TokenHash] = &c
	r.byID[c.ID] = &c
	return token, nil
}

func (r *MemoryRepository) FindByHash(_ context.Context, tokenHash string) (*models.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byHash[tokenHash]
	if !ok {
		return nil, common.ErrNotFound
	}
	c := *t
	if t.ConsumedAt != nil {
		at := *t.ConsumedAt
		c.ConsumedAt = &at
	}
	return &c, nil
}

func (r *MemoryRepository) MarkConsumed(_ context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok || t.ConsumedAt != nil {
		return false, nil
	}
	t.ConsumedAt = &at
	return true, nil
}
