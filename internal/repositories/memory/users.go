package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
)

// UserRepository is an in-memory user directory. Unlike the Postgres table it
// does not enforce unique full names, which lets callers exercise ambiguous lookups.
type UserRepository struct {
	mu     sync.RWMutex
	pk     uint
	byID   map[uint]*models.User
	byName map[string][]uint
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func NewUserRepository(users ...models.User) *UserRepository {
	repo := &UserRepository{
		byID:   make(map[uint]*models.User),
		byName: make(map[string][]uint),
	}
	for _, u := range users {
		repo.AddUser(u)
	}
	return repo
}

// AddUser stores u, assigning the next id when u.ID is zero.
func (r *UserRepository) AddUser(u models.User) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == 0 {
		r.pk++
		u.ID = r.pk
	} else if u.ID > r.pk {
		r.pk = u.ID
	}
	if u.Role == "" {
		u.Role = models.RoleStudent
	}
	r.byID[u.ID] = &u
	r.byName[u.FullName] = append(r.byName[u.FullName], u.ID)
	return u
}

func (r *UserRepository) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	usr := *u
	return &usr, nil
}

func (r *UserRepository) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *UserRepository) FindUsersByFullName(_ context.Context, fullName string, limit int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := append([]uint(nil), r.byName[fullName]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if limit > 0 && len(users) == limit {
			break
		}
		users = append(users, *r.byID[id])
	}
	return users, nil
}

func (r *UserRepository) GetUserByFirebaseUID(_ context.Context, firebaseUID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID {
			usr := *u
			return &usr, nil
		}
	}
	return nil, repositories.ErrNotFound
}
