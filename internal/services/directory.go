package services

import (
	"context"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"github.com/pkg/errors"
)

// userIndex resolves user ids to directory records for read-side joins
type userIndex map[uint]models.User

func loadUsers(ctx context.Context, repo repositories.UserRepository, ids []uint) (userIndex, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	users, err := repo.GetUsersByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	index := make(userIndex, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}

func (idx userIndex) name(id uint) string {
	return idx[id].FullName
}

func (idx userIndex) compact(id uint) models.UserCompact {
	if u, ok := idx[id]; ok {
		return u.ToCompact()
	}
	return models.UserCompact{ID: id}
}

// resolveRecipient looks a recipient up by id, or by full name when no id is
// given. A name must match exactly one user.
func resolveRecipient(ctx context.Context, repo repositories.UserRepository, r models.Recipient) (*models.User, error) {
	if r.ID != 0 {
		user, err := repo.GetUserByID(ctx, r.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, NotFoundError("recipient %d not found", r.ID)
			}
			return nil, PersistenceError(err, "looking up recipient %d", r.ID)
		}
		return user, nil
	}

	if r.FullName == "" {
		return nil, ValidationError("recipient id or full name is required")
	}
	users, err := repo.FindUsersByFullName(ctx, r.FullName, 2)
	if err != nil {
		return nil, PersistenceError(err, "looking up recipient %q", r.FullName)
	}
	switch len(users) {
	case 0:
		return nil, NotFoundError("recipient %q not found", r.FullName)
	case 1:
		return &users[0], nil
	default:
		return nil, NotFoundError("recipient %q is ambiguous", r.FullName)
	}
}
