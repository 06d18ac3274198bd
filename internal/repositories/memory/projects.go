package memory

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[primitive.ObjectID]*models.Project
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(projects ...models.Project) *ProjectRepository {
	repo := &ProjectRepository{projects: make(map[primitive.ObjectID]*models.Project)}
	for _, p := range projects {
		repo.AddProject(p)
	}
	return repo
}

// AddProject stores p, assigning a fresh ObjectID when p.ID is nil.
func (r *ProjectRepository) AddProject(p models.Project) models.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Status == "" {
		p.Status = models.ProjectStatusPending
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
	}
	r.projects[p.ID] = &p
	return p
}

func (r *ProjectRepository) GetProjectByID(_ context.Context, id string) (*models.Project, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	project := *p
	return &project, nil
}

func (r *ProjectRepository) UpdateProjectStatus(_ context.Context, id string, status models.ProjectStatus) (*models.Project, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	project := *p
	return &project, nil
}
