package repositories

import (
	"context"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectRepository is the slice of the project store used by comments and moderation
type ProjectRepository interface {
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	UpdateProjectStatus(ctx context.Context, id string, status models.ProjectStatus) (*models.Project, error)
}

// MongoProjectRepository implements ProjectRepository for MongoDB
type MongoProjectRepository struct {
	collection *mongo.Collection
}

// NewMongoProjectRepository creates a new MongoProjectRepository
func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{collection: db.Collection("projects")}
}

// GetProjectByID retrieves a project by ID from MongoDB
func (r *MongoProjectRepository) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&project); err != nil {
		return nil, translateMongoError(err)
	}
	return &project, nil
}

// UpdateProjectStatus sets the moderation status and returns the updated project
func (r *MongoProjectRepository) UpdateProjectStatus(ctx context.Context, id string, status models.ProjectStatus) (*models.Project, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var project models.Project
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&project); err != nil {
		return nil, translateMongoError(err)
	}
	return &project, nil
}
