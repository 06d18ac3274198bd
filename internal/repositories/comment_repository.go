package repositories

import (
	"context"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	// GetCommentsByProjectID returns the project's comments, newest first.
	GetCommentsByProjectID(ctx context.Context, projectID string) ([]models.Comment, error)
	// AppendReply pushes reply onto the comment and returns the updated document.
	AppendReply(ctx context.Context, commentID string, reply models.Reply) (*models.Comment, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// EnsureIndexes creates the index backing the per-project listing
func (r *MongoCommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.Replies == nil {
		comment.Replies = []models.Reply{}
	}
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment); err != nil {
		return nil, translateMongoError(err)
	}
	return &comment, nil
}

// GetCommentsByProjectID retrieves all comments for a specific project from MongoDB
func (r *MongoCommentRepository) GetCommentsByProjectID(ctx context.Context, projectID string) ([]models.Comment, error) {
	objID, err := parseObjectID(projectID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"project_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AppendReply appends a reply with a single $push, so concurrent replies to
// the same comment are serialized by the document store.
func (r *MongoCommentRepository) AppendReply(ctx context.Context, commentID string, reply models.Reply) (*models.Comment, error) {
	objID, err := parseObjectID(commentID)
	if err != nil {
		return nil, err
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}

	update := bson.M{"$push": bson.M{"replies": reply}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment models.Comment
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&comment); err != nil {
		return nil, translateMongoError(err)
	}
	return &comment, nil
}
