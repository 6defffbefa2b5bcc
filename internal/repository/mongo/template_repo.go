package mongo

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const templateCollectionName = "protocol_templates"

// mongoTemplateRepository implements repository.ProtocolTemplateRepository
// using MongoDB. Protocols use their own uuid strings as _id, so no ObjectID
// generation happens here.
type mongoTemplateRepository struct {
	collection *mongo.Collection
}

// NewMongoTemplateRepository creates a new instance of mongoTemplateRepository.
func NewMongoTemplateRepository(db *mongo.Database) repository.ProtocolTemplateRepository {
	return &mongoTemplateRepository{
		collection: db.Collection(templateCollectionName),
	}
}

// Create stores a protocol as a template.
func (r *mongoTemplateRepository) Create(ctx context.Context, protocol *domain.Protocol) error {
	if protocol.ID == "" {
		return errors.New("protocol id is required")
	}
	_, err := r.collection.InsertOne(ctx, protocol)
	return err
}

// GetByID retrieves a template by its protocol id.
func (r *mongoTemplateRepository) GetByID(ctx context.Context, id string) (*domain.Protocol, error) {
	var protocol domain.Protocol
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&protocol)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &protocol, nil
}

// GetAll retrieves every saved template.
func (r *mongoTemplateRepository) GetAll(ctx context.Context) ([]domain.Protocol, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := []domain.Protocol{}
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}
