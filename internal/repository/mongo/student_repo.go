package mongo

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const studentCollectionName = "students"

// mongoStudentRepository implements repository.StudentRepository using MongoDB.
type mongoStudentRepository struct {
	collection *mongo.Collection
}

// NewMongoStudentRepository creates a new instance of mongoStudentRepository.
// It expects a connected *mongo.Database instance.
func NewMongoStudentRepository(db *mongo.Database) repository.StudentRepository {
	return &mongoStudentRepository{
		collection: db.Collection(studentCollectionName),
	}
}

// Create inserts a new student. The id is generated here; every other field
// comes from the caller.
func (r *mongoStudentRepository) Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error) {
	if student.Name == "" {
		return primitive.NilObjectID, errors.New("student name is required")
	}

	student.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a student by their MongoDB ObjectID.
func (r *mongoStudentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	var student domain.Student
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetAll retrieves students, optionally narrowed by name search and
// membership status.
func (r *mongoStudentRepository) GetAll(ctx context.Context, f repository.StudentFilter) ([]domain.Student, error) {
	filter := bson.M{}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := []domain.Student{}
	if err = cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

// Update replaces the whole record matching student.ID. A missing id is a
// silent no-op.
func (r *mongoStudentRepository) Update(ctx context.Context, student *domain.Student) error {
	student.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": student.ID}
	_, err := r.collection.ReplaceOne(ctx, filter, student)
	// MatchedCount == 0 is deliberately not an error here.
	return err
}

// Delete removes the student. A missing id is a silent no-op.
func (r *mongoStudentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// SetKanbanStatus sets only the workflow column. Membership status and
// lastUpdate are independent axes and stay untouched.
func (r *mongoStudentRepository) SetKanbanStatus(ctx context.Context, id primitive.ObjectID, status domain.KanbanStatus) error {
	update := bson.M{
		"$set": bson.M{
			"kanbanStatus": status,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetNotionURL sets only the external link.
func (r *mongoStudentRepository) SetNotionURL(ctx context.Context, id primitive.ObjectID, url string) error {
	update := bson.M{
		"$set": bson.M{
			"notionUrl": url,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAnamnesisToken assigns the candidate token only when the student has
// none yet. The conditional filter makes the assignment atomic: two
// concurrent callers can never both write a token, so the first one wins and
// everyone observes the same value afterwards.
func (r *mongoStudentRepository) EnsureAnamnesisToken(ctx context.Context, id primitive.ObjectID, token string) (string, error) {
	filter := bson.M{
		"_id":            id,
		"anamnesisToken": bson.M{"$in": bson.A{nil, ""}},
	}
	update := bson.M{
		"$set": bson.M{
			"anamnesisToken": token,
			"updatedAt":      time.Now().UTC(),
		},
	}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return "", err
	}

	// Read back whichever token is on record now (ours or a pre-existing one).
	student, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if student.AnamnesisToken == "" {
		return "", repository.ErrUpdateFailed
	}
	return student.AnamnesisToken, nil
}

// GetByAnamnesisToken resolves a public intake token to its student.
func (r *mongoStudentRepository) GetByAnamnesisToken(ctx context.Context, token string) (*domain.Student, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}

	var student domain.Student
	err := r.collection.FindOne(ctx, bson.M{"anamnesisToken": token}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// SubmitAnamnesis stores the intake answers and the submission timestamp on
// the student carrying the token.
func (r *mongoStudentRepository) SubmitAnamnesis(ctx context.Context, token string, data *domain.Anamnesis) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"anamnesis":            data,
			"anamnesisSubmittedAt": now,
			"updatedAt":            now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"anamnesisToken": token}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count returns the total number of students.
func (r *mongoStudentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// EnsureStudentIndexes creates necessary indexes for the students collection.
// Call this once during application startup.
func EnsureStudentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "anamnesisToken", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "entryDate", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
