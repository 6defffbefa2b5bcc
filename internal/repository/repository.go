package repository

import (
	"coachdesk/coach-console/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// StudentFilter narrows GetAll results. The zero value matches everything.
type StudentFilter struct {
	Search string               // case-insensitive substring match on name
	Status domain.StudentStatus // empty matches any membership status
}

// StudentRepository is the single source of truth for the student
// collection. Record mutation is last-write-wins on the full record; the
// field-level operations touch only their field.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error)
	GetAll(ctx context.Context, filter StudentFilter) ([]domain.Student, error)
	// Update replaces the whole record; a missing id is a silent no-op.
	Update(ctx context.Context, student *domain.Student) error
	// Delete removes the record; a missing id is a silent no-op.
	Delete(ctx context.Context, id primitive.ObjectID) error
	// SetKanbanStatus moves the student on the board without touching the
	// membership status or lastUpdate.
	SetKanbanStatus(ctx context.Context, id primitive.ObjectID, status domain.KanbanStatus) error
	SetNotionURL(ctx context.Context, id primitive.ObjectID, url string) error
	// EnsureAnamnesisToken assigns the token only if the student has none
	// yet, and returns the token now on record. At most one token is ever
	// assigned per student, even under concurrent calls.
	EnsureAnamnesisToken(ctx context.Context, id primitive.ObjectID, token string) (string, error)
	GetByAnamnesisToken(ctx context.Context, token string) (*domain.Student, error)
	// SubmitAnamnesis stores the intake answers on the student matching the
	// token. Returns ErrNotFound when no student carries the token.
	SubmitAnamnesis(ctx context.Context, token string, data *domain.Anamnesis) error
	Count(ctx context.Context) (int64, error)
}

// CoachRepository stores dashboard accounts.
type CoachRepository interface {
	Create(ctx context.Context, coach *domain.Coach) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Coach, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error)
}

// ProtocolTemplateRepository stores protocols saved as reusable templates.
type ProtocolTemplateRepository interface {
	Create(ctx context.Context, protocol *domain.Protocol) error
	GetByID(ctx context.Context, id string) (*domain.Protocol, error)
	GetAll(ctx context.Context) ([]domain.Protocol, error)
}
