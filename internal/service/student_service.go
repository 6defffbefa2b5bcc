package service

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrInvalidStudentData = errors.New("invalid student data")
	ErrInvalidIntakeToken = errors.New("intake token not recognized")
	ErrAlreadySubmitted   = errors.New("anamnesis has already been submitted for this token")
)

// AnamnesisLink is what the coach shares with a student.
type AnamnesisLink struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// StudentService covers the student collection and the anamnesis intake flow.
type StudentService interface {
	List(ctx context.Context, filter repository.StudentFilter) ([]domain.Student, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Student, error)
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	MoveKanban(ctx context.Context, id primitive.ObjectID, status domain.KanbanStatus) error
	UpdateNotionLink(ctx context.Context, id primitive.ObjectID, url string) error
	GenerateAnamnesisLink(ctx context.Context, id primitive.ObjectID) (*AnamnesisLink, error)
	GetStudentByToken(ctx context.Context, token string) (*domain.Student, error)
	SubmitAnamnesis(ctx context.Context, token string, data *domain.Anamnesis) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	// intakeBaseURL is the public origin prefixed to generated intake links.
	intakeBaseURL string
	// allowResubmission permits overwriting an already-submitted anamnesis.
	allowResubmission bool
}

// NewStudentService creates a new instance of studentService.
func NewStudentService(studentRepo repository.StudentRepository, intakeBaseURL string, allowResubmission bool) StudentService {
	return &studentService{
		studentRepo:       studentRepo,
		intakeBaseURL:     strings.TrimRight(intakeBaseURL, "/"),
		allowResubmission: allowResubmission,
	}
}

func (s *studentService) List(ctx context.Context, filter repository.StudentFilter) ([]domain.Student, error) {
	return s.studentRepo.GetAll(ctx, filter)
}

func (s *studentService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// Create validates and inserts a new student. Workflow placement defaults to
// the first kanban column when the caller leaves it empty.
func (s *studentService) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if strings.TrimSpace(student.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidStudentData)
	}
	if student.PlanValue < 0 {
		return nil, fmt.Errorf("%w: plan value cannot be negative", ErrInvalidStudentData)
	}
	if student.Status == "" {
		student.Status = domain.StatusActive
	}
	if student.KanbanStatus == "" {
		student.KanbanStatus = domain.KanbanNewStudent
	}
	if student.PlanType == "" {
		student.PlanType = domain.PlanMonthly
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, err
	}
	student.ID = id
	return student, nil
}

// Update replaces the whole record. An unknown id is silently ignored,
// matching the last-write-wins collection semantics.
func (s *studentService) Update(ctx context.Context, student *domain.Student) error {
	if strings.TrimSpace(student.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidStudentData)
	}
	return s.studentRepo.Update(ctx, student)
}

func (s *studentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.studentRepo.Delete(ctx, id)
}

// MoveKanban drags the student to another board column. Membership status is
// a separate axis and is never touched here.
func (s *studentService) MoveKanban(ctx context.Context, id primitive.ObjectID, status domain.KanbanStatus) error {
	switch status {
	case domain.KanbanNewStudent, domain.KanbanInDevelopment, domain.KanbanPendingUpdate, domain.KanbanFinished:
	default:
		return fmt.Errorf("%w: unknown kanban status %q", ErrInvalidStudentData, status)
	}

	err := s.studentRepo.SetKanbanStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStudentNotFound
	}
	return err
}

func (s *studentService) UpdateNotionLink(ctx context.Context, id primitive.ObjectID, url string) error {
	err := s.studentRepo.SetNotionURL(ctx, id, url)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStudentNotFound
	}
	return err
}

// GenerateAnamnesisLink returns the shareable intake link for a student.
// Idempotent: the first call mints a token, every later call returns the
// same one.
func (s *studentService) GenerateAnamnesisLink(ctx context.Context, id primitive.ObjectID) (*AnamnesisLink, error) {
	token, err := s.studentRepo.EnsureAnamnesisToken(ctx, id, uuid.NewString())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	return &AnamnesisLink{
		Token: token,
		URL:   fmt.Sprintf("%s/anamnese/%s", s.intakeBaseURL, token),
	}, nil
}

func (s *studentService) GetStudentByToken(ctx context.Context, token string) (*domain.Student, error) {
	student, err := s.studentRepo.GetByAnamnesisToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidIntakeToken
		}
		return nil, err
	}
	return student, nil
}

// SubmitAnamnesis stores the intake answers for the student matching the
// token. Whether a second submission may overwrite the first is a policy
// decision taken from configuration.
func (s *studentService) SubmitAnamnesis(ctx context.Context, token string, data *domain.Anamnesis) error {
	if data == nil || strings.TrimSpace(data.FullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidStudentData)
	}

	student, err := s.studentRepo.GetByAnamnesisToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidIntakeToken
		}
		return err
	}

	if student.Anamnesis != nil && !s.allowResubmission {
		return ErrAlreadySubmitted
	}

	err = s.studentRepo.SubmitAnamnesis(ctx, token, data)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidIntakeToken
	}
	return err
}
