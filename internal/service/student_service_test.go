package service

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStudentRepo is an in-memory StudentRepository for service tests.
type fakeStudentRepo struct {
	students map[primitive.ObjectID]*domain.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[primitive.ObjectID]*domain.Student)}
}

func (r *fakeStudentRepo) add(s domain.Student) primitive.ObjectID {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	r.students[s.ID] = &s
	return s.ID
}

func (r *fakeStudentRepo) Create(_ context.Context, student *domain.Student) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	copied := *student
	copied.ID = id
	r.students[id] = &copied
	return id, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeStudentRepo) GetAll(_ context.Context, filter repository.StudentFilter) ([]domain.Student, error) {
	out := []domain.Student{}
	for _, s := range r.students {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *domain.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return nil
	}
	copied := *student
	r.students[student.ID] = &copied
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) SetKanbanStatus(_ context.Context, id primitive.ObjectID, status domain.KanbanStatus) error {
	s, ok := r.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.KanbanStatus = status
	return nil
}

func (r *fakeStudentRepo) SetNotionURL(_ context.Context, id primitive.ObjectID, url string) error {
	s, ok := r.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.NotionURL = url
	return nil
}

func (r *fakeStudentRepo) EnsureAnamnesisToken(_ context.Context, id primitive.ObjectID, token string) (string, error) {
	s, ok := r.students[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	if s.AnamnesisToken == "" {
		s.AnamnesisToken = token
	}
	return s.AnamnesisToken, nil
}

func (r *fakeStudentRepo) GetByAnamnesisToken(_ context.Context, token string) (*domain.Student, error) {
	for _, s := range r.students {
		if s.AnamnesisToken != "" && s.AnamnesisToken == token {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeStudentRepo) SubmitAnamnesis(_ context.Context, token string, data *domain.Anamnesis) error {
	for _, s := range r.students {
		if s.AnamnesisToken == token {
			now := time.Now().UTC()
			s.Anamnesis = data
			s.AnamnesisSubmittedAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.students)), nil
}

func TestStudentServiceCreateDefaults(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, "http://localhost:8080", true)

	created, err := svc.Create(context.Background(), &domain.Student{Name: "Pedro Lima", PlanValue: 150})
	require.NoError(t, err)

	assert.False(t, created.ID.IsZero())
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Equal(t, domain.KanbanNewStudent, created.KanbanStatus)
	assert.Equal(t, domain.PlanMonthly, created.PlanType)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, "http://localhost:8080", true)

	_, err := svc.Create(context.Background(), &domain.Student{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidStudentData)

	_, err = svc.Create(context.Background(), &domain.Student{Name: "Pedro", PlanValue: -1})
	assert.ErrorIs(t, err, ErrInvalidStudentData)

	count, _ := repo.Count(context.Background())
	assert.Zero(t, count)
}

func TestStudentServiceMoveKanbanRejectsUnknownColumn(t *testing.T) {
	repo := newFakeStudentRepo()
	id := repo.add(domain.Student{Name: "Pedro", KanbanStatus: domain.KanbanNewStudent})
	svc := NewStudentService(repo, "http://localhost:8080", true)

	err := svc.MoveKanban(context.Background(), id, "parked")
	assert.ErrorIs(t, err, ErrInvalidStudentData)
	assert.Equal(t, domain.KanbanNewStudent, repo.students[id].KanbanStatus)

	require.NoError(t, svc.MoveKanban(context.Background(), id, domain.KanbanFinished))
	assert.Equal(t, domain.KanbanFinished, repo.students[id].KanbanStatus)

	err = svc.MoveKanban(context.Background(), primitive.NewObjectID(), domain.KanbanFinished)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestGenerateAnamnesisLinkIsIdempotent(t *testing.T) {
	repo := newFakeStudentRepo()
	id := repo.add(domain.Student{Name: "Maria Santos"})
	svc := NewStudentService(repo, "https://coach.example.com/", true)

	first, err := svc.GenerateAnamnesisLink(context.Background(), id)
	require.NoError(t, err)
	require.NotEmpty(t, first.Token)
	assert.Equal(t, "https://coach.example.com/anamnese/"+first.Token, first.URL)

	second, err := svc.GenerateAnamnesisLink(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token, "a student keeps the first token forever")
	assert.Equal(t, first.URL, second.URL)
}

func TestGenerateAnamnesisLinkUnknownStudent(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, "http://localhost:8080", true)

	_, err := svc.GenerateAnamnesisLink(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestSubmitAnamnesisUnknownTokenChangesNothing(t *testing.T) {
	repo := newFakeStudentRepo()
	id := repo.add(domain.Student{Name: "Maria Santos", AnamnesisToken: "tok-maria"})
	svc := NewStudentService(repo, "http://localhost:8080", true)

	err := svc.SubmitAnamnesis(context.Background(), "tok-wrong", &domain.Anamnesis{FullName: "Maria Santos"})
	assert.ErrorIs(t, err, ErrInvalidIntakeToken)
	assert.Nil(t, repo.students[id].Anamnesis)
	assert.Nil(t, repo.students[id].AnamnesisSubmittedAt)
}

func TestSubmitAnamnesisRequiresFullName(t *testing.T) {
	repo := newFakeStudentRepo()
	repo.add(domain.Student{Name: "Maria Santos", AnamnesisToken: "tok-maria"})
	svc := NewStudentService(repo, "http://localhost:8080", true)

	err := svc.SubmitAnamnesis(context.Background(), "tok-maria", &domain.Anamnesis{FullName: "  "})
	assert.ErrorIs(t, err, ErrInvalidStudentData)

	err = svc.SubmitAnamnesis(context.Background(), "tok-maria", nil)
	assert.ErrorIs(t, err, ErrInvalidStudentData)
}

func TestSubmitAnamnesisResubmissionPolicy(t *testing.T) {
	first := &domain.Anamnesis{FullName: "Maria Santos", AestheticGoals: "hipertrofia"}
	second := &domain.Anamnesis{FullName: "Maria Santos", AestheticGoals: "emagrecimento"}

	t.Run("allowed", func(t *testing.T) {
		repo := newFakeStudentRepo()
		id := repo.add(domain.Student{Name: "Maria Santos", AnamnesisToken: "tok-maria"})
		svc := NewStudentService(repo, "http://localhost:8080", true)

		require.NoError(t, svc.SubmitAnamnesis(context.Background(), "tok-maria", first))
		require.NoError(t, svc.SubmitAnamnesis(context.Background(), "tok-maria", second))
		assert.Equal(t, "emagrecimento", repo.students[id].Anamnesis.AestheticGoals)
	})

	t.Run("denied", func(t *testing.T) {
		repo := newFakeStudentRepo()
		id := repo.add(domain.Student{Name: "Maria Santos", AnamnesisToken: "tok-maria"})
		svc := NewStudentService(repo, "http://localhost:8080", false)

		require.NoError(t, svc.SubmitAnamnesis(context.Background(), "tok-maria", first))
		err := svc.SubmitAnamnesis(context.Background(), "tok-maria", second)
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
		assert.Equal(t, "hipertrofia", repo.students[id].Anamnesis.AestheticGoals)
	})
}
