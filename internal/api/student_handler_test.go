package api

import (
	"bytes"
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// updateStudentService captures what UpdateStudent persists. Get serves the
// canned record (or error); Update records the replacement.
type updateStudentService struct {
	*stubStudentService
	existing *domain.Student
	getErr   error
	updated  *domain.Student
}

func (s *updateStudentService) Get(context.Context, primitive.ObjectID) (*domain.Student, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.existing, nil
}

func (s *updateStudentService) Update(_ context.Context, student *domain.Student) error {
	s.updated = student
	return nil
}

func studentRouter(svc service.StudentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewStudentHandler(svc)
	router.PUT("/students/:id", handler.UpdateStudent)
	return router
}

func updateBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(StudentRequest{
		Name:        "João Silva",
		Status:      "active",
		RenewalDate: "2026-02-20",
		EntryDate:   "2025-11-15",
		PlanValue:   180,
		PlanType:    "monthly",
	})
	require.NoError(t, err)
	return body
}

func TestUpdateStudentPreservesIntakeFields(t *testing.T) {
	submittedAt := time.Date(2025, time.November, 14, 10, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, time.November, 15, 9, 0, 0, 0, time.UTC)
	svc := &updateStudentService{
		stubStudentService: newStubStudentService(),
		existing: &domain.Student{
			ID:                   primitive.NewObjectID(),
			Name:                 "João Silva",
			AnamnesisToken:       "tok-joao",
			Anamnesis:            &domain.Anamnesis{FullName: "João Silva"},
			AnamnesisSubmittedAt: &submittedAt,
			CreatedAt:            createdAt,
		},
	}
	router := studentRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/students/"+svc.existing.ID.Hex(), bytes.NewReader(updateBody(t)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.updated)
	// The edit form never carries the intake fields; the replace must keep
	// the stored ones.
	assert.Equal(t, "tok-joao", svc.updated.AnamnesisToken)
	require.NotNil(t, svc.updated.Anamnesis)
	assert.Equal(t, "João Silva", svc.updated.Anamnesis.FullName)
	require.NotNil(t, svc.updated.AnamnesisSubmittedAt)
	assert.True(t, svc.updated.AnamnesisSubmittedAt.Equal(submittedAt))
	assert.True(t, svc.updated.CreatedAt.Equal(createdAt))
	assert.Equal(t, 180.0, svc.updated.PlanValue)
}

func TestUpdateStudentFailsClosedOnLookupError(t *testing.T) {
	svc := &updateStudentService{
		stubStudentService: newStubStudentService(),
		getErr:             errors.New("connection reset"),
	}
	router := studentRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/students/"+primitive.NewObjectID().Hex(), bytes.NewReader(updateBody(t)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// A transient read failure must never let the replace run with empty
	// intake fields.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Nil(t, svc.updated)
}

func TestUpdateStudentUnknownIDStillNoOps(t *testing.T) {
	svc := &updateStudentService{
		stubStudentService: newStubStudentService(),
		getErr:             service.ErrStudentNotFound,
	}
	router := studentRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/students/"+primitive.NewObjectID().Hex(), bytes.NewReader(updateBody(t)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Unknown ids keep the silent no-op replace semantics.
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.updated)
	assert.Empty(t, svc.updated.AnamnesisToken)
}
