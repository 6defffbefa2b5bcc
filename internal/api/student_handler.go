package api

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"coachdesk/coach-console/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentHandler holds the student service dependency.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// --- Request/Response Structs ---

type StudentRequest struct {
	Name         string  `json:"name" binding:"required"`
	Status       string  `json:"status" binding:"omitempty,oneof=active inactive renewal"`
	KanbanStatus string  `json:"kanbanStatus" binding:"omitempty,oneof=new_student in_development pending_update finished"`
	LastUpdate   string  `json:"lastUpdate" binding:"omitempty"`
	NotionURL    string  `json:"notionUrl" binding:"omitempty"`
	RenewalDate  string  `json:"renewalDate" binding:"required"`
	EntryDate    string  `json:"entryDate" binding:"required"`
	PlanValue    float64 `json:"planValue" binding:"omitempty,min=0"`
	PlanType     string  `json:"planType" binding:"omitempty,oneof=monthly bimonthly semiannual"`
	ProtocolType string  `json:"protocolType" binding:"omitempty,oneof=training diet both"`
}

// StudentResponse mirrors the stored record plus the renewal status, which
// is classified against today's date on every request.
type StudentResponse struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	Status               domain.StudentStatus `json:"status"`
	KanbanStatus         domain.KanbanStatus  `json:"kanbanStatus"`
	RenewalStatus        domain.RenewalStatus `json:"renewalStatus"`
	LastUpdate           time.Time            `json:"lastUpdate"`
	NotionURL            string               `json:"notionUrl,omitempty"`
	RenewalDate          time.Time            `json:"renewalDate"`
	EntryDate            time.Time            `json:"entryDate"`
	PlanValue            float64              `json:"planValue"`
	PlanType             domain.PlanType      `json:"planType,omitempty"`
	ProtocolType         domain.ProtocolType  `json:"protocolType,omitempty"`
	AnamnesisToken       string               `json:"anamnesisToken,omitempty"`
	Anamnesis            *domain.Anamnesis    `json:"anamnesis,omitempty"`
	AnamnesisSubmittedAt *time.Time           `json:"anamnesisSubmittedAt,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

type MoveKanbanRequest struct {
	KanbanStatus string `json:"kanbanStatus" binding:"required,oneof=new_student in_development pending_update finished"`
}

type NotionLinkRequest struct {
	NotionURL string `json:"notionUrl"`
}

// MapStudentToResponse converts a domain student, stamping the renewal
// classification for the moment of the request.
func MapStudentToResponse(s *domain.Student, now time.Time) StudentResponse {
	return StudentResponse{
		ID:                   s.ID.Hex(),
		Name:                 s.Name,
		Status:               s.Status,
		KanbanStatus:         s.KanbanStatus,
		RenewalStatus:        domain.ClassifyRenewal(s.RenewalDate, now),
		LastUpdate:           s.LastUpdate,
		NotionURL:            s.NotionURL,
		RenewalDate:          s.RenewalDate,
		EntryDate:            s.EntryDate,
		PlanValue:            s.PlanValue,
		PlanType:             s.PlanType,
		ProtocolType:         s.ProtocolType,
		AnamnesisToken:       s.AnamnesisToken,
		Anamnesis:            s.Anamnesis,
		AnamnesisSubmittedAt: s.AnamnesisSubmittedAt,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// MapStudentsToResponse converts a slice of domain students.
func MapStudentsToResponse(students []domain.Student, now time.Time) []StudentResponse {
	out := make([]StudentResponse, len(students))
	for i := range students {
		out[i] = MapStudentToResponse(&students[i], now)
	}
	return out
}

// parseDate accepts both full RFC3339 timestamps and bare YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (r *StudentRequest) toDomain() (*domain.Student, error) {
	renewalDate, err := parseDate(r.RenewalDate)
	if err != nil {
		return nil, fmt.Errorf("invalid renewalDate: %v", err)
	}
	entryDate, err := parseDate(r.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("invalid entryDate: %v", err)
	}
	lastUpdate, err := parseDate(r.LastUpdate)
	if err != nil {
		return nil, fmt.Errorf("invalid lastUpdate: %v", err)
	}
	if lastUpdate.IsZero() {
		lastUpdate = time.Now().UTC()
	}

	return &domain.Student{
		Name:         r.Name,
		Status:       domain.StudentStatus(r.Status),
		KanbanStatus: domain.KanbanStatus(r.KanbanStatus),
		LastUpdate:   lastUpdate,
		NotionURL:    r.NotionURL,
		RenewalDate:  renewalDate,
		EntryDate:    entryDate,
		PlanValue:    r.PlanValue,
		PlanType:     domain.PlanType(r.PlanType),
		ProtocolType: domain.ProtocolType(r.ProtocolType),
	}, nil
}

// --- Handler Methods ---

// ListStudents godoc
// @Summary List students
// @Description Lists students, optionally filtered by name search and membership status.
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive name search"
// @Param status query string false "Membership status filter" Enums(active, inactive, renewal)
// @Success 200 {array} StudentResponse "List of students"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	filter := repository.StudentFilter{
		Search: c.Query("search"),
		Status: domain.StudentStatus(c.Query("status")),
	}

	students, err := h.studentService.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list students.")
		return
	}
	c.JSON(http.StatusOK, MapStudentsToResponse(students, time.Now()))
}

// GetStudent godoc
// @Summary Get one student
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student's ObjectID Hex"
// @Success 200 {object} StudentResponse "Student"
// @Failure 400 {object} gin.H "Invalid id format"
// @Failure 404 {object} gin.H "Student not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student ID format.")
		return
	}

	student, err := h.studentService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve student.")
		}
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student, time.Now()))
}

// CreateStudent godoc
// @Summary Create a student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param student body StudentRequest true "Student details"
// @Success 201 {object} StudentResponse "Student created"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	student, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.studentService.Create(c.Request.Context(), student)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStudentData) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create student.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapStudentToResponse(created, time.Now()))
}

// UpdateStudent godoc
// @Summary Update a student
// @Description Replaces the whole student record. Unknown ids are silently ignored.
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student's ObjectID Hex"
// @Param student body StudentRequest true "Student details"
// @Success 200 {object} StudentResponse "Updated record as sent"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student ID format.")
		return
	}

	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	student, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	student.ID = id

	// Keep the anamnesis fields of the stored record: the edit form never
	// carries them, and a full replace must not wipe the intake data.
	existing, err := h.studentService.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		student.AnamnesisToken = existing.AnamnesisToken
		student.Anamnesis = existing.Anamnesis
		student.AnamnesisSubmittedAt = existing.AnamnesisSubmittedAt
		student.CreatedAt = existing.CreatedAt
	case errors.Is(err, service.ErrStudentNotFound):
		// Unknown id: the replace below is a silent no-op, nothing to keep.
	default:
		// A transient read failure must not let the replace run with empty
		// intake fields.
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve student.")
		return
	}

	if err := h.studentService.Update(c.Request.Context(), student); err != nil {
		if errors.Is(err, service.ErrInvalidStudentData) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update student.")
		}
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student, time.Now()))
}

// DeleteStudent godoc
// @Summary Delete a student
// @Description Removes the student. Unknown ids are a no-op; confirmation is a UI concern.
// @Tags Students
// @Security BearerAuth
// @Param id path string true "Student's ObjectID Hex"
// @Success 204 "Deleted"
// @Failure 400 {object} gin.H "Invalid id format"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student ID format.")
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete student.")
		return
	}
	c.Status(http.StatusNoContent)
}

// MoveKanban godoc
// @Summary Move a student on the kanban board
// @Description Changes only the workflow column; membership status and lastUpdate stay untouched.
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student's ObjectID Hex"
// @Param move body MoveKanbanRequest true "Target column"
// @Success 200 {object} StudentResponse "Student after the move"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Student not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/{id}/kanban [patch]
func (h *StudentHandler) MoveKanban(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student ID format.")
		return
	}

	var req MoveKanbanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err = h.studentService.MoveKanban(c.Request.Context(), id, domain.KanbanStatus(req.KanbanStatus))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrInvalidStudentData) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to move student.")
		}
		return
	}

	student, err := h.studentService.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve student after move.")
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student, time.Now()))
}

// UpdateNotionLink godoc
// @Summary Set a student's Notion link
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student's ObjectID Hex"
// @Param link body NotionLinkRequest true "New link (empty clears it)"
// @Success 200 {object} StudentResponse "Student after the update"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Student not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/{id}/notion-link [patch]
func (h *StudentHandler) UpdateNotionLink(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student ID format.")
		return
	}

	var req NotionLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err = h.studentService.UpdateNotionLink(c.Request.Context(), id, req.NotionURL)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update link.")
		}
		return
	}

	student, err := h.studentService.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve student after update.")
		return
	}
	c.JSON(http.StatusOK, MapStudentToResponse(student, time.Now()))
}

// GenerateAnamnesisLink godoc
// @Summary Generate the intake link for a student
// @Description Idempotent: the first call mints a token, later calls return the same link.
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student's ObjectID Hex"
// @Success 200 {object} service.AnamnesisLink "Shareable link"
// @Failure 400 {object} gin.H "Invalid id format"
// @Failure 404 {object} gin.H "Student not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/{id}/anamnesis-link [post]
func (h *StudentHandler) GenerateAnamnesisLink(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student ID format.")
		return
	}

	link, err := h.studentService.GenerateAnamnesisLink(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate intake link.")
		}
		return
	}
	c.JSON(http.StatusOK, link)
}
