package api

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AnamnesisHandler serves the public intake flow behind /anamnese/{token}.
// These routes are unauthenticated: possession of the token is the access
// control.
type AnamnesisHandler struct {
	studentService service.StudentService
}

// NewAnamnesisHandler creates a new AnamnesisHandler.
func NewAnamnesisHandler(studentService service.StudentService) *AnamnesisHandler {
	return &AnamnesisHandler{studentService: studentService}
}

// --- Request/Response Structs ---

// Intake form states
const (
	IntakeStatePending   = "pending"
	IntakeStateSubmitted = "submitted"
)

// IntakeFormResponse tells the form page what to render: the editable form
// pre-filled with the student's name, or the already-submitted notice.
type IntakeFormResponse struct {
	State       string     `json:"state"`
	StudentName string     `json:"studentName"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

type SubmitAnamnesisRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
	Age      string `json:"age"`
	Sex      string `json:"sex" binding:"omitempty,oneof=male female"`
	Weight   string `json:"weight"`
	Height   string `json:"height"`

	Pathology   string `json:"pathology"`
	Injuries    string `json:"injuries"`
	Medications string `json:"medications"`

	ExperienceLevel      string `json:"experienceLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	TrainingAvailability string `json:"trainingAvailability"`
	CurrentTraining      string `json:"currentTraining"`

	DietaryHistory string `json:"dietaryHistory"`
	Restrictions   string `json:"restrictions"`
	AestheticGoals string `json:"aestheticGoals"`
	Difficulties   string `json:"difficulties"`
	CurrentDiet    string `json:"currentDiet"`
	Supplements    string `json:"supplements"`

	FinalNotes string `json:"finalNotes"`
}

func (r *SubmitAnamnesisRequest) toDomain() *domain.Anamnesis {
	return &domain.Anamnesis{
		FullName:             r.FullName,
		Email:                r.Email,
		WhatsApp:             r.WhatsApp,
		Age:                  r.Age,
		Sex:                  domain.Sex(r.Sex),
		Weight:               r.Weight,
		Height:               r.Height,
		Pathology:            r.Pathology,
		Injuries:             r.Injuries,
		Medications:          r.Medications,
		ExperienceLevel:      domain.ExperienceLevel(r.ExperienceLevel),
		TrainingAvailability: r.TrainingAvailability,
		CurrentTraining:      r.CurrentTraining,
		DietaryHistory:       r.DietaryHistory,
		Restrictions:         r.Restrictions,
		AestheticGoals:       r.AestheticGoals,
		Difficulties:         r.Difficulties,
		CurrentDiet:          r.CurrentDiet,
		Supplements:          r.Supplements,
		FinalNotes:           r.FinalNotes,
	}
}

// --- Handler Methods ---

// GetIntakeForm godoc
// @Summary Resolve an intake link
// @Description Public. Three outcomes: unknown token, form already submitted, or the editable form pre-filled with the student's name.
// @Tags Anamnesis
// @Produce json
// @Param token path string true "Intake token"
// @Success 200 {object} IntakeFormResponse "Form state"
// @Failure 404 {object} gin.H "Token not recognized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /anamnese/{token} [get]
func (h *AnamnesisHandler) GetIntakeForm(c *gin.Context) {
	student, err := h.studentService.GetStudentByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidIntakeToken) {
			abortWithError(c, http.StatusNotFound, "This intake link is not valid.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve intake link.")
		}
		return
	}

	resp := IntakeFormResponse{
		State:       IntakeStatePending,
		StudentName: student.Name,
	}
	if student.Anamnesis != nil {
		resp.State = IntakeStateSubmitted
		resp.SubmittedAt = student.AnamnesisSubmittedAt
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitIntakeForm godoc
// @Summary Submit the intake form
// @Description Public. Stores the questionnaire on the student matching the token.
// @Tags Anamnesis
// @Accept json
// @Produce json
// @Param token path string true "Intake token"
// @Param form body SubmitAnamnesisRequest true "Questionnaire answers"
// @Success 200 {object} gin.H "Submitted"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Token not recognized"
// @Failure 409 {object} gin.H "Already submitted and re-submission is disabled"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /anamnese/{token} [post]
func (h *AnamnesisHandler) SubmitIntakeForm(c *gin.Context) {
	var req SubmitAnamnesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.studentService.SubmitAnamnesis(c.Request.Context(), c.Param("token"), req.toDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidIntakeToken) {
			abortWithError(c, http.StatusNotFound, "This intake link is not valid.")
		} else if errors.Is(err, service.ErrAlreadySubmitted) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrInvalidStudentData) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to submit intake form.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Anamnesis submitted successfully."})
}
