package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentStatus is the membership (billing) status of a student.
type StudentStatus string

const (
	StatusActive   StudentStatus = "active"
	StatusInactive StudentStatus = "inactive"
	StatusRenewal  StudentStatus = "renewal"
)

// KanbanStatus tracks where a student sits in the coach's workflow board.
// It is independent from the membership status: a student can be "finished"
// on the board while still being an active (paying) member.
type KanbanStatus string

const (
	KanbanNewStudent    KanbanStatus = "new_student"
	KanbanInDevelopment KanbanStatus = "in_development"
	KanbanPendingUpdate KanbanStatus = "pending_update"
	KanbanFinished      KanbanStatus = "finished"
)

// PlanType is the billing cadence of a student's plan.
type PlanType string

const (
	PlanMonthly    PlanType = "monthly"
	PlanBimonthly  PlanType = "bimonthly"
	PlanSemiannual PlanType = "semiannual"
)

// ProtocolType indicates which kind of protocol the student receives.
type ProtocolType string

const (
	ProtocolTraining ProtocolType = "training"
	ProtocolDiet     ProtocolType = "diet"
	ProtocolBoth     ProtocolType = "both"
)

// Student represents a coached student/client.
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Status       StudentStatus      `bson:"status" json:"status"`
	KanbanStatus KanbanStatus       `bson:"kanbanStatus" json:"kanbanStatus"`
	LastUpdate   time.Time          `bson:"lastUpdate" json:"lastUpdate"`
	NotionURL    string             `bson:"notionUrl,omitempty" json:"notionUrl,omitempty"`
	RenewalDate  time.Time          `bson:"renewalDate" json:"renewalDate"`
	EntryDate    time.Time          `bson:"entryDate" json:"entryDate"`
	PlanValue    float64            `bson:"planValue" json:"planValue"`
	PlanType     PlanType           `bson:"planType,omitempty" json:"planType,omitempty"`
	ProtocolType ProtocolType       `bson:"protocolType,omitempty" json:"protocolType,omitempty"`

	// Intake questionnaire. The token is generated at most once and never
	// changes afterwards; the anamnesis itself is filled in by the student
	// through the public intake link.
	AnamnesisToken       string     `bson:"anamnesisToken,omitempty" json:"anamnesisToken,omitempty"`
	Anamnesis            *Anamnesis `bson:"anamnesis,omitempty" json:"anamnesis,omitempty"`
	AnamnesisSubmittedAt *time.Time `bson:"anamnesisSubmittedAt,omitempty" json:"anamnesisSubmittedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MonthlyValue returns the plan value normalized to its monthly equivalent.
// Unknown or missing plan types count as monthly (full value).
func (s *Student) MonthlyValue() float64 {
	switch s.PlanType {
	case PlanBimonthly:
		return s.PlanValue / 2
	case PlanSemiannual:
		return s.PlanValue / 6
	default:
		return s.PlanValue
	}
}

// CountsTowardMRR reports whether the student contributes to recurring
// revenue. Inactive students are excluded.
func (s *Student) CountsTowardMRR() bool {
	return s.Status == StatusActive || s.Status == StatusRenewal
}
