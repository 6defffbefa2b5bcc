package domain

// Sex is the biological sex reported on the intake form.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ExperienceLevel is the self-reported training experience.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Anamnesis is the intake questionnaire a student fills in once through the
// public link. It is a flat record owned by its Student; everything is
// free-text except the two enumerations.
type Anamnesis struct {
	// Personal info
	FullName string `bson:"fullName" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	WhatsApp string `bson:"whatsapp" json:"whatsapp"`
	Age      string `bson:"age" json:"age"`
	Sex      Sex    `bson:"sex" json:"sex"`
	Weight   string `bson:"weight" json:"weight"`
	Height   string `bson:"height" json:"height"`

	// Health history
	Pathology   string `bson:"pathology" json:"pathology"`
	Injuries    string `bson:"injuries" json:"injuries"`
	Medications string `bson:"medications" json:"medications"`

	// Training history
	ExperienceLevel      ExperienceLevel `bson:"experienceLevel" json:"experienceLevel"`
	TrainingAvailability string          `bson:"trainingAvailability" json:"trainingAvailability"`
	CurrentTraining      string          `bson:"currentTraining" json:"currentTraining"`

	// Nutrition & goals
	DietaryHistory string `bson:"dietaryHistory" json:"dietaryHistory"`
	Restrictions   string `bson:"restrictions" json:"restrictions"`
	AestheticGoals string `bson:"aestheticGoals" json:"aestheticGoals"`
	Difficulties   string `bson:"difficulties" json:"difficulties"`
	CurrentDiet    string `bson:"currentDiet" json:"currentDiet"`
	Supplements    string `bson:"supplements" json:"supplements"`

	FinalNotes string `bson:"finalNotes" json:"finalNotes"`
}
