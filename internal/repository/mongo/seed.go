package mongo

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"context"
	"log"
	"time"
)

// SeedStudents populates the students collection with the fixed starter
// dataset, but only when the collection is completely empty. A corrupt or
// partial collection is never overwritten.
func SeedStudents(ctx context.Context, repo repository.StudentRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Students collection is empty, seeding initial dataset...")
	for i := range initialStudents {
		if _, err := repo.Create(ctx, &initialStudents[i]); err != nil {
			return err
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var initialStudents = []domain.Student{
	{
		Name:         "João Silva",
		Status:       domain.StatusActive,
		KanbanStatus: domain.KanbanPendingUpdate,
		LastUpdate:   date(2025, time.December, 28),
		NotionURL:    "https://notion.so/joao-silva",
		RenewalDate:  date(2026, time.January, 20),
		EntryDate:    date(2025, time.November, 15),
		PlanValue:    150,
		PlanType:     domain.PlanMonthly,
		ProtocolType: domain.ProtocolTraining,
		AnamnesisSubmittedAt: func() *time.Time {
			t := time.Date(2025, time.November, 14, 10, 0, 0, 0, time.UTC)
			return &t
		}(),
		Anamnesis: &domain.Anamnesis{
			FullName:             "João Silva",
			Email:                "joao.silva@email.com",
			WhatsApp:             "11999999999",
			Age:                  "28",
			Sex:                  domain.SexMale,
			Weight:               "82",
			Height:               "178",
			Pathology:            "Não possui",
			Injuries:             "Lesão no ombro direito há 2 anos",
			Medications:          "Nenhuma",
			ExperienceLevel:      domain.ExperienceIntermediate,
			TrainingAvailability: "5x na semana, Smart Fit",
			CurrentTraining:      "ABCDE",
			DietaryHistory:       "Come bem, mas erra no fds",
			Restrictions:         "Intolerância leve a lactose",
			AestheticGoals:       "Hipertrofia e definição",
			Difficulties:         "Manter a dieta no fim de semana",
			CurrentDiet:          "3 refeições sólidas + whey",
			Supplements:          "Creatina, Whey",
			FinalNotes:           "Focado em melhorar o shape para o verão",
		},
	},
	{
		Name:         "Maria Santos",
		Status:       domain.StatusRenewal,
		KanbanStatus: domain.KanbanInDevelopment,
		LastUpdate:   date(2025, time.December, 25),
		NotionURL:    "https://notion.so/maria-santos",
		RenewalDate:  date(2025, time.December, 30),
		EntryDate:    date(2025, time.October, 10),
		PlanValue:    200,
		PlanType:     domain.PlanBimonthly,
		ProtocolType: domain.ProtocolDiet,
	},
	{
		Name:         "Carlos Oliveira",
		Status:       domain.StatusActive,
		KanbanStatus: domain.KanbanFinished,
		LastUpdate:   date(2025, time.December, 29),
		RenewalDate:  date(2026, time.February, 15),
		EntryDate:    date(2025, time.December, 5),
		PlanValue:    150,
		PlanType:     domain.PlanMonthly,
		ProtocolType: domain.ProtocolBoth,
	},
	{
		Name:         "Ana Costa",
		Status:       domain.StatusInactive,
		KanbanStatus: domain.KanbanFinished,
		LastUpdate:   date(2025, time.November, 20),
		RenewalDate:  date(2025, time.November, 20),
		EntryDate:    date(2025, time.September, 1),
		PlanValue:    100,
		PlanType:     domain.PlanMonthly,
		ProtocolType: domain.ProtocolTraining,
	},
}
