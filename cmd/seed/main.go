// Seed inserts a set of pending payment-bearing rows into local DynamoDB so
// the checkout and webhook flows can be exercised end to end without the
// marketplace backend.
package main

import (
	"context"
	"log"
	"time"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/persistence/repository"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/config"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/infrastructure/database"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg := config.Load()
	ddb := database.ConnectDynamoDB(cfg)
	ctx := context.Background()
	now := time.Now().UTC()

	courses := repository.NewCourseDynamoRepository(ddb, cfg.Tables.Courses)
	events := repository.NewEventDynamoRepository(ddb, cfg.Tables.Events)
	enrollments := repository.NewEnrollmentDynamoRepository(ddb, cfg.Tables.Enrollments)
	sessions := repository.NewSessionDynamoRepository(ddb, cfg.Tables.Sessions)
	registrations := repository.NewEventRegistrationDynamoRepository(ddb, cfg.Tables.EventRegistrations)
	purchases := repository.NewProductPurchaseDynamoRepository(ddb, cfg.Tables.ProductPurchases)

	course, err := courses.Create(ctx, entities.Course{
		ID:             uuid.NewString(),
		MentorID:       uuid.NewString(),
		Title:          "Bootstrapping a Solo Business",
		PricePaise:     100000,
		CommissionRate: 15,
		Published:      true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		log.Fatalf("[seed] course create failed: %v", err)
	}
	log.Printf("[seed] course id=%s", course.ID)

	event, err := events.Create(ctx, entities.Event{
		ID:               uuid.NewString(),
		OrganizerID:      uuid.NewString(),
		Title:            "Founder Meetup",
		TicketPricePaise: 25000,
		CommissionRate:   10,
		StartsAt:         now.Add(14 * 24 * time.Hour),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		log.Fatalf("[seed] event create failed: %v", err)
	}
	log.Printf("[seed] event id=%s", event.ID)

	memberID := uuid.NewString()

	enrollment, err := enrollments.Create(ctx, entities.Enrollment{
		ID:                uuid.NewString(),
		CourseID:          course.ID,
		MemberID:          memberID,
		UserID:            memberID,
		PaymentStatus:     entities.PaymentStatusPending,
		EnrollmentStatus:  entities.EnrollmentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: course.PricePaise},
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		log.Fatalf("[seed] enrollment create failed: %v", err)
	}
	log.Printf("[seed] enrollment id=%s", enrollment.ID)

	session, err := sessions.Create(ctx, entities.MentorSession{
		ID:                uuid.NewString(),
		MentorID:          uuid.NewString(),
		MemberID:          memberID,
		UserID:            memberID,
		Status:            entities.SessionStatusScheduled,
		CommissionRate:    20,
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: 40000},
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		log.Fatalf("[seed] session create failed: %v", err)
	}
	log.Printf("[seed] session id=%s", session.ID)

	registration, err := registrations.Create(ctx, entities.EventRegistration{
		ID:                uuid.NewString(),
		EventID:           event.ID,
		MemberID:          memberID,
		UserID:            memberID,
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: event.TicketPricePaise},
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		log.Fatalf("[seed] registration create failed: %v", err)
	}
	log.Printf("[seed] registration id=%s", registration.ID)

	purchase, err := purchases.Create(ctx, entities.ProductPurchase{
		ID:                uuid.NewString(),
		ProductID:         uuid.NewString(),
		EventID:           event.ID,
		MemberID:          memberID,
		UserID:            memberID,
		PurchaseStatus:    entities.PurchaseStatusPending,
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: 50000},
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		log.Fatalf("[seed] purchase create failed: %v", err)
	}
	log.Printf("[seed] purchase id=%s", purchase.ID)
}
