package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"careernest/internal/mailer"
	"careernest/internal/models"
	"careernest/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// EventConsumer turns committed domain events into their side effects:
// seeker notifications for deleted jobs and status emails for verification
// decisions. Both run after the triggering transition has already
// committed, so a failure here never rolls anything back.
type EventConsumer struct {
	rabbitMQ         *RabbitMQClient
	notificationRepo *repository.NotificationRepository
	sender           mailer.Sender
	enabled          bool
}

func NewEventConsumer(rabbitURI string, notificationRepo *repository.NotificationRepository, sender mailer.Sender) (*EventConsumer, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event consumption is disabled")
		return &EventConsumer{enabled: false}, nil
	}

	client, err := NewRabbitMQClient(rabbitURI)
	if err != nil {
		return nil, err
	}

	if err = client.setupExchangesAndQueues(); err != nil {
		client.Close()
		return nil, err
	}

	return &EventConsumer{
		rabbitMQ:         client,
		notificationRepo: notificationRepo,
		sender:           sender,
		enabled:          true,
	}, nil
}

func (c *EventConsumer) Start() error {
	if !c.enabled {
		return nil
	}

	jobDeliveries, err := c.rabbitMQ.Consume(JobDeletedQueue)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", JobDeletedQueue, err)
	}

	companyDeliveries, err := c.rabbitMQ.Consume(CompanyStatusChangedQueue)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", CompanyStatusChangedQueue, err)
	}

	go func() {
		for delivery := range jobDeliveries {
			if err := c.handleJobDeleted(delivery.Body); err != nil {
				log.Printf("Error handling JobDeleted event: %v", err)
			}
			delivery.Ack(false)
		}
	}()

	go func() {
		for delivery := range companyDeliveries {
			if err := c.handleCompanyStatusChanged(delivery.Body); err != nil {
				log.Printf("Error handling CompanyStatusChanged event: %v", err)
			}
			delivery.Ack(false)
		}
	}()

	log.Println("Event consumer started")
	return nil
}

func (c *EventConsumer) handleJobDeleted(body []byte) error {
	var event JobDeletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("malformed JobDeleted event: %w", err)
	}

	notifications := make([]*models.Notification, 0, len(event.SeekerIDs))
	for _, seekerHex := range event.SeekerIDs {
		seekerID, err := bson.ObjectIDFromHex(seekerHex)
		if err != nil {
			log.Printf("Skipping invalid seeker ID in JobDeleted event: %s", seekerHex)
			continue
		}
		notifications = append(notifications, &models.Notification{
			SeekerID: seekerID,
			Title:    "Job posting removed",
			Message:  fmt.Sprintf("The job %q you applied to has been removed by the company.", event.JobTitle),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return c.notificationRepo.NewMany(ctx, notifications)
}

func (c *EventConsumer) handleCompanyStatusChanged(body []byte) error {
	var event CompanyStatusChangedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("malformed CompanyStatusChanged event: %w", err)
	}

	var subject, msg string
	switch event.NewStatus {
	case models.StatusVerified:
		subject = "Your company has been verified"
		msg = fmt.Sprintf("Hello %s,\n\nYour company account has been verified. You can now post jobs on CareerNest.", event.CompanyName)
	case models.StatusRejected:
		subject = "Your verification was rejected"
		msg = fmt.Sprintf("Hello %s,\n\nYour verification request was rejected. You may resubmit your documents for another review.", event.CompanyName)
	default:
		return nil
	}

	if err := c.sender.Send(event.CompanyEmail, subject, msg); err != nil {
		// Status already committed; delivery failure is logged and dropped.
		log.Printf("Failed to send status email to %s: %v", event.CompanyEmail, err)
	}
	return nil
}

func (c *EventConsumer) Close() error {
	if !c.enabled || c.rabbitMQ == nil {
		return nil
	}
	return c.rabbitMQ.Close()
}
