package events

import (
	"context"
	"log"

	"careernest/internal/models"
)

type Publisher interface {
	PublishJobDeleted(ctx context.Context, jobID, jobTitle string, seekerIDs []string) error
	PublishCompanyStatusChanged(ctx context.Context, companyID, name, email string, status models.VerificationStatus) error

	Close() error
}

type EventPublisher struct {
	rabbitMQ *RabbitMQClient
	enabled  bool
}

func NewEventPublisher(rabbitURI string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{
			rabbitMQ: nil,
			enabled:  false,
		}, nil
	}

	client, err := NewRabbitMQClient(rabbitURI)
	if err != nil {
		return nil, err
	}

	if err = client.setupExchangesAndQueues(); err != nil {
		client.Close()
		return nil, err
	}

	return &EventPublisher{
		rabbitMQ: client,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) PublishJobDeleted(ctx context.Context, jobID, jobTitle string, seekerIDs []string) error {
	if !p.enabled {
		log.Println("Event publishing is disabled, skipping JobDeleted")
		return nil
	}

	event := NewJobDeletedEvent(jobID, jobTitle, seekerIDs)
	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err = p.rabbitMQ.PublishEvent(JobEventsExchange, string(JobDeleted), eventData); err != nil {
		return err
	}

	log.Printf("Published JobDeleted event for job ID: %s (%d applicants)", jobID, len(seekerIDs))
	return nil
}

func (p *EventPublisher) PublishCompanyStatusChanged(ctx context.Context, companyID, name, email string, status models.VerificationStatus) error {
	if !p.enabled {
		log.Println("Event publishing is disabled, skipping CompanyStatusChanged")
		return nil
	}

	event := NewCompanyStatusChangedEvent(companyID, name, email, status)
	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err = p.rabbitMQ.PublishEvent(CompanyEventsExchange, string(CompanyStatusChanged), eventData); err != nil {
		return err
	}

	log.Printf("Published CompanyStatusChanged event for company ID: %s -> %s", companyID, status)
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled || p.rabbitMQ == nil {
		return nil
	}
	return p.rabbitMQ.Close()
}
