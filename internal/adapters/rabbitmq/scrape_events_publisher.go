package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
	"property-scraper-service/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// propertiesSavedEventDTO - событие о пополнении каталога
type propertiesSavedEventDTO struct {
	SavedAt    time.Time               `json:"saved_at"`
	Count      int                     `json:"count"`
	Properties []domain.PropertyRecord `json:"properties"`
}

// ScrapeEventsPublisher отправляет сохраненные записи во внешний обменник
type ScrapeEventsPublisher struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
	logger     port.LoggerPort
}

func NewScrapeEventsPublisher(producer *rabbitmq_producer.Publisher, routingKey string, logger port.LoggerPort) (*ScrapeEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &ScrapeEventsPublisher{
		producer:   producer,
		routingKey: routingKey,
		logger:     logger.WithFields(port.Fields{"component": "ScrapeEventsPublisher"}),
	}, nil
}

// PublishSaved публикует пачку записей одним сообщением
func (p *ScrapeEventsPublisher) PublishSaved(ctx context.Context, records []domain.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}

	event := propertiesSavedEventDTO{
		SavedAt:    time.Now().UTC(),
		Count:      len(records),
		Properties: records,
	}
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal saved properties event", err, nil)
		return fmt.Errorf("failed to marshal saved properties event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    "PropertiesSavedEvent",
			"event-version": "1.0.0",
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.producer.Publish(publishCtx, p.routingKey, msg); err != nil {
		p.logger.Error("Failed to publish saved properties event", err, port.Fields{
			"routing_key": p.routingKey,
			"count":       len(records),
		})
		return err
	}

	p.logger.Info("Published saved properties event", port.Fields{
		"routing_key": p.routingKey,
		"count":       len(records),
	})
	return nil
}
