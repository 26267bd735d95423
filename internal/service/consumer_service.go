package service

import (
	"context"
	"encoding/json"
	"log"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"
	pktNats "notekeeper-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the in-process note-changed queue and fans each
// change out onto the NATS bus for the notification pipeline.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishNoteChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.eventPublisher == nil {
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// A deleted note has no row left to load; nothing to announce.
	if payload.EventType == events.TypeNoteDeleted {
		msg.Ack()
		return
	}

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: payload.NoteId})
	if err != nil {
		log.Printf("[ERROR] Failed to get note %s: %v", payload.NoteId, err)
		msg.Nack()
		return
	}
	if note == nil {
		// Deleted between publish and consume. Nothing to announce.
		msg.Ack()
		return
	}

	evt := events.NewNoteEvent(payload.EventType, note.Id, note.UserId, note.Title)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[ERROR] Failed to publish %s event for note %s: %v", payload.EventType, note.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
