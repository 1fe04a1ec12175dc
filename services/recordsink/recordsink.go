package recordsink

import (
	"context"
	"log"
	"sync"

	"hdbackend/services"

	"hdbackend/models"
)

// RecordSinkService persists ingested messages and fans them out to live
// observers. A save failure is logged but never blocks notification - the UI
// should still see the message even if storage hiccups.
type RecordSinkService struct {
	messagesService services.MessagesService

	mu       sync.Mutex
	handlers []services.MessageHandler
}

func NewRecordSinkService(messagesService services.MessagesService) *RecordSinkService {
	return &RecordSinkService{messagesService: messagesService}
}

// OnMessage registers a live observer invoked synchronously for every
// ingested message
func (s *RecordSinkService) OnMessage(handler services.MessageHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Save upserts the message (idempotent, keyed by message ID) and notifies all
// registered observers
func (s *RecordSinkService) Save(ctx context.Context, message *models.Message) {
	if err := s.messagesService.UpsertMessage(ctx, message); err != nil {
		log.Printf("❌ Failed to save message %s: %v", message.ID, err)
	}

	s.mu.Lock()
	handlers := make([]services.MessageHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, handler := range handlers {
		s.notify(handler, message)
	}
}

// notify shields the ingestion tick from observer panics
func (s *RecordSinkService) notify(handler services.MessageHandler, message *models.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Message observer panicked for message %s: %v", message.ID, r)
		}
	}()
	handler(message)
}
