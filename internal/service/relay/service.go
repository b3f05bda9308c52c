package relay

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmoncada/gemchat/internal/analysis/fallback"
	chatmodel "github.com/pmoncada/gemchat/internal/model/chat"
	"github.com/pmoncada/gemchat/internal/service/ai"
	chatstore "github.com/pmoncada/gemchat/internal/service/chat"
)

// ErrEmptyMessage rejects requests whose message is blank after trimming.
var ErrEmptyMessage = errors.New("message is required")

// Provider generates a reply from the hosted model. *ai.Service satisfies it.
type Provider interface {
	GenerateReply(ctx context.Context, history []chatmodel.Turn, message string) (string, error)
}

// Service orchestrates one chat exchange: the provider first, the canned
// fallback responder when the provider is missing or fails.
type Service struct {
	provider  Provider
	responder *fallback.Responder
	store     *chatstore.Store
	timeout   time.Duration
}

// NewService wires the relay. provider may be nil when no credentials are
// configured; every exchange then uses the fallback responder.
func NewService(provider Provider, responder *fallback.Responder, store *chatstore.Store, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		provider:  provider,
		responder: responder,
		store:     store,
		timeout:   timeout,
	}
}

// HandleChat validates the request, produces a reply, records the exchange in
// the session store and returns the response payload.
func (s *Service) HandleChat(ctx context.Context, req chatmodel.Request) (chatmodel.Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return chatmodel.Response{}, ErrEmptyMessage
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = chatmodel.DefaultSessionID
	}

	requestID := uuid.NewString()
	reply, usingRealAI := s.generate(ctx, requestID, req.History, message)

	s.store.Append(sessionID,
		chatmodel.Turn{Role: chatmodel.RoleUser, Content: message},
		chatmodel.Turn{Role: chatmodel.RoleAssistant, Content: reply},
	)

	return chatmodel.Response{
		Response:    reply,
		SessionID:   sessionID,
		UsingRealAI: usingRealAI,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *Service) generate(ctx context.Context, requestID string, history []chatmodel.Turn, message string) (string, bool) {
	if s.provider == nil {
		return s.responder.Reply(message, history), false
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.provider.GenerateReply(callCtx, history, message)
	if err == nil {
		log.Printf("[relay] id=%s provider replied, length=%d", requestID, len(reply))
		return reply, true
	}

	// Provider failures are absorbed: the client still gets a 200 with a
	// canned reply and a note that the fallback kicked in.
	log.Printf("[relay] id=%s provider failed, serving fallback: %v", requestID, err)
	return s.responder.Reply(message, history) + "\n\n" + ai.FallbackNote(err), false
}
