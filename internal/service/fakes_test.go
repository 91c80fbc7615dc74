package service

import (
	"context"
	"sync"

	"chatdesk/internal/models"
	"chatdesk/internal/repository"
	"chatdesk/pkg/anthropic"
	"chatdesk/pkg/pinecone"
	"chatdesk/pkg/slack"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	mu    sync.Mutex
	dim   int
	err   error
	calls []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	v := make([]float32, f.dim)
	for i := range v {
		v[i] = 0.1
	}
	return v, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

type fakeIndex struct {
	mu      sync.Mutex
	upserts []pinecone.Vector
	// failUpsert rejects matching vectors to simulate per-chunk failures.
	failUpsert func(v pinecone.Vector) error

	queryResult []pinecone.Match
	queryErr    error
	lastVector  []float32
	lastTopK    int
	lastBotID   string
}

func (f *fakeIndex) Upsert(_ context.Context, vectors []pinecone.Vector) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, v := range vectors {
		if f.failUpsert != nil {
			if err := f.failUpsert(v); err != nil {
				return err
			}
		}
		f.upserts = append(f.upserts, v)
	}
	return nil
}

func (f *fakeIndex) Query(_ context.Context, vector []float32, topK int, botID string) ([]pinecone.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastVector = vector
	f.lastTopK = topK
	f.lastBotID = botID
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryResult, nil
}

type fakeGenerator struct {
	reply       string
	tokens      int
	err         error
	lastSystem  string
	lastTurns   []anthropic.Turn
	lastMessage string
}

func (f *fakeGenerator) Complete(_ context.Context, system string, turns []anthropic.Turn, message string) (*anthropic.Completion, error) {
	f.lastSystem = system
	f.lastTurns = turns
	f.lastMessage = message
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.Completion{Text: f.reply, OutputTokens: f.tokens}, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	urls    []string
	notices []slack.Escalation
	err     error
}

func (f *fakeNotifier) Notify(_ context.Context, webhookURL string, esc slack.Escalation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.urls = append(f.urls, webhookURL)
	f.notices = append(f.notices, esc)
	return f.err
}

type fakeChatbotStore struct {
	mu   sync.Mutex
	bots map[uuid.UUID]*models.Chatbot
}

func newFakeChatbotStore(bots ...*models.Chatbot) *fakeChatbotStore {
	s := &fakeChatbotStore{bots: make(map[uuid.UUID]*models.Chatbot)}
	for _, bot := range bots {
		s.bots[bot.ID] = bot
	}
	return s
}

func (s *fakeChatbotStore) Create(_ context.Context, bot *models.Chatbot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bots[bot.ID] = bot
	return nil
}

func (s *fakeChatbotStore) GetByID(_ context.Context, id uuid.UUID) (*models.Chatbot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bot, ok := s.bots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return bot, nil
}

func (s *fakeChatbotStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Chatbot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var bots []*models.Chatbot
	for _, bot := range s.bots {
		if bot.UserID == userID {
			bots = append(bots, bot)
		}
	}
	return bots, nil
}

func (s *fakeChatbotStore) Update(_ context.Context, bot *models.Chatbot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bots[bot.ID] = bot
	return nil
}

func (s *fakeChatbotStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bots, id)
	return nil
}

type fakeConversationStore struct {
	mu    sync.Mutex
	convs map[uuid.UUID]*models.Conversation
}

func newFakeConversationStore(convs ...*models.Conversation) *fakeConversationStore {
	s := &fakeConversationStore{convs: make(map[uuid.UUID]*models.Conversation)}
	for _, conv := range convs {
		s.convs[conv.ID] = conv
	}
	return s
}

func (s *fakeConversationStore) Create(_ context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[conv.ID] = conv
	return nil
}

func (s *fakeConversationStore) GetByID(_ context.Context, id uuid.UUID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.convs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return conv, nil
}

func (s *fakeConversationStore) MarkEscalated(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.convs[id]; ok {
		conv.Escalated = true
	}
	return nil
}

type fakeMessageStore struct {
	mu        sync.Mutex
	messages  []*models.Message
	createErr error
}

func (s *fakeMessageStore) Create(_ context.Context, msg *models.Message) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *fakeMessageStore) ListRecent(_ context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*models.Message
	for _, msg := range s.messages {
		if msg.ConversationID == conversationID {
			all = append(all, msg)
		}
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

type fakeKnowledgeStore struct {
	mu        sync.Mutex
	chunks    []*models.KnowledgeChunk
	createErr error
}

func (s *fakeKnowledgeStore) Create(_ context.Context, chunk *models.KnowledgeChunk) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunk)
	return nil
}

func (s *fakeKnowledgeStore) ListVectorIDs(_ context.Context, chatbotID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, chunk := range s.chunks {
		if chunk.ChatbotID == chatbotID {
			ids = append(ids, chunk.VectorID)
		}
	}
	return ids, nil
}

func (s *fakeKnowledgeStore) DeleteByChatbot(_ context.Context, chatbotID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.chunks[:0]
	for _, chunk := range s.chunks {
		if chunk.ChatbotID != chatbotID {
			kept = append(kept, chunk)
		}
	}
	s.chunks = kept
	return nil
}
