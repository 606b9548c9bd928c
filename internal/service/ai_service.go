package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/pkg/config"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
	"github.com/eduboost/course-portal-api/pkg/openai"
)

type aiClient interface {
	Configured() bool
	ChatCompletion(ctx context.Context, temperature float64, messages []openai.Message, responseFormat json.RawMessage) (string, error)
	Speech(ctx context.Context, input string) ([]byte, error)
}

// flashcardsSchema constrains the completion to a JSON object holding
// a flashcards array, so parsing failures mean a genuinely broken
// upstream rather than free-form prose.
var flashcardsSchema = json.RawMessage(`{
  "type": "json_schema",
  "json_schema": {
    "name": "flashcards",
    "strict": true,
    "schema": {
      "type": "object",
      "properties": {
        "flashcards": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "question": {"type": "string"},
              "answer": {"type": "string"}
            },
            "required": ["question", "answer"],
            "additionalProperties": false
          }
        }
      },
      "required": ["flashcards"],
      "additionalProperties": false
    }
  }
}`)

const (
	summarizeSystemPrompt = "Tu es un assistant pédagogique. Résume le contenu de cours fourni en français, " +
		"en 5 à 8 points clés concis. Utilise des tirets. Ne rajoute aucune introduction ni conclusion."
	flashcardsSystemPrompt = "Tu es un assistant pédagogique. Génère 5 à 10 flashcards (question/réponse) " +
		"en français à partir du contenu de cours fourni. Les questions doivent être courtes et précises."
)

// AIService proxies course content to the upstream model provider for
// summaries, flashcard decks and podcast audio. The API key never
// reaches the browser; this layer is the only place it is attached.
type AIService struct {
	client aiClient
	limits config.LimitsConfig
	logger *zap.Logger
}

// NewAIService constructs the proxy service.
func NewAIService(client aiClient, limits config.LimitsConfig, logger *zap.Logger) *AIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIService{client: client, limits: limits, logger: logger}
}

// Configured reports whether the upstream client has credentials.
func (s *AIService) Configured() bool {
	return s.client.Configured()
}

// Summarize produces a bullet-point summary of course content.
func (s *AIService) Summarize(ctx context.Context, req dto.SummarizeRequest) (dto.SummarizeResponse, error) {
	content, err := requiredText("content", req.Content, s.limits.MaxContentLength)
	if err != nil {
		return dto.SummarizeResponse{}, err
	}

	summary, err := s.client.ChatCompletion(ctx, 0.3, []openai.Message{
		{Role: "system", Content: summarizeSystemPrompt},
		{Role: "user", Content: content},
	}, nil)
	if err != nil {
		return dto.SummarizeResponse{}, err
	}
	return dto.SummarizeResponse{Summary: summary}, nil
}

// Flashcards generates a question/answer deck from course content.
// Each card gets a server-assigned id so the client can track review
// state without inventing keys.
func (s *AIService) Flashcards(ctx context.Context, req dto.FlashcardsRequest) (dto.FlashcardsResponse, error) {
	content, err := requiredText("content", req.Content, s.limits.MaxContentLength)
	if err != nil {
		return dto.FlashcardsResponse{}, err
	}

	raw, err := s.client.ChatCompletion(ctx, 0.4, []openai.Message{
		{Role: "system", Content: flashcardsSystemPrompt},
		{Role: "user", Content: content},
	}, flashcardsSchema)
	if err != nil {
		return dto.FlashcardsResponse{}, err
	}

	var parsed struct {
		Flashcards []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Warn("flashcards completion was not valid JSON", zap.Error(err))
		return dto.FlashcardsResponse{}, appErrors.New("UPSTREAM_INVALID_RESPONSE", http.StatusBadGateway, "OpenAI returned an unparseable flashcards payload")
	}

	cards := make([]dto.Flashcard, 0, len(parsed.Flashcards))
	for _, card := range parsed.Flashcards {
		question := strings.TrimSpace(card.Question)
		answer := strings.TrimSpace(card.Answer)
		if question == "" || answer == "" {
			continue
		}
		cards = append(cards, dto.Flashcard{ID: uuid.NewString(), Question: question, Answer: answer})
	}
	return dto.FlashcardsResponse{Flashcards: cards}, nil
}

// Podcast synthesizes the given text to mp3 and returns it as a data
// URL, keeping the client storage-free.
func (s *AIService) Podcast(ctx context.Context, req dto.PodcastRequest) (dto.PodcastResponse, error) {
	text, err := requiredText("text", req.Text, s.limits.MaxPodcastTextLength)
	if err != nil {
		return dto.PodcastResponse{}, err
	}

	audio, err := s.client.Speech(ctx, text)
	if err != nil {
		return dto.PodcastResponse{}, err
	}

	encoded := base64.StdEncoding.EncodeToString(audio)
	return dto.PodcastResponse{AudioDataURL: "data:audio/mpeg;base64," + encoded}, nil
}
