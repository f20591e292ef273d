package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// NoResponseText is the reply used when Gemini returns no usable text.
const NoResponseText = "No response"

// contentGenerator is the part of *genai.GenerativeModel the service needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiService struct {
	client    *genai.Client
	model     contentGenerator
	modelName string
	log       logrus.FieldLogger
}

func NewGeminiService(apiKey, modelName string, log logrus.FieldLogger) (*GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is empty")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
		log:       log,
	}, nil
}

func (s *GeminiService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Reply sends prompt as the whole context of a single generation request and
// returns the text of the first candidate, or NoResponseText if there is none.
func (s *GeminiService) Reply(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error (%s): %w", s.modelName, err)
	}

	s.logCandidates(resp)

	text, ok := firstText(resp)
	if !ok {
		s.log.WithField("model", s.modelName).Warn("Gemini returned no text, using fallback")
		return NoResponseText, nil
	}
	return text, nil
}

func (s *GeminiService) logCandidates(resp *genai.GenerateContentResponse) {
	if resp == nil {
		return
	}
	for i, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		entry := s.log.WithFields(logrus.Fields{
			"candidate":     i,
			"finish_reason": cand.FinishReason.String(),
			"token_count":   cand.TokenCount,
		})
		if cand.FinishReason != genai.FinishReasonStop {
			entry.Warn("Gemini stopped early")
		} else {
			entry.Debug("Gemini candidate")
		}
	}
}

// firstText takes the text of the first part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", false
	}
	t, ok := cand.Content.Parts[0].(genai.Text)
	if !ok || t == "" {
		return "", false
	}
	return string(t), true
}
