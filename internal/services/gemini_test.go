package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type fakeModel struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls int
	parts []genai.Part
}

func (m *fakeModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.parts = parts
	return m.resp, m.err
}

func newTestService(model contentGenerator) *GeminiService {
	log, _ := logtest.NewNullLogger()
	return &GeminiService{model: model, modelName: "gemini-test", log: log}
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]genai.Part, len(texts))
	for i, t := range texts {
		parts[i] = genai.Text(t)
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: parts},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestFirstText(t *testing.T) {
	tests := []struct {
		name   string
		resp   *genai.GenerateContentResponse
		want   string
		wantOK bool
	}{
		{"nil response", nil, "", false},
		{"no candidates", &genai.GenerateContentResponse{}, "", false},
		{"nil candidate", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{nil}}, "", false},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "", false},
		{"no parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}}, "", false},
		{"empty text", textResponse(""), "", false},
		{"first part only", textResponse("hi there", "ignored"), "hi there", true},
		{
			"non-text first part",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}, genai.Text("late")}},
			}}},
			"", false,
		},
		{
			"second candidate ignored",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("first")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
			}},
			"first", true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := firstText(tc.resp)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tc.want, tc.wantOK, got, ok)
			}
		})
	}
}

func TestReply_ReturnsFirstCandidateText(t *testing.T) {
	model := &fakeModel{resp: textResponse("hi there")}
	s := newTestService(model)

	got, err := s.Reply(context.Background(), "Say hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi there" {
		t.Fatalf("expected %q, got %q", "hi there", got)
	}
	if model.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", model.calls)
	}
	if len(model.parts) != 1 || model.parts[0] != genai.Text("Say hi") {
		t.Fatalf("expected the prompt as the only part, got %#v", model.parts)
	}
}

func TestReply_NoCandidatesUsesPlaceholder(t *testing.T) {
	s := newTestService(&fakeModel{resp: &genai.GenerateContentResponse{}})

	got, err := s.Reply(context.Background(), "Say hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != NoResponseText {
		t.Fatalf("expected placeholder %q, got %q", NoResponseText, got)
	}
}

func TestReply_NilResponseUsesPlaceholder(t *testing.T) {
	s := newTestService(&fakeModel{})

	got, err := s.Reply(context.Background(), "Say hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != NoResponseText {
		t.Fatalf("expected placeholder %q, got %q", NoResponseText, got)
	}
}

func TestReply_WrapsProviderError(t *testing.T) {
	providerErr := errors.New("quota exceeded for key AIza-secret")
	s := newTestService(&fakeModel{err: providerErr})

	got, err := s.Reply(context.Background(), "Say hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, providerErr) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text on error, got %q", got)
	}
}

func TestNewGeminiService_RejectsEmptyKey(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	if _, err := NewGeminiService("", "gemini-2.0-flash", log); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
