package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// ChatResponse carries the generated text, or a static message for /hello.
type ChatResponse struct {
	Message string `json:"message"`
}

// ChatErrorResponse is returned when the provider call fails. It never
// carries provider detail.
type ChatErrorResponse struct {
	Error string `json:"error"`
}
