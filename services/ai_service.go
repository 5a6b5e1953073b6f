package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"auto-market/models"
)

type AIService interface {
	// GenerateDescription returns advisory listing text. The result is never
	// persisted automatically.
	GenerateDescription(ctx context.Context, req models.AIDescriptionRequest) (string, error)
}

type aiService struct {
	gatewayURL string
	apiKey     string
	model      string
	client     *http.Client
}

func NewAIService(gatewayURL, apiKey, model string) AIService {
	return &aiService{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		model:      model,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *aiService) GenerateDescription(ctx context.Context, req models.AIDescriptionRequest) (string, error) {
	apiKey := strings.TrimSpace(s.apiKey)
	if apiKey == "" {
		return "", models.ErrorInternalServer{Message: "AI gateway API key is not configured"}
	}

	prompt := buildPrompt(req)
	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You help improve vehicle classifieds."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", models.ErrorInternalServer{Message: "AI request failed"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", models.ErrorInternalServer{Message: fmt.Sprintf("AI request failed with status %d", resp.StatusCode)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", models.ErrorInternalServer{Message: "AI returned empty text"}
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", models.ErrorInternalServer{Message: "AI returned empty text"}
	}
	return text, nil
}

func buildPrompt(req models.AIDescriptionRequest) string {
	car := req.Car
	parts := []string{}
	if car.Make != "" || car.Model != "" {
		parts = append(parts, strings.TrimSpace(car.Make+" "+car.Model))
	}
	if car.Year > 0 {
		parts = append(parts, fmt.Sprintf("Year: %d", car.Year))
	}
	if car.Price > 0 {
		parts = append(parts, fmt.Sprintf("Price: %.0f", car.Price))
	}
	if car.Mileage > 0 {
		parts = append(parts, fmt.Sprintf("Mileage: %d km", car.Mileage))
	}
	if car.EngineVolume != "" {
		parts = append(parts, "Engine: "+car.EngineVolume+" l")
	}
	if car.Gearbox != "" {
		parts = append(parts, "Gearbox: "+car.Gearbox)
	}
	if car.Drive != "" {
		parts = append(parts, "Drive: "+car.Drive)
	}
	if car.City != "" {
		parts = append(parts, "City: "+car.City)
	}
	if car.Registration != "" {
		parts = append(parts, "Registration: "+car.Registration)
	}

	lines := []string{
		"Write a clean, appealing sales description for a vehicle listing.",
		"Use 2-5 short paragraphs, at most 1200 characters.",
		"Do not invent facts that are not provided.",
	}
	if len(parts) > 0 {
		lines = append(lines, "Details: "+strings.Join(parts, ", ")+".")
	} else {
		lines = append(lines, "Few details are available.")
	}
	if draft := strings.TrimSpace(req.Description); draft != "" {
		lines = append(lines, "User draft: "+draft)
	} else {
		lines = append(lines, "There is no draft.")
	}
	return strings.Join(lines, "\n")
}
