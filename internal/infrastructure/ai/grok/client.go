// Package grok provides meal suggestion and ingredient merging backed by the
// x.ai chat completions API. The endpoint is OpenAI-compatible, so the wire
// types below follow that shape.
package grok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

const (
	minCookingTime = 5
	maxCookingTime = 180
	minRating      = 4.0
	maxRating      = 5.0
)

// Client implements SuggestionService and IngredientMerger against the
// x.ai API
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new x.ai client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger.Named("grok-client"),
	}
}

// Chat completion wire types

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// SuggestMeals asks the model for count meal suggestions matching the given
// preferences and normalizes whatever response shape comes back.
func (c *Client) SuggestMeals(ctx context.Context, prefs *user.Preferences, count int) ([]outbound.MealSuggestion, error) {
	systemPrompt := `You are a meal planning assistant. Respond with ONLY a valid JSON object of the form {"meals": [...]} where each meal has the fields: title, description, cuisine, protein, cookingTime (minutes, integer), ingredients (array of strings with quantities), instructions (string), rating (number between 4.0 and 5.0). No text outside the JSON.`

	userPrompt := fmt.Sprintf("Suggest %d dinner meals.", count)
	if len(prefs.ProteinPreferences) > 0 {
		userPrompt += fmt.Sprintf("\nPreferred proteins: %s", strings.Join(prefs.ProteinPreferences, ", "))
	}
	if len(prefs.CuisinePreferences) > 0 {
		userPrompt += fmt.Sprintf("\nPreferred cuisines: %s", strings.Join(prefs.CuisinePreferences, ", "))
	}
	if len(prefs.DietaryRestrictions) > 0 {
		userPrompt += fmt.Sprintf("\nDietary restrictions that MUST be respected: %s", strings.Join(prefs.DietaryRestrictions, ", "))
	}

	content, err := c.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	suggestions, err := parseSuggestions(content)
	if err != nil {
		c.logger.Error("Unparseable suggestion response", zap.Error(err))
		return nil, errors.NewExternalServiceError("suggestion backend", err)
	}

	for i := range suggestions {
		clampSuggestion(&suggestions[i])
	}
	if len(suggestions) > count {
		suggestions = suggestions[:count]
	}
	return suggestions, nil
}

// MergeIngredients sends every meal's ingredient list in one request and
// returns the model's categorized, deduplicated shopping list.
func (c *Client) MergeIngredients(ctx context.Context, meals []outbound.MealIngredients) ([]grocery.Category, error) {
	systemPrompt := `You are a grocery list assistant. Combine the ingredient lists of the given meals into one shopping list: merge duplicate ingredients, sum quantities where possible, and group items into categories such as Proteins, Produce, Dairy, Pantry, Spices. Respond with ONLY a valid JSON object of the form {"groceryList": [{"category": "...", "items": ["..."]}]}. No text outside the JSON.`

	payload, err := json.Marshal(meals)
	if err != nil {
		return nil, errors.NewExternalServiceError("ingredient merge backend", err)
	}
	userPrompt := fmt.Sprintf("Meals and their ingredients:\n%s", payload)

	content, err := c.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	categories, err := parseCategories(content)
	if err != nil {
		c.logger.Error("Unparseable merge response", zap.Error(err))
		return nil, errors.NewExternalServiceError("ingredient merge backend", err)
	}
	return categories, nil
}

// complete performs one chat completion round trip and returns the raw
// assistant content.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.NewExternalServiceError("x.ai", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.NewExternalServiceError("x.ai", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.NewExternalServiceError("x.ai", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewExternalServiceError("x.ai", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("x.ai request failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return "", errors.NewExternalServiceError("x.ai",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return "", errors.NewExternalServiceError("x.ai", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.NewExternalServiceError("x.ai", fmt.Errorf("empty completion"))
	}

	return completion.Choices[0].Message.Content, nil
}

// parseSuggestions accepts the shapes the model has been observed to answer
// with: {"meals": [...]}, {"suggestions": [...]}, or a bare array.
func parseSuggestions(content string) ([]outbound.MealSuggestion, error) {
	cleaned := stripCodeFence(content)

	var wrapped struct {
		Meals       []outbound.MealSuggestion `json:"meals"`
		Suggestions []outbound.MealSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil {
		if len(wrapped.Meals) > 0 {
			return wrapped.Meals, nil
		}
		if len(wrapped.Suggestions) > 0 {
			return wrapped.Suggestions, nil
		}
	}

	var bare []outbound.MealSuggestion
	if err := json.Unmarshal([]byte(cleaned), &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	return nil, fmt.Errorf("no meal suggestions found in response")
}

// parseCategories accepts {"groceryList": [...]}, {"categories": [...]}, or a
// bare array of categories.
func parseCategories(content string) ([]grocery.Category, error) {
	cleaned := stripCodeFence(content)

	var wrapped struct {
		GroceryList []grocery.Category `json:"groceryList"`
		Categories  []grocery.Category `json:"categories"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil {
		if len(wrapped.GroceryList) > 0 {
			return wrapped.GroceryList, nil
		}
		if len(wrapped.Categories) > 0 {
			return wrapped.Categories, nil
		}
	}

	var bare []grocery.Category
	if err := json.Unmarshal([]byte(cleaned), &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	return nil, fmt.Errorf("no grocery categories found in response")
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// around its JSON despite instructions.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// clampSuggestion bounds numeric fields the model tends to exaggerate.
func clampSuggestion(s *outbound.MealSuggestion) {
	if s.CookingTime < minCookingTime {
		s.CookingTime = minCookingTime
	}
	if s.CookingTime > maxCookingTime {
		s.CookingTime = maxCookingTime
	}
	if s.Rating < minRating {
		s.Rating = minRating
	}
	if s.Rating > maxRating {
		s.Rating = maxRating
	}
}
