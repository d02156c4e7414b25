package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultOpenAIModel = "gpt-4"

type OpenAI struct {
	apiKey      string
	client      *http.Client
	model       string
	temperature float64
	endpoint    string
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithOptions(Options{APIKey: apiKey})
}

func NewOpenAIWithOptions(opts Options) *OpenAI {
	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{
		apiKey:      opts.APIKey,
		client:      &http.Client{Timeout: timeout},
		model:       model,
		temperature: opts.Temperature,
		endpoint:    "https://api.openai.com/v1/chat/completions",
	}
}

func (o *OpenAI) Chat(ctx context.Context, system, prompt string) (string, error) {
	messages := []map[string]string{}
	if system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body := map[string]interface{}{
		"model":       o.model,
		"messages":    messages,
		"max_tokens":  4000,
		"temperature": o.temperature,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Provider: "OpenAI", StatusCode: resp.StatusCode, Message: string(respBytes)}
	}

	// OpenAI response structure
	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &openaiResp); err != nil {
		return "", err
	}
	if openaiResp.Error.Message != "" {
		return "", fmt.Errorf("OpenAI API error: %s", openaiResp.Error.Message)
	}
	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return openaiResp.Choices[0].Message.Content, nil
}

// GetModel returns the model being used by this OpenAI client
func (o *OpenAI) GetModel() string {
	return o.model
}
