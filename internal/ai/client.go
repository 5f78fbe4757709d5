package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/seyio/leadpilot/internal/config"
)

// Client calls the configured text-generation provider. One blocking call
// per invocation, no streaming, no retries. Failure handling is the
// caller's concern at its own granularity.
type Client struct {
	cfg  *config.Config
	http *http.Client
}

// NewClient builds a drafting client from the resolved configuration
func NewClient(cfg *config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient}
}

// Generate sends a system instruction and task instruction to the
// configured provider and returns the drafted text.
func (c *Client) Generate(ctx context.Context, system, task string) (string, error) {
	switch c.cfg.AIProvider {
	case "openai":
		return c.generateWithOpenAI(ctx, system, task)
	case "anthropic":
		return c.generateWithAnthropic(ctx, system, task)
	case "ollama":
		return c.generateWithOllama(ctx, system, task)
	case "lmstudio":
		return c.generateWithLMStudio(ctx, system, task)
	default:
		return "", fmt.Errorf("unsupported AI provider: %s", c.cfg.AIProvider)
	}
}

func (c *Client) generateWithOpenAI(ctx context.Context, system, task string) (string, error) {
	apiKey := c.cfg.OpenAIKey
	if apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured. Run: leadpilot config set --key openai_key --value YOUR_KEY")
	}

	model := c.cfg.DefaultModel
	if model == "" {
		model = "gpt-4"
	}

	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": task},
		},
		"temperature": 0.7,
		"max_tokens":  1000,
	}

	body, err := c.post(ctx, "https://api.openai.com/v1/chat/completions", reqBody, map[string]string{
		"Authorization": "Bearer " + apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	return parseChatCompletion(body, "OpenAI")
}

func (c *Client) generateWithAnthropic(ctx context.Context, system, task string) (string, error) {
	apiKey := c.cfg.AnthropicKey
	if apiKey == "" {
		return "", fmt.Errorf("Anthropic API key not configured. Run: leadpilot config set --key anthropic_key --value YOUR_KEY")
	}

	reqBody := map[string]interface{}{
		"model":      "claude-3-5-sonnet-20241022",
		"max_tokens": 1024,
		"system":     system,
		"messages": []map[string]string{
			{"role": "user", "content": task},
		},
	}

	body, err := c.post(ctx, "https://api.anthropic.com/v1/messages", reqBody, map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": "2023-06-01",
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	content, ok := result["content"].([]interface{})
	if !ok || len(content) == 0 {
		return "", fmt.Errorf("unexpected response format from Anthropic")
	}
	contentBlock, ok := content[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected response format from Anthropic")
	}
	text, ok := contentBlock["text"].(string)
	if !ok {
		return "", fmt.Errorf("unexpected response format from Anthropic")
	}

	return strings.TrimSpace(text), nil
}

func (c *Client) generateWithOllama(ctx context.Context, system, task string) (string, error) {
	url := c.cfg.OllamaURL
	if url == "" {
		url = "http://localhost:11434"
	}

	model := c.cfg.DefaultModel
	if model == "" {
		model = "llama3.2"
	}

	reqBody := map[string]interface{}{
		"model":  model,
		"system": system,
		"prompt": task,
		"stream": false,
	}

	body, err := c.post(ctx, url+"/api/generate", reqBody, nil)
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	response, ok := result["response"].(string)
	if !ok {
		return "", fmt.Errorf("unexpected response format from Ollama")
	}

	return strings.TrimSpace(response), nil
}

func (c *Client) generateWithLMStudio(ctx context.Context, system, task string) (string, error) {
	url := c.cfg.LMStudioURL
	if url == "" {
		url = "http://localhost:1234"
	}

	model := c.cfg.DefaultModel
	if model == "" {
		model = "local-model"
	}

	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": task},
		},
		"temperature": 0.7,
		"max_tokens":  1000,
	}

	body, err := c.post(ctx, url+"/v1/chat/completions", reqBody, nil)
	if err != nil {
		return "", fmt.Errorf("LMStudio API error: %w", err)
	}

	return parseChatCompletion(body, "LMStudio")
}

// post marshals the request body, issues the call, and returns the response
// body. Non-200 responses become errors carrying the response text.
func (c *Client) post(ctx context.Context, url string, reqBody interface{}, headers map[string]string) ([]byte, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s", string(body))
	}
	return body, nil
}

// parseChatCompletion extracts the assistant text from an OpenAI-style
// chat completion response.
func parseChatCompletion(body []byte, provider string) (string, error) {
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	choices, ok := result["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		return "", fmt.Errorf("unexpected response format from %s", provider)
	}
	choice, ok := choices[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected response format from %s", provider)
	}
	message, ok := choice["message"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected response format from %s", provider)
	}
	content, ok := message["content"].(string)
	if !ok {
		return "", fmt.Errorf("unexpected response format from %s", provider)
	}

	return strings.TrimSpace(content), nil
}
