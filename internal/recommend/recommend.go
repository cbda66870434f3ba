// Package recommend asks an LLM for launch-checklist task candidates using
// a single forced tool call, so a successful response is always structured.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

const (
	defaultModel     = "claude-sonnet-4-5-20250929"
	defaultMaxTokens = 2048
	defaultAPIURL    = "https://api.anthropic.com/v1/messages"
	apiVersion       = "2023-06-01"
	requestTimeout   = 30 * time.Second

	toolName = "propose_launch_tasks"
)

// Distinct failure classes for response-shape violations. Each cause gets
// its own sentinel so callers and logs can tell them apart.
var (
	ErrNoToolCall    = errors.New("model response contained no tool call")
	ErrEmptyInput    = errors.New("tool call arguments were empty")
	ErrMalformedJSON = errors.New("tool call arguments were not valid JSON")
	ErrNoTasks       = errors.New("tool call contained an empty task list")
)

// Request carries the project fields used to build the prompt. Only Name
// is required; Context is the gatherer's summary, if any.
type Request struct {
	Name        string
	Description string
	WebsiteURL  string
	RepoRef     string
	Context     string
}

// Client calls the Anthropic Messages API
type Client struct {
	apiKey     string
	model      string
	maxTokens  int
	apiURL     string
	httpClient *http.Client
}

// New creates a recommendation client
func New(apiKey, modelName string) *Client {
	if modelName == "" {
		modelName = defaultModel
	}
	return &Client{
		apiKey:     apiKey,
		model:      modelName,
		maxTokens:  defaultMaxTokens,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Recommend produces an ordered list of candidate tasks for the project.
// A single API call is made; any failure is returned to the caller with
// no retry.
func (c *Client) Recommend(ctx context.Context, req Request) ([]model.TaskCandidate, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("project name is required")
	}
	if c.apiKey == "" {
		return nil, errors.New("no Anthropic API key configured")
	}

	resp, err := c.callAPI(ctx, buildPrompt(req))
	if err != nil {
		return nil, err
	}

	return parseTasks(resp)
}

// buildPrompt embeds the project fields into a single prompt. Missing
// fields are marked "Not provided" so the prompt shape stays stable.
func buildPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("You are helping a solo developer prepare a side project for launch. ")
	sb.WriteString("Propose a short launch checklist of concrete, high-impact tasks. ")
	sb.WriteString("For each task give a title and the reasoning behind it.\n\n")

	sb.WriteString("Project name: " + req.Name + "\n")
	sb.WriteString("Description: " + orNotProvided(req.Description) + "\n")
	sb.WriteString("Website: " + orNotProvided(req.WebsiteURL) + "\n")
	sb.WriteString("Repository: " + orNotProvided(req.RepoRef) + "\n")

	if req.Context != "" {
		sb.WriteString("\nGathered context:\n")
		sb.WriteString(req.Context)
		sb.WriteString("\n")
	}

	sb.WriteString("\nUse the " + toolName + " tool to return the checklist.")
	return sb.String()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

// parseTasks validates the response shape: a tool call must be present,
// with non-empty, well-formed JSON input holding at least one task.
func parseTasks(resp *apiResponse) ([]model.TaskCandidate, error) {
	var input json.RawMessage
	for _, block := range resp.Content {
		if block.Type == "tool_use" && block.Name == toolName {
			input = block.Input
			break
		}
	}
	if input == nil {
		return nil, ErrNoToolCall
	}
	if len(bytes.TrimSpace(input)) == 0 || string(bytes.TrimSpace(input)) == "null" {
		return nil, ErrEmptyInput
	}

	var payload struct {
		Tasks []model.TaskCandidate `json:"tasks"`
	}
	if err := json.Unmarshal(input, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if len(payload.Tasks) == 0 {
		return nil, ErrNoTasks
	}

	tasks := make([]model.TaskCandidate, 0, len(payload.Tasks))
	for i, t := range payload.Tasks {
		if strings.TrimSpace(t.Title) == "" || strings.TrimSpace(t.Reasoning) == "" {
			return nil, fmt.Errorf("%w: task %d is missing title or reasoning", ErrMalformedJSON, i)
		}
		tasks = append(tasks, model.TaskCandidate{
			Title:     strings.TrimSpace(t.Title),
			Reasoning: strings.TrimSpace(t.Reasoning),
		})
	}
	return tasks, nil
}

// callAPI makes a single request to the Messages API with the checklist
// tool pinned via tool_choice.
func (c *Client) callAPI(ctx context.Context, prompt string) (*apiResponse, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
		Tools:      toolDefinitions(),
		ToolChoice: &apiToolChoice{Type: "tool", Name: toolName},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apiURL, bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling LLM API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// --- Messages API types ---

type apiRequest struct {
	Model      string         `json:"model"`
	MaxTokens  int            `json:"max_tokens"`
	Messages   []apiMessage   `json:"messages"`
	Tools      []apiTool      `json:"tools,omitempty"`
	ToolChoice *apiToolChoice `json:"tool_choice,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

type apiContentBlock struct {
	Type string `json:"type"`

	// For text blocks
	Text string `json:"text,omitempty"`

	// For tool_use blocks
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type apiResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Role       string            `json:"role"`
	Content    []apiContentBlock `json:"content"`
	Model      string            `json:"model"`
	StopReason string            `json:"stop_reason"`
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// toolDefinitions returns the single checklist tool specification
func toolDefinitions() []apiTool {
	return []apiTool{
		{
			Name: toolName,
			Description: "Propose an ordered launch checklist for a side project. " +
				"Each task needs a short actionable title and the reasoning behind it.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"tasks": {
						"type": "array",
						"items": {
							"type": "object",
							"properties": {
								"title": {
									"type": "string",
									"description": "Short actionable task title"
								},
								"reasoning": {
									"type": "string",
									"description": "Why this task matters for launch"
								}
							},
							"required": ["title", "reasoning"]
						}
					}
				},
				"required": ["tasks"]
			}`),
		},
	}
}
