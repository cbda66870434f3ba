// Package apiclient is the HTTP client used by the cockpit CLI to talk to
// the dashboard API server.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

// Config holds CLI credentials
type Config struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
}

// Client is the dashboard API client
type Client struct {
	config     *Config
	configPath string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".vibecockpit", "cli.json")

	c := &Client{
		configPath: configPath,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	c.loadConfig()

	return c, nil
}

func (c *Client) loadConfig() {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		c.config = &Config{
			ServerURL: "http://localhost:8080",
		}
		return
	}

	c.config = &Config{}
	json.Unmarshal(data, c.config)
}

func (c *Client) saveConfig() error {
	dir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0600)
}

// SetServer sets the API server URL
func (c *Client) SetServer(url string) error {
	c.config.ServerURL = url
	return c.saveConfig()
}

// IsLoggedIn returns true if the CLI holds a session token
func (c *Client) IsLoggedIn() bool {
	return c.config.Token != ""
}

// Login authenticates with username and password
func (c *Client) Login(username, password string) error {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	resp, err := c.httpClient.Post(
		c.config.ServerURL+"/api/v1/login",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed: %s", string(respBody))
	}

	var result struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.config.Token = result.Token
	c.config.UserID = result.UserID
	return c.saveConfig()
}

// Logout clears the session
func (c *Client) Logout() error {
	c.config.Token = ""
	c.config.UserID = ""
	return c.saveConfig()
}

// do performs an authenticated request and decodes the JSON response into
// out when out is non-nil
func (c *Client) do(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.config.ServerURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed (%d): %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListProjects returns all projects
func (c *Client) ListProjects() ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(http.MethodGet, "/api/v1/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project
func (c *Client) CreateProject(name, description, websiteURL, repoRef string) (*model.Project, error) {
	var project model.Project
	payload := map[string]string{
		"name":        name,
		"description": description,
		"website_url": websiteURL,
		"repo_ref":    repoRef,
	}
	if err := c.do(http.MethodPost, "/api/v1/projects", payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// SetProjectStatus updates a project's status
func (c *Client) SetProjectStatus(projectID, status string) (*model.Project, error) {
	var project model.Project
	payload := map[string]string{"status": status}
	if err := c.do(http.MethodPatch, "/api/v1/projects/"+projectID, payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ChecklistResponse is the list + counts payload
type ChecklistResponse struct {
	Items     []model.ChecklistItem `json:"items"`
	Total     int                   `json:"total"`
	Completed int                   `json:"completed"`
}

// GetChecklist returns a project's checklist
func (c *Client) GetChecklist(projectID string) (*ChecklistResponse, error) {
	var checklist ChecklistResponse
	if err := c.do(http.MethodGet, "/api/v1/projects/"+projectID+"/checklist", nil, &checklist); err != nil {
		return nil, err
	}
	return &checklist, nil
}

// Generate triggers checklist generation for a project
func (c *Client) Generate(projectID string) (int, error) {
	var result struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	payload := map[string]string{"project_id": projectID}
	if err := c.do(http.MethodPost, "/api/v1/generate", payload, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}
