package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio-server/entities"
)

// apiClient talks to the portfolio server's JSON API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *apiClient) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var failure struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return &apiError{Status: resp.StatusCode, Message: failure.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetSection returns nil when the section has never been saved.
func (c *apiClient) GetSection(section string) (*entities.PortfolioContent, error) {
	var content entities.PortfolioContent
	err := c.do(http.MethodGet, "/api/portfolio/"+url.PathEscape(section), nil, &content)
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// SaveSection sends every field of content. The server replaces the whole
// section, so fields left nil are cleared.
func (c *apiClient) SaveSection(content entities.PortfolioContent) (*entities.PortfolioContent, error) {
	body := map[string]*string{
		"title":       content.Title,
		"description": content.Description,
		"content":     content.Content,
		"imageUrl":    content.ImageURL,
		"metadata":    content.Metadata,
	}
	var saved entities.PortfolioContent
	if err := c.do(http.MethodPut, "/api/portfolio/"+url.PathEscape(content.Section), body, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *apiClient) ListProjects() ([]entities.Project, error) {
	var projects []entities.Project
	if err := c.do(http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SetFeatured sends a partial update touching only the featured flag.
func (c *apiClient) SetFeatured(id int, featured bool) (*entities.Project, error) {
	var project entities.Project
	err := c.do(http.MethodPut, fmt.Sprintf("/api/projects/%d", id), map[string]bool{"featured": featured}, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// projectDraft is a new project as typed into the admin form. Tags is the
// comma separated text of the tag box.
type projectDraft struct {
	Title       string
	Description string
	ImageURL    string
	Tags        string
	GithubURL   string
	DemoURL     string
	Featured    bool
}

// splitTags turns "a, b,,c" into [a b c]. The result is never nil so the
// server stores an empty list rather than no tags.
func splitTags(text string) []string {
	tags := []string{}
	for _, tag := range strings.Split(text, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// orNull sends blank optional text as null.
func orNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CreateProject posts a new project with its tags as a list.
func (c *apiClient) CreateProject(draft projectDraft) (*entities.Project, error) {
	body := map[string]any{
		"title":       draft.Title,
		"description": draft.Description,
		"imageUrl":    orNull(draft.ImageURL),
		"tags":        splitTags(draft.Tags),
		"githubUrl":   orNull(draft.GithubURL),
		"demoUrl":     orNull(draft.DemoURL),
		"featured":    draft.Featured,
	}
	var project entities.Project
	if err := c.do(http.MethodPost, "/api/projects", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *apiClient) DeleteProject(id int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, nil)
}

func (c *apiClient) ListContacts() ([]entities.Contact, error) {
	var contacts []entities.Contact
	if err := c.do(http.MethodGet, "/api/contact", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}
