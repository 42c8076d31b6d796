// Package client is a typed Go client for the restaurant site API. It keeps
// session cookies in a jar, so Login once and subsequent calls carry the
// admin session automatically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"restaurant-site-api/models"
	"restaurant-site-api/services"
)

// Client talks to a running restaurant site API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response (%s): %w", resp.Status, err)
	}
	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("api error: %s", msg)
	}
	if out != nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

// Login establishes an admin session; the cookie lives in the jar.
func (c *Client) Login(ctx context.Context, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"password": password}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// GetMenu fetches the menu document. Set publicView to filter out
// unavailable items the way the site does.
func (c *Client) GetMenu(ctx context.Context, publicView bool) (*models.MenuData, error) {
	path := "/api/menu"
	if publicView {
		path += "?view=public"
	}
	var menu models.MenuData
	if err := c.do(ctx, http.MethodGet, path, nil, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// ReplaceMenu overwrites the whole menu document (admin).
func (c *Client) ReplaceMenu(ctx context.Context, menu *models.MenuData) error {
	return c.do(ctx, http.MethodPut, "/api/menu", menu, nil)
}

func (c *Client) ListSpecials(ctx context.Context) ([]models.DailySpecial, error) {
	var specials []models.DailySpecial
	if err := c.do(ctx, http.MethodGet, "/api/menu/specials", nil, &specials); err != nil {
		return nil, err
	}
	return specials, nil
}

func (c *Client) AddSpecial(ctx context.Context, special models.DailySpecial) (*models.DailySpecial, error) {
	var out models.DailySpecial
	if err := c.do(ctx, http.MethodPost, "/api/menu/specials", special, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSpecial(ctx context.Context, day string) error {
	return c.do(ctx, http.MethodDelete, "/api/menu/specials?day="+url.QueryEscape(day), nil, nil)
}

func (c *Client) ListGallery(ctx context.Context) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	if err := c.do(ctx, http.MethodGet, "/api/gallery", nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// SubmitFeedback sends the public feedback form; returns the new entry id.
func (c *Client) SubmitFeedback(ctx context.Context, fb models.Feedback) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/feedback", fb, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ListFeedback reads the admin inbox with optional filters.
func (c *Client) ListFeedback(ctx context.Context, filters services.FeedbackFilters) ([]models.Feedback, error) {
	params := url.Values{}
	if filters.Archived != nil {
		params.Set("archived", fmt.Sprintf("%t", *filters.Archived))
	}
	if filters.Read != nil {
		params.Set("read", fmt.Sprintf("%t", *filters.Read))
	}
	if filters.Type != "" {
		params.Set("type", string(filters.Type))
	}
	path := "/api/feedback"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var items []models.Feedback
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
