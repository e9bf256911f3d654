// Package gateway is the REST client for the submission backend: product
// code lookup, submission create/update and the AI drafting endpoints.
// Server error payloads are remapped to the messages the wizard surfaces.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sraju03/editor-sub000/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ProductCodes fetches one page of the FDA product classification list.
func (c *Client) ProductCodes(ctx context.Context, page, limit int, search string) ([]models.ProductCode, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}

	var codes []models.ProductCode
	if err := c.do(ctx, http.MethodGet, "/api/product-codes?"+q.Encode(), nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// CreateSubmission persists a new submission. The returned record
// carries the server-assigned id.
func (c *Client) CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	var created models.Submission
	if err := c.do(ctx, http.MethodPost, "/api/submissions", sub, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSubmission overwrites an existing submission. The backend keeps
// no version token, so concurrent editors are last-write-wins; this
// mirrors the observed system and is a documented limitation.
func (c *Client) UpdateSubmission(ctx context.Context, id string, sub *models.Submission) (*models.Submission, error) {
	var updated models.Submission
	if err := c.do(ctx, http.MethodPut, "/api/submissions/"+url.PathEscape(id), sub, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetSubmission loads one submission, used to seed the edit wizard.
func (c *Client) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var sub models.Submission
	if err := c.do(ctx, http.MethodGet, "/api/submissions/"+url.PathEscape(id), nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

type intendedUseRequest struct {
	ProductCode         string `json:"product_code"`
	DeviceCategory      string `json:"device_category"`
	PredicateDeviceName string `json:"predicate_device_name,omitempty"`
}

type intendedUseResponse struct {
	IntendedUse string `json:"intended_use"`
}

// SuggestIntendedUse asks the backend to draft an intended-use statement.
// At-most-once: no retry, the caller decides whether to try again.
func (c *Client) SuggestIntendedUse(ctx context.Context, productCode, deviceCategory, predicateName string) (string, error) {
	req := intendedUseRequest{
		ProductCode:         productCode,
		DeviceCategory:      deviceCategory,
		PredicateDeviceName: predicateName,
	}
	var resp intendedUseResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/intended-use", req, &resp); err != nil {
		return "", err
	}
	if resp.IntendedUse == "" {
		return "", fmt.Errorf("no intended use returned")
	}
	return resp.IntendedUse, nil
}

type predicateSuggestRequest struct {
	ProductCode string `json:"product_code"`
	Description string `json:"description"`
}

type predicateSuggestResponse struct {
	Devices []models.PredicateDevice `json:"devices"`
}

// SuggestPredicates asks the backend for candidate predicate devices.
func (c *Client) SuggestPredicates(ctx context.Context, productCode, description string) ([]models.PredicateDevice, error) {
	req := predicateSuggestRequest{ProductCode: productCode, Description: description}
	var resp predicateSuggestResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/predicate-suggest", req, &resp); err != nil {
		return nil, err
	}
	if resp.Devices == nil {
		return nil, fmt.Errorf("invalid predicate device data")
	}
	return resp.Devices, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeServerError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
