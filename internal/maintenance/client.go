// Package maintenance is the HTTP client for the maintenance-record
// collaborator. Callers treat its failures as warnings: a failed update
// never rolls back the operation that triggered it.
package maintenance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Update carries the maintenance fields attached to a task completion.
// Nil pointers mean "leave unchanged".
type Update struct {
	ServicedAt     *time.Time `json:"serviced_at,omitempty"`
	NextServiceDue *time.Time `json:"next_service_due,omitempty"`
	Mileage        *int64     `json:"mileage,omitempty"`
	Comment        string     `json:"comment"`
}

func (u Update) Empty() bool {
	return u.ServicedAt == nil && u.NextServiceDue == nil && u.Mileage == nil && u.Comment == ""
}

// UpdateByVehicle posts the update to the collaborator's per-vehicle
// endpoint.
func (c *Client) UpdateByVehicle(ctx context.Context, vehicleID uint, upd Update) error {
	body, err := json.Marshal(upd)
	if err != nil {
		return fmt.Errorf("marshal maintenance update: %w", err)
	}

	url := fmt.Sprintf("%s/api/maintenance/by-vehicle/%d", c.baseURL, vehicleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build maintenance request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("maintenance update failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("maintenance update returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
