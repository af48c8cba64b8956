// Package flightapi talks to a remote flight data service over HTTP:
// GET {base}/flight?from=&to= lists flights, POST {base}/flight stores one.
package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

var ErrUnexpectedStatus = errors.New("unexpected status from flight api")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Find(ctx context.Context, from, to string) ([]domain.Flight, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flight?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build find request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var flights []domain.Flight
	if err := c.do(req, &flights); err != nil {
		return nil, fmt.Errorf("find flights %s -> %s: %w", from, to, err)
	}
	if flights == nil {
		flights = []domain.Flight{}
	}
	return flights, nil
}

func (c *Client) Save(ctx context.Context, flight domain.Flight) error {
	body, err := json.Marshal(flight)
	if err != nil {
		return fmt.Errorf("encode flight: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/flight", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("save flight %d: %w", flight.ID, err)
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ repository.FlightRepository = (*Client)(nil)
