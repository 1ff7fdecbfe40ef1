package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cafewifi/model"
)

// ErrUnavailable means the resource API could not be reached or answered
// with something that is not a valid envelope. Callers treat it
// differently from a substantive API error.
var ErrUnavailable = errors.New("cafe api unavailable")

// Client is the front end's only path to cafe data. Every call carries
// the configured timeout; there is no other cancellation mechanism for
// the page-load round trip.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *model.APIError `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, form url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	switch env.Status {
	case model.StatusSuccess:
		if out != nil {
			if err := json.Unmarshal(env.Data, out); err != nil {
				return fmt.Errorf("%w: unexpected payload: %v", ErrUnavailable, err)
			}
		}
		return nil
	case model.StatusError:
		if env.Error == nil {
			return fmt.Errorf("%w: error status without error body", ErrUnavailable)
		}
		return env.Error
	default:
		return fmt.Errorf("%w: unknown status %q", ErrUnavailable, env.Status)
	}
}

func (c *Client) All(ctx context.Context) ([]model.Cafe, error) {
	var cafes []model.Cafe
	if err := c.do(ctx, http.MethodGet, "/all", nil, nil, &cafes); err != nil {
		return nil, err
	}
	return cafes, nil
}

func (c *Client) Random(ctx context.Context) (model.Cafe, error) {
	var cafe model.Cafe
	if err := c.do(ctx, http.MethodGet, "/random", nil, nil, &cafe); err != nil {
		return model.Cafe{}, err
	}
	return cafe, nil
}

func (c *Client) Search(ctx context.Context, loc string) ([]model.Cafe, error) {
	var cafes []model.Cafe
	query := url.Values{"loc": {loc}}
	if err := c.do(ctx, http.MethodGet, "/search", query, nil, &cafes); err != nil {
		return nil, err
	}
	return cafes, nil
}

// AddCafeParams mirrors the /add form contract.
type AddCafeParams struct {
	Name         string
	MapURL       string
	ImgURL       string
	Location     string
	Seats        string
	HasWifi      bool
	HasSockets   bool
	HasToilet    bool
	CanTakeCalls bool
	CoffeePrice  string
	APIKey       string
}

func (p AddCafeParams) form() url.Values {
	return url.Values{
		"name":         {p.Name},
		"map_url":      {p.MapURL},
		"img_url":      {p.ImgURL},
		"loc":          {p.Location},
		"seats":        {p.Seats},
		"wifi":         {strconv.FormatBool(p.HasWifi)},
		"sockets":      {strconv.FormatBool(p.HasSockets)},
		"toilet":       {strconv.FormatBool(p.HasToilet)},
		"calls":        {strconv.FormatBool(p.CanTakeCalls)},
		"coffee_price": {p.CoffeePrice},
		"api_key":      {p.APIKey},
	}
}

// Add submits a create request and returns the new cafe's id.
func (c *Client) Add(ctx context.Context, params AddCafeParams) (uint, error) {
	var created struct {
		ID uint `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/add", nil, params.form(), &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) UpdatePrice(ctx context.Context, id uint, newPrice string) (model.Cafe, error) {
	var cafe model.Cafe
	path := fmt.Sprintf("/update-price/%d", id)
	query := url.Values{"new_price": {newPrice}}
	if err := c.do(ctx, http.MethodPatch, path, query, nil, &cafe); err != nil {
		return model.Cafe{}, err
	}
	return cafe, nil
}

func (c *Client) ReportClosed(ctx context.Context, id uint, apiKey string) error {
	path := fmt.Sprintf("/report-closed/%d", id)
	query := url.Values{"api-key": {apiKey}}
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}
