package solverapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/ThunderKey/sudoku-solver/registry"
)

// Client talks to a running solver service over HTTP.
type Client struct {
	url    *url.URL
	client *http.Client
}

// NewClient points at the service base URL, e.g. "http://localhost:8080".
func NewClient(_url string, client *http.Client) (*Client, error) {
	u, err := url.Parse(_url)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &Client{url: u, client: client}, nil
}

func (c *Client) Solvers(ctx context.Context) ([]registry.Descriptor, error) {
	var out []registry.Descriptor
	if err := c.do(ctx, http.MethodGet, "/api/v1/solvers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Solve(ctx context.Context, req *SolveRequest) (*StateResponse, error) {
	var out StateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/solve", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) State(ctx context.Context) (*StateResponse, error) {
	var out StateResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/grid", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCell(ctx context.Context, req *CellUpdateRequest) (*StateResponse, error) {
	var out StateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/grid/cell", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) NextStep(ctx context.Context) (*StateResponse, error) {
	var out StateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/solution/next", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PrevStep(ctx context.Context) (*StateResponse, error) {
	var out StateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/solution/prev", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) JumpStep(ctx context.Context, req *JumpRequest) (*StateResponse, error) {
	var out StateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/solution/jump", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReloadPlugins(ctx context.Context) (*ReloadResponse, error) {
	var out ReloadResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/plugins/reload", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadPuzzle uploads a puzzle file through the multipart form endpoint.
func (c *Client) LoadPuzzle(ctx context.Context, filename string, data []byte) (*StateResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	if _, err = part.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	_url := c.url.JoinPath("/api/v1/grid/load").String()
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, _url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	var out StateResponse
	if err := c.send(request, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	_url := c.url.JoinPath(path).String()
	request, err := http.NewRequestWithContext(ctx, method, _url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	return c.send(request, out)
}

func (c *Client) send(request *http.Request, out any) error {
	response, err := c.client.Do(request)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		resp, _ := io.ReadAll(response.Body)
		return fmt.Errorf("server response status code: %d, body: %s", response.StatusCode, resp)
	}

	if err = json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
