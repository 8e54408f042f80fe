// Package imagegen calls the HuggingFace Inference API to turn a prompt into an image.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	playground "github.com/haowjy/genai-playground-go"
)

const (
	// DefaultModel is the text-to-image model used when none is configured.
	DefaultModel = "runwayml/stable-diffusion-v1-5"

	defaultBaseURL = "https://api-inference.huggingface.co/models"
	providerName   = "huggingface"
)

// Parameters are the generation settings sent with every request.
type Parameters struct {
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
}

// DefaultParameters returns 30 steps, guidance 7.5, 512x512.
func DefaultParameters() Parameters {
	return Parameters{
		NumInferenceSteps: 30,
		GuidanceScale:     7.5,
		Width:             512,
		Height:            512,
	}
}

type inferenceRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters Parameters `json:"parameters"`
}

// Image is a generated image as returned by the service.
type Image struct {
	Data     []byte
	MIMEType string
	Prompt   string
	Model    string
}

// Client talks to the HuggingFace Inference API.
type Client struct {
	token      string
	model      string
	baseURL    string
	params     Parameters
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the model id ("owner/name").
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithParameters replaces the default generation parameters.
func WithParameters(params Parameters) Option {
	return func(c *Client) {
		c.params = params
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the given token.
// An empty token returns a *playground.ConfigError wrapping ErrMissingAPIKey.
func NewClient(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &playground.ConfigError{
			Field:  "HUGGINGFACE_TOKEN",
			Reason: "not set; create one at https://huggingface.co/settings/tokens",
			Err:    playground.ErrMissingAPIKey,
		}
	}

	c := &Client{
		token:      token,
		model:      DefaultModel,
		baseURL:    defaultBaseURL,
		params:     DefaultParameters(),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the model id requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one text-to-image request to model, or to the client's
// model when model is empty. The call is not retried, including when the
// service reports the model is still loading.
func (c *Client) Generate(ctx context.Context, prompt, model string) (*Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt: %w", playground.ErrEmptyInput)
	}
	if model == "" {
		model = c.model
	}

	httpReq, err := c.buildHTTPRequest(ctx, prompt, model)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("huggingface HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, &playground.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("expected an image, got %s", mimeType),
			Err:        playground.ErrProviderUnavailable,
		}
	}

	c.logger.Debug("image generated",
		"model", model,
		"bytes", len(data),
		"mime_type", mimeType,
		"duration", time.Since(start))

	return &Image{
		Data:     data,
		MIMEType: mimeType,
		Prompt:   prompt,
		Model:    model,
	}, nil
}

// buildHTTPRequest creates the POST request for model.
func (c *Client) buildHTTPRequest(ctx context.Context, prompt, model string) (*http.Request, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: prompt, Parameters: c.params})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "image/png")

	return httpReq, nil
}

// handleErrorResponse parses an error body ({"error": "..."}) into a ProviderError.
func handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error         string  `json:"error"`
		EstimatedTime float64 `json:"estimated_time"`
	}

	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		message = errResp.Error
		if errResp.EstimatedTime > 0 {
			message = fmt.Sprintf("%s (ready in about %.0fs)", message, errResp.EstimatedTime)
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return playground.NewProviderError(providerName, resp.StatusCode, message)
}

// Save writes the image to dir as generated_image_YYYYMMDD_HHMMSS.<ext> and
// returns the path. The extension follows the MIME type, png if unknown.
func Save(img *Image, dir string, now time.Time) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", fmt.Errorf("image: %w", playground.ErrEmptyInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, playground.OutputFileName("generated_image", extension(img.MIMEType), now))
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

func extension(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(base))]; ok {
		return ext
	}
	return "png"
}

// AsInput converts the image for AnalyzeImage.
func (img *Image) AsInput() playground.ImageInput {
	return playground.ImageInput{MIMEType: img.MIMEType, Data: img.Data}
}
