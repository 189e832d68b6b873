package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var (
	// ErrNoResponse is returned when the model answers without any text.
	ErrNoResponse = errors.New("no response from Gemini")
	// ErrMissingAPIKey is returned by New when no key is configured.
	ErrMissingAPIKey = errors.New("assistant API key is not configured")
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

const (
	textMaxOutputTokens  = 4096
	imageMaxOutputTokens = 8192
)

// Models is the subset of the GenAI models service used by Client.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Answer is the assistant's reply.
type Answer struct {
	Text         string
	Model        string
	FinishReason string
	Duration     time.Duration
}

// Asker answers a validated request.
type Asker interface {
	Ask(ctx context.Context, req Request) (Answer, error)
}

type options struct {
	model         string
	temperature   float32
	maxImageBytes int
	perMinute     int
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		model:         DefaultModel,
		temperature:   0.7,
		maxImageBytes: DefaultMaxImageBytes,
		perMinute:     0,
		logger:        slog.Default(),
	}
}

// Option configures a Client.
type Option func(*options)

// WithModel sets the Gemini model name.
func WithModel(name string) Option {
	return func(o *options) {
		if name != "" {
			o.model = name
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *options) { o.temperature = float32(t) }
}

// WithMaxImageBytes sets the diagram size limit.
func WithMaxImageBytes(n int) Option {
	return func(o *options) { o.maxImageBytes = n }
}

// WithRequestsPerMinute paces outgoing calls. Zero disables pacing.
func WithRequestsPerMinute(n int) Option {
	return func(o *options) { o.perMinute = n }
}

// WithLogger sets the slog.Logger used for call logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Client sends one GenerateContent call per question. It never retries.
type Client struct {
	models  Models
	opts    options
	limiter *rate.Limiter
	log     *slog.Logger
}

// New creates a Client backed by the Gemini API.
func New(ctx context.Context, apiKey string, optFns ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewWithModels(gc.Models, optFns...), nil
}

// NewWithModels creates a Client over an existing models service.
func NewWithModels(models Models, optFns ...Option) *Client {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Client{
		models: models,
		opts:   opts,
		log:    opts.logger,
	}
	if opts.perMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.perMinute)), 1)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.opts.model }

// Ask validates req, sends it and returns the first candidate's text.
func (c *Client) Ask(ctx context.Context, req Request) (Answer, error) {
	if err := req.Validate(c.opts.maxImageBytes); err != nil {
		return Answer{}, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Answer{}, fmt.Errorf("wait for request budget: %w", err)
		}
	}

	contents, cfg := c.buildRequest(req)

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.opts.model, contents, cfg)
	elapsed := time.Since(start)
	if err != nil {
		c.log.ErrorContext(ctx, "assistant call failed",
			slog.String("model", c.opts.model),
			slog.String("topic", req.Topic.ID),
			slog.Bool("image", req.HasImage()),
			slog.Int64("duration_ms", elapsed.Milliseconds()),
			slog.String("error", err.Error()),
		)
		return Answer{}, fmt.Errorf("generate content: %w", err)
	}

	text, finish := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return Answer{}, ErrNoResponse
	}

	c.log.InfoContext(ctx, "assistant answered",
		slog.String("model", c.opts.model),
		slog.String("topic", req.Topic.ID),
		slog.String("vendor", req.Vendor.ID),
		slog.Bool("image", req.HasImage()),
		slog.Int("answer_len", len(text)),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	)

	return Answer{
		Text:         text,
		Model:        c.opts.model,
		FinishReason: finish,
		Duration:     elapsed,
	}, nil
}

func (c *Client) buildRequest(req Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := []*genai.Part{genai.NewPartFromText(BuildPrompt(req))}
	maxTokens := textMaxOutputTokens
	if req.HasImage() {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
		maxTokens = imageMaxOutputTokens
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.opts.temperature),
		MaxOutputTokens: int32(maxTokens),
	}
	return contents, cfg
}

// responseText returns the text parts of the first candidate that has any.
func responseText(resp *genai.GenerateContentResponse) (string, string) {
	if resp == nil {
		return "", ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
		if b.Len() > 0 {
			return b.String(), string(cand.FinishReason)
		}
	}
	return "", ""
}
