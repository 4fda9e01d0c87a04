// Package classify submits photos to the remote breed classification service.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/tracing"
)

// Wire format of the upload. The service always receives a JPEG-labelled
// part named photo.jpg regardless of what the file on disk is called.
const (
	DefaultFieldName = "file"
	UploadFilename   = "photo.jpg"
	UploadMIME       = "image/jpeg"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Result is a successful classification.
type Result struct {
	Label       string
	Probability float64 // percent, 0-100
}

// Classifier submits one photo and returns its classification.
type Classifier interface {
	Classify(ctx context.Context, ref photo.Reference) (Result, error)
}

// Client talks to the classification endpoint over HTTP. It issues exactly
// one request per Classify call and never retries.
type Client struct {
	endpoint   string
	fieldName  string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client (tests, proxies).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTracer records a span per submission.
func WithTracer(t trace.Tracer) Option {
	return func(cl *Client) { cl.tracer = t }
}

// WithFieldName overrides the multipart field name.
func WithFieldName(name string) Option {
	return func(cl *Client) {
		if name != "" {
			cl.fieldName = name
		}
	}
}

// NewClient returns a client for endpoint, which must be an absolute http(s) URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}
	c := &Client{
		endpoint:  endpoint,
		fieldName: DefaultFieldName,
		// No Timeout: the transport defaults decide, matching a single plain POST.
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		tracer:     noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ValidateEndpoint checks that endpoint is an absolute http or https URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid classifier endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid classifier endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid classifier endpoint %q: missing host", endpoint)
	}
	return nil
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Classify uploads ref and decodes the service's verdict.
func (c *Client) Classify(ctx context.Context, ref photo.Reference) (Result, error) {
	const op = "classify"

	ctx, span := c.tracer.Start(ctx, tracing.SpanClassify, trace.WithAttributes(
		tracing.AttrPhotoID.String(ref.ID.String()),
		tracing.AttrPhotoType.String(ref.ContentType),
		tracing.AttrEndpoint.String(c.endpoint),
	))
	defer span.End()

	result, err := c.classify(ctx, op, ref)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(tracing.AttrFailure.String(KindOf(err).String()))
		span.SetStatus(codes.Error, err.Error())
		log.Warn(log.CatClassify, "classification failed", "photo", ref, "kind", KindOf(err), "error", err)
		return Result{}, err
	}

	span.SetAttributes(
		tracing.AttrLabel.String(result.Label),
		tracing.AttrProbability.Float64(result.Probability),
	)
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatClassify, "classified", "photo", ref, "label", result.Label, "probability", result.Probability)
	return result, nil
}

func (c *Client) classify(ctx context.Context, op string, ref photo.Reference) (Result, error) {
	body, contentType, err := c.encode(ref)
	if err != nil {
		return Result{}, &Error{Op: op, Kind: KindNetwork, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Result{}, &Error{Op: op, Kind: KindNetwork, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	log.Debug(log.CatClassify, "submitting", "photo", ref, "endpoint", c.endpoint, "bytes", body.Len())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, transportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, transportError(op, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &Error{
			Op:         op,
			Kind:       KindServer,
			StatusCode: resp.StatusCode,
			Err:        errors.New(summarize(payload)),
		}
	}

	result, err := decode(payload)
	if err != nil {
		return Result{}, &Error{Op: op, Kind: KindMalformed, StatusCode: resp.StatusCode, Err: err}
	}
	return result, nil
}

// encode builds the multipart body. The part header is written by hand
// because CreateFormFile would label the part application/octet-stream.
func (c *Client) encode(ref photo.Reference) (*bytes.Buffer, string, error) {
	src, err := ref.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = src.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, c.fieldName, UploadFilename))
	header.Set("Content-Type", UploadMIME)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("copying image bytes: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// response mirrors the service's JSON. Status and Message are only set on
// the service's in-band error replies.
type response struct {
	Class       *string  `json:"class"`
	Probability *float64 `json:"probability"`
	Status      string   `json:"status"`
	Message     string   `json:"message"`
}

func decode(payload []byte) (Result, error) {
	var r response
	if err := json.Unmarshal(payload, &r); err != nil {
		return Result{}, fmt.Errorf("decoding response: %w", err)
	}
	if r.Status == "error" {
		return Result{}, fmt.Errorf("service reported error: %s", r.Message)
	}
	if r.Class == nil || strings.TrimSpace(*r.Class) == "" {
		return Result{}, errors.New("response has no class")
	}
	if r.Probability == nil {
		return Result{}, errors.New("response has no probability")
	}
	if *r.Probability < 0 || *r.Probability > 100 {
		return Result{}, fmt.Errorf("probability %v outside 0-100", *r.Probability)
	}
	return Result{Label: *r.Class, Probability: *r.Probability}, nil
}

func summarize(payload []byte) string {
	s := strings.TrimSpace(string(payload))
	if s == "" {
		return "empty response body"
	}
	var detail struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(payload, &detail) == nil && detail.Detail != "" {
		return detail.Detail
	}
	const limit = 200
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
