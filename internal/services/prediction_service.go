package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/edu2job/edu2job-server/internal/models"
)

// MsgInvalidPrediction summarizes a rejected prediction payload.
const MsgInvalidPrediction = "Invalid prediction request"

// maxUpstreamBody bounds how much of the upstream response is buffered.
const maxUpstreamBody = 4 << 20

// PredictionServiceProvider defines the interface for the prediction proxy.
type PredictionServiceProvider interface {
	Validate(body []byte) (models.PredictionRequest, error)
	Forward(ctx context.Context, body []byte, authorization string) (UpstreamResponse, error)
}

// UpstreamResponse is a successful reply from the inference service.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// PredictionService forwards validated profiles to the external inference endpoint.
type PredictionService struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// NewPredictionService creates a proxy for endpoint. A nil client uses a
// fresh http.Client; the per-call timeout is applied through the context.
func NewPredictionService(endpoint string, timeout time.Duration, client *http.Client) *PredictionService {
	if client == nil {
		client = &http.Client{}
	}
	return &PredictionService{endpoint: endpoint, timeout: timeout, client: client}
}

// Validate decodes body into a typed request and checks it.
func (s *PredictionService) Validate(body []byte) (models.PredictionRequest, error) {
	var req models.PredictionRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return req, &ValidationError{Message: MsgInvalidPrediction, Fields: []FieldError{{Field: "body", Message: "is required"}}}
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, &ValidationError{Message: MsgInvalidPrediction, Fields: []FieldError{{Field: "body", Message: err.Error()}}}
	}
	if err := validateStruct(req, MsgInvalidPrediction); err != nil {
		return req, err
	}
	return req, nil
}

// Forward sends body verbatim to the inference endpoint. Exactly one attempt
// is made; the caller owns retries.
func (s *PredictionService) Forward(ctx context.Context, body []byte, authorization string) (UpstreamResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return UpstreamResponse{}, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", s.endpoint).Dur("elapsed", time.Since(start)).Msg("Prediction service unreachable")
		return UpstreamResponse{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		log.Warn().Err(err).Str("endpoint", s.endpoint).Msg("Failed reading prediction response")
		return UpstreamResponse{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	log.Info().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Prediction service responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return UpstreamResponse{}, &UpstreamError{StatusCode: resp.StatusCode, Body: respBody}
	}
	return UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}

var _ PredictionServiceProvider = (*PredictionService)(nil)
