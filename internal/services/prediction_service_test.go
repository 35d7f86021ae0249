package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPrediction = `{"degree":"B.Tech","major":"CSE","specialization":"AI","cgpa":8.2,"skills":["Python","SQL"],"certifications":["AWS"],"experience":1,"industry":"IT"}`

func TestPredictionService_Validate(t *testing.T) {
	svc := NewPredictionService("http://unused", time.Second, nil)

	_, err := svc.Validate([]byte(validPrediction))
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty body", ``, "body"},
		{"not json", `{"degree":`, "body"},
		{"missing degree", `{"major":"CSE","specialization":"AI","cgpa":8,"skills":["Go"],"experience":1,"industry":"IT"}`, "degree"},
		{"cgpa out of range", `{"degree":"B.Tech","major":"CSE","specialization":"AI","cgpa":11,"skills":["Go"],"experience":1,"industry":"IT"}`, "cgpa"},
		{"missing cgpa", `{"degree":"B.Tech","major":"CSE","specialization":"AI","skills":["Go"],"experience":1,"industry":"IT"}`, "cgpa"},
		{"no skills", `{"degree":"B.Tech","major":"CSE","specialization":"AI","cgpa":8,"skills":[],"experience":1,"industry":"IT"}`, "skills"},
		{"negative experience", `{"degree":"B.Tech","major":"CSE","specialization":"AI","cgpa":8,"skills":["Go"],"experience":-2,"industry":"IT"}`, "experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate([]byte(tt.body))
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, MsgInvalidPrediction, verr.Message)
			require.NotEmpty(t, verr.Fields)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestPredictionService_ForwardRelaysSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, validPrediction, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predictions":[{"role":"Data Scientist","score":0.61}]}`))
	}))
	defer upstream.Close()

	svc := NewPredictionService(upstream.URL, 5*time.Second, upstream.Client())
	resp, err := svc.Forward(context.Background(), []byte(validPrediction), "Bearer tok")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.JSONEq(t, `{"predictions":[{"role":"Data Scientist","score":0.61}]}`, string(resp.Body))
}

func TestPredictionService_ForwardUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"could not convert string to float"}`))
	}))
	defer upstream.Close()

	svc := NewPredictionService(upstream.URL, 5*time.Second, upstream.Client())
	_, err := svc.Forward(context.Background(), []byte(validPrediction), "")

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusBadRequest, upErr.StatusCode)
	assert.JSONEq(t, `{"error":"could not convert string to float"}`, string(upErr.Body))
	assert.NotErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestPredictionService_ForwardTimeout(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer upstream.Close()
	defer close(release)

	svc := NewPredictionService(upstream.URL, 50*time.Millisecond, upstream.Client())
	start := time.Now()
	_, err := svc.Forward(context.Background(), []byte(validPrediction), "")

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPredictionService_ForwardUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	svc := NewPredictionService(url, time.Second, nil)
	_, err := svc.Forward(context.Background(), []byte(validPrediction), "")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestPredictionService_SingleAttempt(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	svc := NewPredictionService(upstream.URL, time.Second, upstream.Client())
	_, err := svc.Forward(context.Background(), []byte(validPrediction), "")

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
