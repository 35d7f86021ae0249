package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PredictionRequest is the profile submitted by the career predictor form.
// It is validated here and forwarded upstream byte-for-byte.
type PredictionRequest struct {
	Degree         string     `json:"degree" validate:"required"`
	Major          string     `json:"major" validate:"required"`
	Specialization string     `json:"specialization" validate:"required"`
	CGPA           *FlexFloat `json:"cgpa" validate:"required,gte=0,lte=10"`
	Skills         StringList `json:"skills" validate:"min=1,dive,required"`
	Certifications StringList `json:"certifications" validate:"omitempty,dive,required"`
	Experience     *FlexFloat `json:"experience" validate:"required,gte=0,lte=60"`
	Industry       string     `json:"industry" validate:"required"`
}

// Prediction is a single role recommendation returned by the inference service.
type Prediction struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

// PredictionResponse is the upstream success payload.
type PredictionResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// FlexFloat accepts a JSON number or a numeric string, since form inputs
// frequently post numbers as strings.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string ("Python, SQL").
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*l = out
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}
