package medclient

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// HealthMetric is one recorded measurement: blood pressure, weight, blood
// sugar and friends.
type HealthMetric struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patientId"`
	Type       string    `json:"type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// HealthMetricList is the paginated listing payload.
type HealthMetricList struct {
	Metrics    []HealthMetric `json:"metrics"`
	Pagination Pagination     `json:"pagination"`
}

// MetricListOptions filters a listing; zero values mean "no filter".
type MetricListOptions struct {
	Type  string
	From  string // YYYY-MM-DD
	To    string // YYYY-MM-DD
	Page  int
	Limit int
}

// RecordMetricRequest adds a measurement for the current patient.
type RecordMetricRequest struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Notes string  `json:"notes,omitempty"`
}

func (r RecordMetricRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.Unit, validation.Required),
		validation.Field(&r.Notes, validation.Length(0, 500)),
	)
}

// MetricsService reads and records health metrics.
type MetricsService struct {
	client *Client
}

func NewMetricsService(client *Client) *MetricsService {
	return &MetricsService{client: client}
}

func (s *MetricsService) List(ctx context.Context, opts MetricListOptions) (*HealthMetricList, error) {
	params := Params{
		"type": opts.Type,
		"from": opts.From,
		"to":   opts.To,
	}
	if opts.Page > 0 {
		params["page"] = opts.Page
	}
	if opts.Limit > 0 {
		params["limit"] = opts.Limit
	}

	env, err := s.client.Get(ctx, "/health-metrics", params)
	if err != nil {
		return nil, err
	}

	out := &HealthMetricList{}
	if err := env.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MetricsService) Record(ctx context.Context, req RecordMetricRequest) (*HealthMetric, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	env, err := s.client.Post(ctx, "/health-metrics", req)
	if err != nil {
		return nil, err
	}

	out := struct {
		Metric HealthMetric `json:"metric"`
	}{}
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	return &out.Metric, nil
}

func (s *MetricsService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/health-metrics/"+id)
	return err
}
