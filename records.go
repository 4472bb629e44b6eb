package medclient

import (
	"context"
	"io"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MedicalRecord is a clinical document attached to a patient: diagnoses,
// lab reports, prescriptions.
type MedicalRecord struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patientId"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	FileURL     string     `json:"fileUrl,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// MedicalRecordList is the paginated listing payload.
type MedicalRecordList struct {
	Records    []MedicalRecord `json:"records"`
	Pagination Pagination      `json:"pagination"`
}

// RecordListOptions filters a listing; zero values mean "no filter".
type RecordListOptions struct {
	PatientID string
	Category  string
	Page      int
	Limit     int
}

// CreateRecordRequest adds a record to a patient's chart.
type CreateRecordRequest struct {
	PatientID   string `json:"patientId"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

func (r CreateRecordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatientID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// RecordsService manages medical records, including report file uploads.
type RecordsService struct {
	client *Client
}

func NewRecordsService(client *Client) *RecordsService {
	return &RecordsService{client: client}
}

func (s *RecordsService) List(ctx context.Context, opts RecordListOptions) (*MedicalRecordList, error) {
	params := Params{
		"patientId": opts.PatientID,
		"category":  opts.Category,
	}
	if opts.Page > 0 {
		params["page"] = opts.Page
	}
	if opts.Limit > 0 {
		params["limit"] = opts.Limit
	}

	env, err := s.client.Get(ctx, "/records", params)
	if err != nil {
		return nil, err
	}

	out := &MedicalRecordList{}
	if err := env.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RecordsService) Get(ctx context.Context, id string) (*MedicalRecord, error) {
	env, err := s.client.Get(ctx, "/records/"+id, nil)
	if err != nil {
		return nil, err
	}

	return decodeRecord(env)
}

func (s *RecordsService) Create(ctx context.Context, req CreateRecordRequest) (*MedicalRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	env, err := s.client.Post(ctx, "/records", req)
	if err != nil {
		return nil, err
	}

	return decodeRecord(env)
}

// AttachReport uploads a report file for an existing record through the
// multipart path.
func (s *RecordsService) AttachReport(ctx context.Context, recordID, filename string, content io.Reader) (*MedicalRecord, error) {
	env, err := s.client.Upload(ctx, "/records/"+recordID+"/report",
		map[string]string{"recordId": recordID},
		UploadFile{Field: "report", Name: filename, Content: content},
	)
	if err != nil {
		return nil, err
	}

	return decodeRecord(env)
}

func decodeRecord(env *Envelope) (*MedicalRecord, error) {
	out := struct {
		Record MedicalRecord `json:"record"`
	}{}
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	return &out.Record, nil
}
