package medclient

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Patient is the record the admin and doctor dashboards list and edit.
type Patient struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Gender      string     `json:"gender"`
	BloodGroup  string     `json:"bloodGroup"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Allergies   []string   `json:"allergies,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// PatientList is the paginated listing payload.
type PatientList struct {
	Patients   []Patient  `json:"patients"`
	Pagination Pagination `json:"pagination"`
}

// PatientListOptions filters a listing. Zero values mean "no filter" and
// are omitted from the query string. DoctorID scopes the listing to the
// patients a doctor has appointments with.
type PatientListOptions struct {
	Search     string
	Gender     string
	BloodGroup string
	DoctorID   string
	Page       int
	Limit      int
}

// PatientPatch updates the editable fields of a patient record.
type PatientPatch struct {
	Phone      string   `json:"phone,omitempty"`
	BloodGroup string   `json:"bloodGroup,omitempty"`
	Allergies  []string `json:"allergies,omitempty"`
}

func (r PatientPatch) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.By(phoneRule(""))),
		validation.Field(&r.BloodGroup, validation.In("A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-")),
	)
}

// PatientsService reads and manages patient records.
type PatientsService struct {
	client *Client
}

func NewPatientsService(client *Client) *PatientsService {
	return &PatientsService{client: client}
}

func (s *PatientsService) List(ctx context.Context, opts PatientListOptions) (*PatientList, error) {
	params := Params{
		"search":     opts.Search,
		"gender":     opts.Gender,
		"bloodGroup": opts.BloodGroup,
		"doctorId":   opts.DoctorID,
	}
	if opts.Page > 0 {
		params["page"] = opts.Page
	}
	if opts.Limit > 0 {
		params["limit"] = opts.Limit
	}

	env, err := s.client.Get(ctx, "/patients", params)
	if err != nil {
		return nil, err
	}

	out := &PatientList{}
	if err := env.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForDoctor scopes a listing to one doctor's patients.
func (s *PatientsService) ListForDoctor(ctx context.Context, doctorID string, opts PatientListOptions) (*PatientList, error) {
	opts.DoctorID = doctorID
	return s.List(ctx, opts)
}

func (s *PatientsService) Get(ctx context.Context, id string) (*Patient, error) {
	env, err := s.client.Get(ctx, "/patients/"+id, nil)
	if err != nil {
		return nil, err
	}

	out := struct {
		Patient Patient `json:"patient"`
	}{}
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	return &out.Patient, nil
}

func (s *PatientsService) Update(ctx context.Context, id string, patch PatientPatch) (*Patient, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if patch.Phone != "" {
		normalized, err := NormalizePhone(patch.Phone, "")
		if err != nil {
			return nil, err
		}
		patch.Phone = normalized
	}

	env, err := s.client.Put(ctx, "/patients/"+id, patch)
	if err != nil {
		return nil, err
	}

	out := struct {
		Patient Patient `json:"patient"`
	}{}
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	return &out.Patient, nil
}

func (s *PatientsService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/patients/"+id)
	return err
}
