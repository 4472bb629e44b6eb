package medclient

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// AppointmentStatus tracks where an appointment is in its lifecycle.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment links a patient and a doctor at a time slot.
type Appointment struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patientId"`
	DoctorID  string            `json:"doctorId"`
	Date      time.Time         `json:"date"`
	TimeSlot  string            `json:"timeSlot"`
	Reason    string            `json:"reason"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
}

// AppointmentList is the paginated listing payload.
type AppointmentList struct {
	Appointments []Appointment `json:"appointments"`
	Pagination   Pagination    `json:"pagination"`
}

// AppointmentListOptions filters a listing; zero values mean "no filter".
type AppointmentListOptions struct {
	Status   AppointmentStatus
	DoctorID string
	From     string // YYYY-MM-DD
	To       string // YYYY-MM-DD
	Page     int
	Limit    int
}

// BookAppointmentRequest creates an appointment.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"` // YYYY-MM-DD
	TimeSlot string `json:"timeSlot"`
	Reason   string `json:"reason"`
}

func (r BookAppointmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DoctorID, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.TimeSlot, validation.Required),
		validation.Field(&r.Reason, validation.Length(0, 500)),
	)
}

// AppointmentsService books and manages appointments.
type AppointmentsService struct {
	client *Client
}

func NewAppointmentsService(client *Client) *AppointmentsService {
	return &AppointmentsService{client: client}
}

func (s *AppointmentsService) List(ctx context.Context, opts AppointmentListOptions) (*AppointmentList, error) {
	params := Params{
		"status":   string(opts.Status),
		"doctorId": opts.DoctorID,
		"from":     opts.From,
		"to":       opts.To,
	}
	if opts.Page > 0 {
		params["page"] = opts.Page
	}
	if opts.Limit > 0 {
		params["limit"] = opts.Limit
	}

	env, err := s.client.Get(ctx, "/appointments", params)
	if err != nil {
		return nil, err
	}

	out := &AppointmentList{}
	if err := env.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentsService) Book(ctx context.Context, req BookAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	env, err := s.client.Post(ctx, "/appointments", req)
	if err != nil {
		return nil, err
	}

	return decodeAppointment(env)
}

func (s *AppointmentsService) UpdateStatus(ctx context.Context, id string, status AppointmentStatus) (*Appointment, error) {
	body := struct {
		Status AppointmentStatus `json:"status"`
	}{Status: status}

	env, err := s.client.Put(ctx, "/appointments/"+id+"/status", body)
	if err != nil {
		return nil, err
	}

	return decodeAppointment(env)
}

func (s *AppointmentsService) Cancel(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/appointments/"+id)
	return err
}

func decodeAppointment(env *Envelope) (*Appointment, error) {
	out := struct {
		Appointment Appointment `json:"appointment"`
	}{}
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	return &out.Appointment, nil
}
