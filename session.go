package medclient

import (
	"encoding/json"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Session is the in-memory record of the currently authenticated user. It is
// owned by the SessionManager: exactly one is live per application and every
// consumer reads it through the manager rather than decoding the credential.
type Session struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Role          Role       `json:"role"`
	EmailVerified bool       `json:"emailVerified"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// FullName joins the name parts, tolerating either being empty.
func (s *Session) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role Role) bool {
	return s.Role == role
}

// UserUUID parses the session id for backends that issue UUID identifiers.
func (s *Session) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.ID)
}

// userPayload is the wire shape of a user object. Document-store backends
// send _id, SQL ones send id; both are accepted.
type userPayload struct {
	ID            string     `json:"id"`
	MongoID       string     `json:"_id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"emailVerified"`
	IsActive      *bool      `json:"isActive"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

func (u userPayload) identifier() string {
	if u.ID != "" {
		return u.ID
	}
	return u.MongoID
}

func sessionFromUser(u userPayload, fallback Role) *Session {
	session := &Session{
		ID:            u.identifier(),
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          fallback,
		EmailVerified: u.EmailVerified,
		IsActive:      true,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}

	if role, ok := ParseRole(u.Role); ok {
		session.Role = role
	}

	if u.IsActive != nil {
		session.IsActive = *u.IsActive
	}

	return session
}

// sessionFromProfile normalizes the role-specific "who am I" payloads into
// the common Session shape. Each endpoint wraps the user differently: the
// doctor payload nests it under doctor.userId, the admin payload under
// admin, and the default endpoint under user (or sends it bare).
func sessionFromProfile(role Role, data json.RawMessage) (*Session, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}

	switch role {
	case RoleDoctor:
		wrapper := struct {
			Doctor struct {
				User userPayload `json:"userId"`
			} `json:"doctor"`
		}{}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unexpected doctor profile shape")
		}
		if wrapper.Doctor.User.identifier() == "" {
			return nil, goerrors.New("doctor profile is missing its user record", goerrors.CategoryOperation)
		}
		return sessionFromUser(wrapper.Doctor.User, RoleDoctor), nil

	case RoleAdmin:
		wrapper := struct {
			Admin *userPayload `json:"admin"`
			User  *userPayload `json:"user"`
		}{}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unexpected admin profile shape")
		}
		if wrapper.Admin != nil && wrapper.Admin.identifier() != "" {
			return sessionFromUser(*wrapper.Admin, RoleAdmin), nil
		}
		if wrapper.User != nil && wrapper.User.identifier() != "" {
			return sessionFromUser(*wrapper.User, RoleAdmin), nil
		}
		return nil, goerrors.New("admin profile is missing its user record", goerrors.CategoryOperation)

	default:
		wrapper := struct {
			User *userPayload `json:"user"`
		}{}
		if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.User != nil && wrapper.User.identifier() != "" {
			return sessionFromUser(*wrapper.User, RolePatient), nil
		}

		bare := userPayload{}
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unexpected profile shape")
		}
		if bare.identifier() == "" {
			return nil, goerrors.New("profile is missing its user record", goerrors.CategoryOperation)
		}
		return sessionFromUser(bare, RolePatient), nil
	}
}

// sessionFromClaims synthesizes the degraded fallback session from locally
// decoded claims. Missing identity fields get explicit placeholders so the
// UI renders something coherent until the backend is reachable again.
func sessionFromClaims(claims *Claims) (*Session, error) {
	if claims == nil || !claims.HasRole() {
		return nil, ErrNoRoleClaim
	}

	session := &Session{
		ID:        claims.UserID(),
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      claims.Role,
		IsActive:  true,
		CreatedAt: claims.IssuedAt,
	}

	if session.ID == "" {
		session.ID = "unknown"
	}

	if session.FirstName == "" && session.LastName == "" {
		session.FirstName = "Account"
		session.LastName = "User"
	}

	return session, nil
}
