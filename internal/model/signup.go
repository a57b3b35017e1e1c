// Package model holds the waitlist domain types shared by the HTTP,
// service and repository layers.
package model

import (
	"encoding/json"

	"github.com/Abhinav-2002/Salaried/internal/lib/utils"
	"github.com/Abhinav-2002/Salaried/internal/validation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SignupRequest is the normalized body of POST /api/waitlist.
//
// Decoding already trims every field, lower-cases the email with full
// Unicode case mapping and turns falsy optional values into nil, so
// Validate only has to check presence and shape. A whitespace-only
// optional value is not falsy and is kept as "".
type SignupRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required,email_shape"`
	Gender    string  `json:"gender" validate:"required"`
	SalaryMin *string `json:"salaryMin"`
	City      *string `json:"city"`
}

// signupPayload is the wire shape. Any JSON scalar is accepted per field.
type signupPayload struct {
	Name      utils.LooseString `json:"name"`
	Email     utils.LooseString `json:"email"`
	Gender    utils.LooseString `json:"gender"`
	SalaryMin utils.LooseString `json:"salaryMin"`
	City      utils.LooseString `json:"city"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *SignupRequest) UnmarshalJSON(data []byte) error {
	var p signupPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*r = SignupRequest{
		Name:      p.Name.Trimmed(),
		Email:     cases.Lower(language.Und).String(p.Email.Trimmed()),
		Gender:    p.Gender.Trimmed(),
		SalaryMin: p.SalaryMin.Optional(),
		City:      p.City.Optional(),
	}

	return nil
}

// Validate implements validation.Validatable.
func (r *SignupRequest) Validate() error {
	return validation.Struct(r)
}

// Signup is the record written to the waitlist table.
// Nil pointers are written as SQL NULL.
type Signup struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Gender    string  `json:"gender"`
	SalaryMin *string `json:"salary_min"`
	City      *string `json:"city"`
	IP        *string `json:"ip"`
	UserAgent *string `json:"user_agent"`
}

// NewSignup builds the stored record from a validated request and the
// metadata taken from the request headers.
func NewSignup(req *SignupRequest, ip, userAgent *string) *Signup {
	return &Signup{
		Name:      req.Name,
		Email:     req.Email,
		Gender:    req.Gender,
		SalaryMin: req.SalaryMin,
		City:      req.City,
		IP:        ip,
		UserAgent: userAgent,
	}
}

// SignupResponse is the body of a successful signup.
type SignupResponse struct {
	OK bool `json:"ok"`
}
