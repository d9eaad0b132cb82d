package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/bookmylook-auth/internal/dto"
)

type loginFields struct {
	Email    string `json:"email" validate:"omitempty,max=254,email"`
	Phone    string `json:"phone" validate:"omitempty,mobile"`
	Password string `json:"password" validate:"required"`
}

// ADMIN is never self-assigned; admins are provisioned out of band.
type registrationFields struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,personname"`
	LastName  string `json:"lastName" validate:"omitempty,min=2,max=50,personname"`
	Email     string `json:"email" validate:"required_without=Phone,omitempty,max=254,email"`
	Phone     string `json:"phone" validate:"required_without=Email,omitempty,mobile"`
	Role      string `json:"role" validate:"omitempty,oneof=CUSTOMER SALON_OWNER"`
}

var fieldMessages = map[string]map[string]string{
	"firstName": nameMessages("First name"),
	"lastName":  nameMessages("Last name"),
	"email": {
		"required_without": "Email is required",
		"max":              emailMessages["max"],
		"":                 emailMessages[""],
	},
	"phone": {
		"required_without": "Phone number is required",
		"":                 phoneMessages[""],
	},
	"password": {"required": "Password is required"},
	"role":     {"": "Role must be one of CUSTOMER, SALON_OWNER"},
}

// ValidateLoginRequest requires a password and at least one identifier; any
// identifier that is present must be well formed.
func ValidateLoginRequest(req *dto.LoginRequest) FieldErrors {
	in := loginFields{
		Email:    strings.TrimSpace(req.Email),
		Phone:    NormalizePhone(req.Phone),
		Password: req.Password,
	}

	fe := collect(validate.Struct(in))
	if in.Email == "" && in.Phone == "" {
		fe.add("identifier", invalid("Email or phone number is required"))
	}
	return fe
}

// ValidateRegistrationRequest reports every violated field. Email and phone
// are each required unless the other one is supplied.
func ValidateRegistrationRequest(req *dto.RegisterRequest) FieldErrors {
	in := registrationFields{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     NormalizePhone(req.Phone),
		Role:      req.Role,
	}

	fe := collect(validate.Struct(in))
	fe.add("password", ValidatePassword(req.Password))
	return fe
}

func collect(err error) FieldErrors {
	fe := FieldErrors{}
	if err == nil {
		return fe
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		fe.add("request", invalid(err.Error()))
		return fe
	}
	for _, e := range ve {
		field := e.Field()
		fe.add(field, invalid(messageFor(e.Tag(), fieldMessages[field])))
	}
	return fe
}
