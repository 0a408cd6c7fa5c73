package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"clinicbook/shared/failure"
	"clinicbook/shared/validator"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Time      string `json:"time"      validate:"required,oneof=08:00 09:00 10:00"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid payload",
			body: `{"firstName":"Anna","email":"anna@example.com","time":"09:00"}`,
		},
		{
			name:    "missing required field",
			body:    `{"email":"anna@example.com","time":"09:00"}`,
			wantErr: "FirstName is required",
		},
		{
			name:    "invalid email",
			body:    `{"firstName":"Anna","email":"not-an-email","time":"09:00"}`,
			wantErr: "Email must be a valid email address",
		},
		{
			name:    "time outside enumeration",
			body:    `{"firstName":"Anna","email":"anna@example.com","time":"08:30"}`,
			wantErr: "Time must be one of 08:00 09:00 10:00",
		},
		{
			name:    "malformed json",
			body:    `{"firstName":`,
			wantErr: "failed to decode request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2025-03-10", "datetime=2006-01-02"))
	assert.Error(t, validator.ValidateVar("10-03-2025", "datetime=2006-01-02"))
}
