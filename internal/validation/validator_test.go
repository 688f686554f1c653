package validation

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customerPayload struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"emailAddress" validate:"required,email"`
	VatNumber *string `json:"vatNumber" validate:"omitempty,len=9,number"`
	City      string  `json:"city" validate:"required"`
}

func echoValidator(t *testing.T) *EchoValidator {
	t.Helper()

	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	require.True(t, ok, "en translator must be present")

	return Echo(validator.New(), trans)
}

func strPtr(s string) *string {
	return &s
}

func TestValidateCustomerPayload(t *testing.T) {
	v := echoValidator(t)

	tests := []struct {
		name    string
		payload customerPayload
		valid   bool
	}{
		{
			name:    "valid payload without vat",
			payload: customerPayload{Name: "A", Email: "a@b.pt", City: "Porto"},
			valid:   true,
		},
		{
			name:    "valid payload with nine digit vat",
			payload: customerPayload{Name: "A", Email: "a@b.pt", VatNumber: strPtr("123456789"), City: "Porto"},
			valid:   true,
		},
		{
			name:    "ten digit vat is rejected",
			payload: customerPayload{Name: "A", Email: "a@b.pt", VatNumber: strPtr("1234567899"), City: "Porto"},
		},
		{
			name:    "vat with letters is rejected",
			payload: customerPayload{Name: "A", Email: "a@b.pt", VatNumber: strPtr("12345678a"), City: "Porto"},
		},
		{
			name:    "missing name is rejected",
			payload: customerPayload{Email: "a@b.pt", City: "Porto"},
		},
		{
			name:    "malformed email is rejected",
			payload: customerPayload{Name: "A", Email: "not-an-email", City: "Porto"},
		},
		{
			name:    "missing city is rejected",
			payload: customerPayload{Name: "A", Email: "a@b.pt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.payload)
			if tt.valid {
				assert.NoError(t, err, "payload must pass validation")
				return
			}

			var pldErr *PayloadError
			require.ErrorAs(t, err, &pldErr, "violation must be reported as payload error")
			assert.NotEmpty(t, pldErr.Error(), "violation messages must be present")
		})
	}
}

func TestViolationsKeyedByWireName(t *testing.T) {
	v := echoValidator(t)

	payload := customerPayload{Name: "A", Email: "a@b.pt", VatNumber: strPtr("1234567899"), City: "Porto"}
	err := v.Validate(&payload)

	var pldErr *PayloadError
	require.ErrorAs(t, err, &pldErr, "violation must be reported as payload error")

	encoded, mErr := pldErr.MarshalJSON()
	require.NoError(t, mErr)
	assert.Contains(t, string(encoded), `"vatNumber"`, "violation must be keyed by json wire name")
	assert.NotContains(t, string(encoded), `"VatNumber"`, "struct field name must not leak to the client")
}

func TestPayloadErrorShape(t *testing.T) {
	pldErr := &PayloadError{}
	pldErr.Violation("vatNumber", "vatNumber must be 9 characters in length")
	pldErr.Violation("vatNumber", "vatNumber must be a valid number")

	encoded, err := pldErr.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`{"errors": {"vatNumber": ["vatNumber must be 9 characters in length", "vatNumber must be a valid number"]}}`,
		string(encoded),
		"violations must be keyed by field with list of messages",
	)
}
