package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "planets-api/internal/shared/errors"
)

type testPayload struct {
	Name     string `json:"name" validate:"required,max=10"`
	Diameter int    `json:"diameter" validate:"required,min=1"`
	Moons    int    `json:"moons" validate:"min=0"`
}

func decode(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest("POST", "/planets", strings.NewReader(body))
	var payload testPayload
	return DecodeAndValidate(req, &payload)
}

func fieldMap(t *testing.T, err error) map[string]string {
	t.Helper()
	fields := apperrors.GetFields(err)
	require.NotEmpty(t, fields)
	m := make(map[string]string, len(fields))
	for _, fe := range fields {
		m[fe.Field] = fe.Message
	}
	return m
}

func TestValidPayloadPasses(t *testing.T) {
	assert.NoError(t, decode(t, `{"name":"Earth","diameter":12742,"moons":1}`))
}

func TestMissingRequiredFields(t *testing.T) {
	err := decode(t, `{"moons":0}`)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	fields := fieldMap(t, err)
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "is required", fields["diameter"])
}

func TestFieldNamesComeFromJSONTags(t *testing.T) {
	err := decode(t, `{"name":"way too long name","diameter":1}`)
	require.Error(t, err)

	fields := fieldMap(t, err)
	// Wire name, not the Go identifier.
	_, hasWireName := fields["name"]
	_, hasGoName := fields["Name"]
	assert.True(t, hasWireName)
	assert.False(t, hasGoName)
	assert.Equal(t, "must not exceed 10 characters", fields["name"])
}

func TestNumericBounds(t *testing.T) {
	err := decode(t, `{"name":"Earth","diameter":12742,"moons":-1}`)
	require.Error(t, err)

	fields := fieldMap(t, err)
	assert.Equal(t, "must be at least 0", fields["moons"])
}

func TestMalformedJSONIsValidationError(t *testing.T) {
	err := decode(t, `{"name":`)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}

func TestUnknownFieldsAreRejected(t *testing.T) {
	err := decode(t, `{"name":"Earth","diameter":1,"moons":0,"id":7}`)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}
