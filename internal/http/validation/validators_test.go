package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "valid input", value: "Jakarta", want: ""},
		{name: "empty string", value: "", want: "Nama wajib diisi"},
		{name: "whitespace only", value: "   ", want: "Nama wajib diisi"},
		{name: "too long", value: strings.Repeat("a", 11), want: "Nama maksimal 10 karakter"},
		{name: "multibyte counts runes", value: strings.Repeat("é", 10), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Required("Nama", 10)(tt.value))
		})
	}
}

func TestEmail(t *testing.T) {
	v := Email("Email")
	assert.Empty(t, v(""))
	assert.Empty(t, v("budi@example.com"))
	assert.Equal(t, "Email tidak valid", v("budi@"))
	assert.Equal(t, "Email tidak valid", v("bukan email"))
}

func TestMinLength(t *testing.T) {
	v := MinLength("Password", 6)
	assert.Equal(t, "Password minimal 6 karakter!", v("12345"))
	assert.Empty(t, v("123456"))
}

func TestFieldValidator_FirstFollowsOrder(t *testing.T) {
	fv := New().
		Validate("name", "", Required("Nama", 50)).
		Validate("email", "x", Email("Email")).
		Validate("phone", "08123456", Required("Telepon", 20))

	assert.Len(t, fv.Errors(), 2)
	assert.Equal(t, "Nama wajib diisi", fv.First())
	assert.Equal(t, "Email tidak valid", fv.Errors()["email"])
	assert.Empty(t, New().First())
}
