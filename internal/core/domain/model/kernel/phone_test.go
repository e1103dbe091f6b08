package kernel_test

import (
	"testing"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "bare international", input: "+254712345678", want: "+254712345678"},
		{name: "whatsapp prefix stripped", input: "whatsapp:+254712345678", want: "+254712345678"},
		{name: "whitespace trimmed", input: "  +254712345678 ", want: "+254712345678"},
		{name: "empty", input: "", wantErr: errs.ErrValueIsRequired},
		{name: "prefix only", input: "whatsapp:", wantErr: errs.ErrValueIsRequired},
		{name: "missing plus", input: "254712345678", wantErr: errs.ErrValueIsInvalid},
		{name: "letters rejected", input: "+2547abc5678", wantErr: errs.ErrValueIsInvalid},
		{name: "too short", input: "+1234", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, err := kernel.PhoneFromString(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NoError(t, phone.Validate())
			assert.Equal(t, tt.want, phone.String())
		})
	}
}

func TestPhone_WhatsAppAddress(t *testing.T) {
	phone, err := kernel.PhoneFromString("whatsapp:+254712345678")
	require.NoError(t, err)

	assert.Equal(t, "whatsapp:+254712345678", phone.WhatsAppAddress())
}

func TestPhone_IsEqual(t *testing.T) {
	a, err := kernel.PhoneFromString("whatsapp:+254712345678")
	require.NoError(t, err)
	b, err := kernel.PhoneFromString("+254712345678")
	require.NoError(t, err)
	c, err := kernel.PhoneFromString("+254700000000")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b), "normalization should make provider-prefixed and bare forms equal")
	assert.False(t, a.IsEqual(c))
}

func TestPhone_ZeroValueIsInvalid(t *testing.T) {
	var phone kernel.Phone
	require.ErrorIs(t, phone.Validate(), errs.ErrValueIsRequired)
}
