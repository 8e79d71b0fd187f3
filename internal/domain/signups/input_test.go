package signups

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  map[string]string
	}{
		{
			name:  "valid",
			input: Input{Email: "dylan@example.com", Consent: true},
			want:  nil,
		},
		{
			name:  "missing email",
			input: Input{Consent: true},
			want:  map[string]string{"email": MsgEmailRequired},
		},
		{
			name:  "no domain dot",
			input: Input{Email: "dylan@localhost", Consent: true},
			want:  map[string]string{"email": MsgEmailInvalid},
		},
		{
			name:  "display name",
			input: Input{Email: "Dylan <dylan@example.com>", Consent: true},
			want:  map[string]string{"email": MsgEmailInvalid},
		},
		{
			name:  "trailing dot",
			input: Input{Email: "dylan@example.", Consent: true},
			want:  map[string]string{"email": MsgEmailInvalid},
		},
		{
			name:  "missing consent",
			input: Input{Email: "dylan@example.com"},
			want:  map[string]string{"consent": MsgConsentRequired},
		},
		{
			name:  "long first name",
			input: Input{Email: "dylan@example.com", FirstName: strings.Repeat("a", 101), Consent: true},
			want:  map[string]string{"first_name": MsgFirstNameLength},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"email": "bad", "consent": "missing"}}
	assert.EqualError(t, err, "invalid signup: consent: missing; email: bad")
}
