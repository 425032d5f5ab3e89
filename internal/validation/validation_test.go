package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	FullName string `form:"fullName" binding:"required,notblank,trimmed_min=3"`
	Email    string `form:"email" binding:"required,email"`
	Username string `form:"username" binding:"required,notblank,trimmed_min=3"`
	Password string `form:"password" binding:"required,min=8,has_upper,has_digit,has_special"`
}

func validate(t *testing.T, f registerForm) []string {
	t.Helper()
	require.NoError(t, Register())
	return Messages(binding.Validator.ValidateStruct(&f))
}

func TestMessages_Valid(t *testing.T) {
	msgs := validate(t, registerForm{FullName: "Alice A", Email: "a@example.com", Username: "alice", Password: "Passw0rd!"})
	assert.Empty(t, msgs)
}

func TestMessages_FirstRuleFirst(t *testing.T) {
	msgs := validate(t, registerForm{FullName: "Al", Email: "bad", Username: "alice", Password: "Passw0rd!"})
	require.Len(t, msgs, 2)
	assert.Equal(t, "fullName must be at least 3 characters", msgs[0])
	assert.Equal(t, "Invalid email", msgs[1])
}

func TestMessages_PasswordRules(t *testing.T) {
	tests := map[string]string{
		"short":      "password must be at least 8 characters",
		"password1!": "password must include an uppercase letter",
		"Password!!": "password must include a number",
		"Password11": "password must include a special character (!@#$%^&*)",
	}
	for pwd, want := range tests {
		msgs := validate(t, registerForm{FullName: "Alice A", Email: "a@example.com", Username: "alice", Password: pwd})
		require.Len(t, msgs, 1, pwd)
		assert.Equal(t, want, msgs[0], pwd)
	}
}

func TestMessages_Blank(t *testing.T) {
	msgs := validate(t, registerForm{FullName: "    ", Email: "a@example.com", Username: "alice", Password: "Passw0rd!"})
	require.Len(t, msgs, 1)
	assert.Equal(t, "fullName is required", msgs[0])
}

func TestMessages_NotValidationError(t *testing.T) {
	assert.Nil(t, Messages(assert.AnError))
}

func TestMessages_LengthCountsTrimmedValue(t *testing.T) {
	msgs := validate(t, registerForm{FullName: "  a  ", Email: "a@example.com", Username: " b  ", Password: "Passw0rd!"})
	require.Len(t, msgs, 2)
	assert.Equal(t, "fullName must be at least 3 characters", msgs[0])
	assert.Equal(t, "username must be at least 3 characters", msgs[1])

	assert.Empty(t, validate(t, registerForm{FullName: "  Bob  ", Email: "a@example.com", Username: " bob ", Password: "Passw0rd!"}))
}
