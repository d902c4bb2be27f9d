package validation_test

import (
	"errors"
	"testing"

	"portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
)

type contactInput struct {
	Name  string `json:"name" validate:"trimmed_min=2"`
	Email string `json:"email" validate:"contact_email"`
}

func TestIsEmail(t *testing.T) {
	valid := []string{"al@x.com", "first.last+tag@sub.example.co.uk", " padded@example.com "}
	for _, email := range valid {
		assert.True(t, validation.IsEmail(email), email)
	}

	invalid := []string{"", "plain", "a@b", "@example.com", "a@.com", "a b@example.com", "a@example."}
	for _, email := range invalid {
		assert.False(t, validation.IsEmail(email), email)
	}
}

func TestFieldCodes(t *testing.T) {
	v := validation.New()

	t.Run("Should key codes by json name", func(t *testing.T) {
		err := v.Struct(contactInput{Name: " A ", Email: "nope"})
		assert.Equal(t, map[string]string{
			"name":  validation.CodeTooShort,
			"email": validation.CodeInvalidFormat,
		}, validation.FieldCodes(err))
	})

	t.Run("Should return nil for a valid struct", func(t *testing.T) {
		assert.Nil(t, validation.FieldCodes(v.Struct(contactInput{Name: "Al", Email: "al@x.com"})))
	})

	t.Run("Should return nil for errors that are not field errors", func(t *testing.T) {
		assert.Nil(t, validation.FieldCodes(errors.New("boom")))
	})
}

func TestMessages(t *testing.T) {
	messages := validation.Messages(map[string]string{
		"name":    validation.CodeTooShort,
		"email":   validation.CodeInvalidFormat,
		"subject": validation.CodeTooShort,
		"message": validation.CodeTooShort,
	})

	assert.Equal(t, "Name must be at least 2 characters.", messages["name"])
	assert.Equal(t, "Please enter a valid email address.", messages["email"])
	assert.Equal(t, "Subject must be at least 5 characters.", messages["subject"])
	assert.Equal(t, "Message must be at least 10 characters.", messages["message"])
}
