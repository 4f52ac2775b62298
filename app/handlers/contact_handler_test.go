package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactPayload() map[string]string {
	return map[string]string{
		"name":    "Priya",
		"mobile":  "9876543210",
		"email":   "priya@example.com",
		"subject": "Bulk order",
		"message": "Looking to order 50 gift boxes.",
	}
}

func TestContactSend(t *testing.T) {
	f := newFixture(t)

	rec := f.doJSON(t, http.MethodPost, "/api/contact", "", contactPayload())

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Your message has been sent successfully!", body["message"])

	require.Len(t, f.sender.sent, 1)
	msg := f.sender.sent[0]
	assert.Equal(t, "Priya", msg.Name)
	assert.Equal(t, "Bulk order", msg.Subject)
	assert.Equal(t, "priya@example.com", msg.Email)
}

func TestContactSubjectOptional(t *testing.T) {
	f := newFixture(t)
	payload := contactPayload()
	delete(payload, "subject")

	rec := f.doJSON(t, http.MethodPost, "/api/contact", "", payload)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.sender.sent, 1)
	assert.Empty(t, f.sender.sent[0].Subject)
}

func TestContactValidation(t *testing.T) {
	f := newFixture(t)

	for _, missing := range []string{"name", "mobile", "email", "message"} {
		t.Run("missing "+missing, func(t *testing.T) {
			payload := contactPayload()
			delete(payload, missing)

			rec := f.doJSON(t, http.MethodPost, "/api/contact", "", payload)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeMap(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Please fill in all required fields", body["message"])
		})
	}
	assert.Empty(t, f.sender.sent)
}

func TestContactRelayFailure(t *testing.T) {
	f := newFixture(t)
	f.sender.err = fmt.Errorf("smtp timeout")

	rec := f.doJSON(t, http.MethodPost, "/api/contact", "", contactPayload())

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to send message. Please try again later.", body["message"])
}
