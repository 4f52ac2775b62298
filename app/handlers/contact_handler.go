package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dsdryfruits/storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ContactHandler struct {
	sender   services.ContactSender
	render   *render.Render
	validate *validator.Validate
}

func NewContactHandler(sender services.ContactSender, rnd *render.Render, validate *validator.Validate) *ContactHandler {
	return &ContactHandler{sender: sender, render: rnd, validate: validate}
}

type ContactForm struct {
	Name    string `json:"name" validate:"required,max=100"`
	Mobile  string `json:"mobile" validate:"required,max=20"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required"`
}

// ContactResponse keeps the {success, message} shape the storefront client
// reads for both the contact and bulk-order forms.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var form ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, ContactResponse{Success: false, Message: "Please fill in all required fields"})
		return
	}

	if err := h.validate.Struct(form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, ContactResponse{Success: false, Message: "Please fill in all required fields"})
		return
	}

	msg := services.ContactMessage{
		Name:    form.Name,
		Mobile:  form.Mobile,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	}

	if err := h.sender.SendContactMessage(msg); err != nil {
		zap.S().Errorf("ContactHandler.Send: relay failed for %s: %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, ContactResponse{Success: false, Message: "Failed to send message. Please try again later."})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, ContactResponse{Success: true, Message: "Your message has been sent successfully!"})
}
