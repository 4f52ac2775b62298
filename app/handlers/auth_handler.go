package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dsdryfruits/storefront/app/helpers"
	"github.com/dsdryfruits/storefront/app/models"
	"github.com/dsdryfruits/storefront/app/repositories"
	"github.com/dsdryfruits/storefront/app/services"
	"github.com/dsdryfruits/storefront/app/utils/apierr"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userRepo          repositories.UserRepositoryImpl
	tokens            *services.TokenService
	google            services.GoogleVerifier
	render            *render.Render
	validate          *validator.Validate
	adminSignupSecret string
}

func NewAuthHandler(userRepo repositories.UserRepositoryImpl, tokens *services.TokenService, google services.GoogleVerifier, rnd *render.Render, validate *validator.Validate, adminSignupSecret string) *AuthHandler {
	return &AuthHandler{
		userRepo:          userRepo,
		tokens:            tokens,
		google:            google,
		render:            rnd,
		validate:          validate,
		adminSignupSecret: adminSignupSecret,
	}
}

type SignupForm struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role"`
	AdminSecret string `json:"adminSecret"`
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleForm struct {
	Token string `json:"token" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *AuthHandler) issue(w http.ResponseWriter, status int, user *models.User) {
	token, err := h.tokens.Issue(user)
	if err != nil {
		zap.S().Errorf("AuthHandler: failed to sign token for %s: %v", user.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to issue token"))
		return
	}
	_ = h.render.JSON(w, status, AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var form SignupForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed JSON body"))
		return
	}
	form.Email = normalizeEmail(form.Email)

	if err := h.validate.Struct(form); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.WithFields(apierr.CodeValidation, "email and password are required", helpers.FormatValidationErrors(errs)))
			return
		}
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "email and password are required"))
		return
	}

	existing, err := h.userRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		zap.S().Errorf("AuthHandler.Signup: lookup failed for %s: %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "signup failed"))
		return
	}
	if existing != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeUserExists, "user already exists"))
		return
	}

	role := models.RoleUser
	if form.Role == models.RoleAdmin {
		if h.adminSignupSecret == "" {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "admin signup is disabled"))
			return
		}
		if form.AdminSecret != h.adminSignupSecret {
			_ = h.render.JSON(w, http.StatusForbidden, apierr.New(apierr.CodeForbidden, "invalid admin secret"))
			return
		}
		role = models.RoleAdmin
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Name:     form.Name,
		Email:    form.Email,
		Password: helpers.HashPassword(form.Password),
		Role:     role,
	}

	if err := h.userRepo.Create(r.Context(), user); err != nil {
		if err == repositories.ErrDuplicateName {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeUserExists, "user already exists"))
			return
		}
		zap.S().Errorf("AuthHandler.Signup: failed to create user %s: %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "signup failed"))
		return
	}

	h.issue(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed JSON body"))
		return
	}
	form.Email = normalizeEmail(form.Email)

	if err := h.validate.Struct(form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "email and password are required"))
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		zap.S().Errorf("AuthHandler.Login: lookup failed for %s: %v", form.Email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "login failed"))
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(form.Password)) {
		_ = h.render.JSON(w, http.StatusUnauthorized, apierr.New(apierr.CodeUnauthorized, "invalid credentials"))
		return
	}

	h.issue(w, http.StatusOK, user)
}

func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var form GoogleForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed JSON body"))
		return
	}
	if err := h.validate.Struct(form); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "token is required"))
		return
	}

	profile, err := h.google.Verify(r.Context(), form.Token)
	if err != nil {
		zap.S().Warnf("AuthHandler.Google: verification failed: %v", err)
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "google account validation failed"))
		return
	}

	email := normalizeEmail(profile.Email)
	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil {
		zap.S().Errorf("AuthHandler.Google: lookup failed for %s: %v", email, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "login failed"))
		return
	}

	if user != nil {
		if user.GoogleID == nil {
			user.GoogleID = &profile.GoogleID
			user.Avatar = profile.Avatar
			if err := h.userRepo.Update(r.Context(), user); err != nil {
				zap.S().Errorf("AuthHandler.Google: failed to link account %s: %v", email, err)
				_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "login failed"))
				return
			}
		}
	} else {
		// Google accounts get a throwaway password; they never log in with it.
		user = &models.User{
			ID:       uuid.New().String(),
			Name:     profile.Name,
			Email:    email,
			Password: helpers.HashPassword(uuid.New().String()),
			Role:     models.RoleUser,
			GoogleID: &profile.GoogleID,
			Avatar:   profile.Avatar,
		}
		if err := h.userRepo.Create(r.Context(), user); err != nil {
			zap.S().Errorf("AuthHandler.Google: failed to create user %s: %v", email, err)
			_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "login failed"))
			return
		}
	}

	h.issue(w, http.StatusOK, user)
}
