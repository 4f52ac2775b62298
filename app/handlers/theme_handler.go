package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dsdryfruits/storefront/app/helpers"
	"github.com/dsdryfruits/storefront/app/models"
	"github.com/dsdryfruits/storefront/app/repositories"
	"github.com/dsdryfruits/storefront/app/services"
	"github.com/dsdryfruits/storefront/app/utils/apierr"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ThemeHandler struct {
	repo         repositories.ThemeRepositoryImpl
	uploader     services.ImageUploader
	render       *render.Render
	validate     *validator.Validate
	uploadFolder string
}

func NewThemeHandler(repo repositories.ThemeRepositoryImpl, uploader services.ImageUploader, rnd *render.Render, validate *validator.Validate, uploadFolder string) *ThemeHandler {
	return &ThemeHandler{
		repo:         repo,
		uploader:     uploader,
		render:       rnd,
		validate:     validate,
		uploadFolder: uploadFolder,
	}
}

type ThemeForm struct {
	Name        string `json:"name" validate:"required,max=100"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,max=500"`
	BannerURL   string `json:"bannerUrl" validate:"omitempty,max=500"`
	Description string `json:"description"`
}

func (h *ThemeHandler) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.repo.GetAll(r.Context())
	if err != nil {
		zap.S().Errorf("ThemeHandler.List: failed to load themes: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to load themes"))
		return
	}
	if themes == nil {
		themes = []models.Theme{}
	}
	_ = h.render.JSON(w, http.StatusOK, themes)
}

func (h *ThemeHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	theme, err := h.repo.GetBySlug(r.Context(), slug)
	if err != nil {
		zap.S().Errorf("ThemeHandler.GetBySlug: failed to load theme %q: %v", slug, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to load theme"))
		return
	}
	if theme == nil {
		_ = h.render.JSON(w, http.StatusNotFound, apierr.New(apierr.CodeNotFound, "theme not found"))
		return
	}
	_ = h.render.JSON(w, http.StatusOK, theme)
}

func (h *ThemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form ThemeForm
	var imageFile, bannerFile multipart.File

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed multipart body"))
			return
		}
		form = ThemeForm{
			Name:        r.FormValue("name"),
			ImageURL:    r.FormValue("imageUrl"),
			BannerURL:   r.FormValue("bannerUrl"),
			Description: r.FormValue("description"),
		}

		var err error
		if imageFile, err = formFile(r, "image"); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed image upload"))
			return
		}
		if bannerFile, err = formFile(r, "banner"); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed banner upload"))
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed JSON body"))
			return
		}
	}
	if imageFile != nil {
		defer imageFile.Close()
	}
	if bannerFile != nil {
		defer bannerFile.Close()
	}

	form.Name = strings.TrimSpace(form.Name)
	if err := h.validate.Struct(form); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.WithFields(apierr.CodeValidation, "validation failed", helpers.FormatValidationErrors(errs)))
			return
		}
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "validation failed"))
		return
	}

	// Advisory pre-check; the unique index on name is the real guarantee.
	existing, err := h.repo.GetByName(r.Context(), form.Name)
	if err != nil {
		zap.S().Errorf("ThemeHandler.Create: conflict pre-check failed for %q: %v", form.Name, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to create theme"))
		return
	}
	if existing != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeNameConflict, "a theme with this name already exists"))
		return
	}

	bannerURL := form.BannerURL
	if bannerFile != nil {
		bannerURL, err = h.uploader.Upload(r.Context(), bannerFile, h.uploadFolder+"/themes", helpers.ImagePublicID("theme", form.Name, "banner"))
		if err != nil {
			zap.S().Errorf("ThemeHandler.Create: banner upload failed for %q: %v", form.Name, err)
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeUploadFailed, "failed to upload banner file"))
			return
		}
	}
	if strings.TrimSpace(bannerURL) == "" {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "a banner file or bannerUrl is required"))
		return
	}

	imageURL := form.ImageURL
	if imageFile != nil {
		imageURL, err = h.uploader.Upload(r.Context(), imageFile, h.uploadFolder+"/themes", helpers.ImagePublicID("theme", form.Name, "image"))
		if err != nil {
			zap.S().Errorf("ThemeHandler.Create: image upload failed for %q: %v", form.Name, err)
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeUploadFailed, "failed to upload image file"))
			return
		}
	}

	theme := &models.Theme{
		ID:          uuid.New().String(),
		Name:        form.Name,
		Slug:        helpers.SlugifyThemeName(form.Name),
		ImageURL:    imageURL,
		BannerURL:   bannerURL,
		Description: form.Description,
	}

	if err := h.repo.Create(r.Context(), theme); err != nil {
		if err == repositories.ErrDuplicateName {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeNameConflict, "a theme with this name already exists"))
			return
		}
		zap.S().Errorf("ThemeHandler.Create: failed to persist theme %q: %v", form.Name, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to create theme"))
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, theme)
}
