package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
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
	"github.com/spf13/cast"
	"github.com/unrolled/render"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ProductHandler struct {
	repo         repositories.ProductRepositoryImpl
	themeRepo    repositories.ThemeRepositoryImpl
	uploader     services.ImageUploader
	render       *render.Render
	validate     *validator.Validate
	uploadFolder string
}

func NewProductHandler(repo repositories.ProductRepositoryImpl, themeRepo repositories.ThemeRepositoryImpl, uploader services.ImageUploader, rnd *render.Render, validate *validator.Validate, uploadFolder string) *ProductHandler {
	return &ProductHandler{
		repo:         repo,
		themeRepo:    themeRepo,
		uploader:     uploader,
		render:       rnd,
		validate:     validate,
		uploadFolder: uploadFolder,
	}
}

type ProductForm struct {
	Name             string          `json:"name" validate:"required,max=255"`
	FullDescription  string          `json:"fullDescription" validate:"required"`
	ShortDescription string          `json:"shortDescription" validate:"required"`
	Benefits         string          `json:"benefits" validate:"required"`
	ImageURL         string          `json:"imageUrl" validate:"omitempty,max=500"`
	Variants         json.RawMessage `json:"variants"`
	Theme            string          `json:"theme" validate:"required"`
	IsFeatured       bool            `json:"isFeatured"`
}

// ProductUpdateForm distinguishes absent fields from zero values; only
// supplied fields are written.
type ProductUpdateForm struct {
	Name             *string         `json:"name"`
	FullDescription  *string         `json:"fullDescription"`
	ShortDescription *string         `json:"shortDescription"`
	Benefits         *string         `json:"benefits"`
	ImageURL         *string         `json:"imageUrl"`
	Variants         json.RawMessage `json:"variants"`
	Theme            *string         `json:"theme"`
	IsFeatured       *bool           `json:"isFeatured"`
}

var errInvalidVariants = errors.New("invalid variants format")

// parseVariants decodes a variants payload. FormData clients JSON-encode the
// array into a string field, so a quoted payload is unwrapped once before
// decoding. Returns (nil, nil) when the payload is absent.
func parseVariants(raw []byte) ([]models.PriceVariant, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, errInvalidVariants
		}
		trimmed = bytes.TrimSpace([]byte(inner))
	}

	var variants []models.PriceVariant
	if err := json.Unmarshal(trimmed, &variants); err != nil {
		return nil, errInvalidVariants
	}
	for _, v := range variants {
		if strings.TrimSpace(v.Weight) == "" {
			return nil, errInvalidVariants
		}
	}
	return variants, nil
}

// ListAll returns every product with its theme populated. Admin only.
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetProducts(r.Context())
	if err != nil {
		zap.S().Errorf("ProductHandler.ListAll: failed to load products: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to load products"))
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetFeatured(r.Context())
	if err != nil {
		zap.S().Errorf("ProductHandler.Featured: failed to load featured products: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to load products"))
		return
	}
	_ = h.render.JSON(w, http.StatusOK, models.Summaries(products))
}

func (h *ProductHandler) ByTheme(w http.ResponseWriter, r *http.Request) {
	themeID := mux.Vars(r)["themeId"]

	products, err := h.repo.GetByThemeID(r.Context(), themeID)
	if err != nil {
		zap.S().Errorf("ProductHandler.ByTheme: failed to load products for theme %s: %v", themeID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to load products"))
		return
	}
	_ = h.render.JSON(w, http.StatusOK, models.Summaries(products))
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// The literal segment "featured" belongs to the featured route; if it
	// lands here the registration order in routes is wrong.
	if id == "featured" {
		zap.S().Warn("product id route matched literal \"featured\"; /featured must be registered before /{id}")
		_ = h.render.JSON(w, http.StatusNotFound, apierr.New(apierr.CodeNotFound, "product not found"))
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		zap.S().Errorf("ProductHandler.GetByID: failed to load product %s: %v", id, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to load product"))
		return
	}
	if product == nil {
		_ = h.render.JSON(w, http.StatusNotFound, apierr.New(apierr.CodeNotFound, "product not found"))
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form ProductForm
	var imageFile multipart.File

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed multipart body"))
			return
		}
		form = ProductForm{
			Name:             r.FormValue("name"),
			FullDescription:  r.FormValue("fullDescription"),
			ShortDescription: r.FormValue("shortDescription"),
			Benefits:         r.FormValue("benefits"),
			ImageURL:         r.FormValue("imageUrl"),
			Variants:         json.RawMessage(r.FormValue("variants")),
			Theme:            r.FormValue("theme"),
			IsFeatured:       cast.ToBool(r.FormValue("isFeatured")),
		}

		var err error
		if imageFile, err = formFile(r, "image"); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed image upload"))
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

	form.Name = strings.TrimSpace(form.Name)
	if err := h.validate.Struct(form); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.WithFields(apierr.CodeValidation, "validation failed", helpers.FormatValidationErrors(errs)))
			return
		}
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "validation failed"))
		return
	}

	variants, err := parseVariants(form.Variants)
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeInvalidVariants, "invalid variants format"))
		return
	}
	if len(variants) == 0 {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeInvalidVariants, "at least one price variant is required"))
		return
	}

	theme, err := h.themeRepo.GetByID(r.Context(), form.Theme)
	if err != nil {
		zap.S().Errorf("ProductHandler.Create: theme lookup failed for %s: %v", form.Theme, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to create product"))
		return
	}
	if theme == nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "unknown theme"))
		return
	}

	imageURL := form.ImageURL
	if imageFile != nil {
		imageURL, err = h.uploader.Upload(r.Context(), imageFile, h.uploadFolder+"/products", helpers.ImagePublicID("product", form.Name, "image"))
		if err != nil {
			zap.S().Errorf("ProductHandler.Create: image upload failed for %q: %v", form.Name, err)
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeUploadFailed, "failed to upload image file"))
			return
		}
	}

	product := &models.Product{
		ID:               uuid.New().String(),
		Name:             form.Name,
		FullDescription:  form.FullDescription,
		ShortDescription: form.ShortDescription,
		Benefits:         form.Benefits,
		ImageURL:         imageURL,
		Variants:         datatypes.NewJSONSlice(variants),
		ThemeID:          theme.ID,
		IsFeatured:       form.IsFeatured,
	}

	if err := h.repo.Create(r.Context(), product); err != nil {
		zap.S().Errorf("ProductHandler.Create: failed to persist product %q: %v", form.Name, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to create product"))
		return
	}
	product.Theme = theme

	_ = h.render.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		zap.S().Errorf("ProductHandler.Update: failed to load product %s: %v", id, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to update product"))
		return
	}
	if existing == nil {
		_ = h.render.JSON(w, http.StatusNotFound, apierr.New(apierr.CodeNotFound, "product not found"))
		return
	}

	var form ProductUpdateForm
	var imageFile multipart.File

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed multipart body"))
			return
		}
		form = ProductUpdateForm{
			Name:             multipartValue(r, "name"),
			FullDescription:  multipartValue(r, "fullDescription"),
			ShortDescription: multipartValue(r, "shortDescription"),
			Benefits:         multipartValue(r, "benefits"),
			ImageURL:         multipartValue(r, "imageUrl"),
			Theme:            multipartValue(r, "theme"),
		}
		if v := multipartValue(r, "variants"); v != nil {
			form.Variants = json.RawMessage(*v)
		}
		if v := multipartValue(r, "isFeatured"); v != nil {
			b := cast.ToBool(*v)
			form.IsFeatured = &b
		}

		if imageFile, err = formFile(r, "image"); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "malformed image upload"))
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

	updates := map[string]interface{}{}

	name := existing.Name
	if form.Name != nil && strings.TrimSpace(*form.Name) != "" {
		name = strings.TrimSpace(*form.Name)
		updates["name"] = name
	}
	if form.FullDescription != nil {
		updates["full_description"] = *form.FullDescription
	}
	if form.ShortDescription != nil {
		updates["short_description"] = *form.ShortDescription
	}
	if form.Benefits != nil {
		updates["benefits"] = *form.Benefits
	}
	if form.IsFeatured != nil {
		updates["is_featured"] = *form.IsFeatured
	}

	if form.Theme != nil {
		theme, err := h.themeRepo.GetByID(r.Context(), *form.Theme)
		if err != nil {
			zap.S().Errorf("ProductHandler.Update: theme lookup failed for %s: %v", *form.Theme, err)
			_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to update product"))
			return
		}
		if theme == nil {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeValidation, "unknown theme"))
			return
		}
		updates["theme_id"] = theme.ID
	}

	// Variants are replaced wholesale, never patched.
	variants, err := parseVariants(form.Variants)
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeInvalidVariants, "invalid variants format"))
		return
	}
	if variants != nil {
		if len(variants) == 0 {
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeInvalidVariants, "at least one price variant is required"))
			return
		}
		updates["variants"] = datatypes.NewJSONSlice(variants)
	}

	// Image precedence: uploaded file, then caller-provided URL, else the
	// stored value is retained.
	if imageFile != nil {
		url, err := h.uploader.Upload(r.Context(), imageFile, h.uploadFolder+"/products", helpers.ImagePublicID("product", name, "image"))
		if err != nil {
			zap.S().Errorf("ProductHandler.Update: image upload failed for %q: %v", name, err)
			_ = h.render.JSON(w, http.StatusBadRequest, apierr.New(apierr.CodeUploadFailed, "failed to upload image file"))
			return
		}
		updates["image_url"] = url
	} else if form.ImageURL != nil {
		updates["image_url"] = *form.ImageURL
	}

	updated, err := h.repo.Update(r.Context(), id, updates)
	if err != nil {
		zap.S().Errorf("ProductHandler.Update: failed to persist product %s: %v", id, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, apierr.New(apierr.CodeStorage, "failed to update product"))
		return
	}
	if updated == nil {
		_ = h.render.JSON(w, http.StatusNotFound, apierr.New(apierr.CodeNotFound, "product not found"))
		return
	}

	_ = h.render.JSON(w, http.StatusOK, updated)
}
