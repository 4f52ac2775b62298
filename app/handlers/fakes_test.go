package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dsdryfruits/storefront/app/helpers"
	"github.com/dsdryfruits/storefront/app/models"
	"github.com/dsdryfruits/storefront/app/repositories"
	"github.com/dsdryfruits/storefront/app/routes"
	"github.com/dsdryfruits/storefront/app/services"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeThemeRepo struct {
	mu     sync.Mutex
	themes []*models.Theme

	// forceConflict simulates losing the insert race: the pre-check saw
	// nothing, but the unique index still rejects the row.
	forceConflict bool
}

func (f *fakeThemeRepo) Create(ctx context.Context, theme *models.Theme) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forceConflict {
		return repositories.ErrDuplicateName
	}
	for _, t := range f.themes {
		if t.Name == theme.Name || t.Slug == theme.Slug {
			return repositories.ErrDuplicateName
		}
	}
	cp := *theme
	f.themes = append(f.themes, &cp)
	return nil
}

func (f *fakeThemeRepo) GetAll(ctx context.Context) ([]models.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Theme, 0, len(f.themes))
	for _, t := range f.themes {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeThemeRepo) GetByID(ctx context.Context, id string) (*models.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.themes {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeThemeRepo) GetBySlug(ctx context.Context, slug string) (*models.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.themes {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeThemeRepo) GetByName(ctx context.Context, name string) (*models.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.themes {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeThemeRepo) add(theme *models.Theme) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *theme
	f.themes = append(f.themes, &cp)
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products []*models.Product
	themes   *fakeThemeRepo

	lastUpdates map[string]interface{}
}

func (f *fakeProductRepo) populate(p *models.Product) models.Product {
	cp := *p
	if f.themes != nil {
		theme, _ := f.themes.GetByID(context.Background(), p.ThemeID)
		cp.Theme = theme
	}
	return cp
}

func (f *fakeProductRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, f.populate(p))
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			cp := f.populate(p)
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByThemeID(ctx context.Context, themeID string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.products {
		if p.ThemeID == themeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetFeatured(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.products {
		if p.IsFeatured {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.products = append(f.products, &cp)
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var target *models.Product
	for _, p := range f.products {
		if p.ID == id {
			target = p
			break
		}
	}
	if target == nil {
		return nil, nil
	}

	f.lastUpdates = updates
	for col, val := range updates {
		switch col {
		case "name":
			target.Name = val.(string)
		case "full_description":
			target.FullDescription = val.(string)
		case "short_description":
			target.ShortDescription = val.(string)
		case "benefits":
			target.Benefits = val.(string)
		case "image_url":
			target.ImageURL = val.(string)
		case "theme_id":
			target.ThemeID = val.(string)
		case "is_featured":
			target.IsFeatured = val.(bool)
		case "variants":
			target.Variants = val.(datatypes.JSONSlice[models.PriceVariant])
		}
	}

	cp := f.populate(target)
	return &cp, nil
}

func (f *fakeProductRepo) add(product *models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.products = append(f.products, &cp)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateName
		}
	}
	cp := *user
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.users {
		if u.ID == user.ID {
			cp := *user
			f.users[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakeUserRepo) add(user *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users = append(f.users, &cp)
}

type fakeUploader struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.calls = append(f.calls, folder+"/"+publicID)
	return fmt.Sprintf("https://res.cloudinary.com/test/%s/%s.jpg", folder, publicID), nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []services.ContactMessage
	err  error
}

func (f *fakeSender) SendContactMessage(msg services.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeGoogle struct {
	profiles map[string]*services.GoogleProfile
}

func (f *fakeGoogle) Verify(ctx context.Context, rawIDToken string) (*services.GoogleProfile, error) {
	if p, ok := f.profiles[rawIDToken]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("invalid id token")
}

type fixture struct {
	themes   *fakeThemeRepo
	products *fakeProductRepo
	users    *fakeUserRepo
	uploader *fakeUploader
	sender   *fakeSender
	google   *fakeGoogle
	tokens   *services.TokenService
	router   *mux.Router

	adminToken string
	userToken  string
}

const adminSignupSecret = "super-secret"

func newFixture(t *testing.T) *fixture {
	t.Helper()

	themes := &fakeThemeRepo{}
	products := &fakeProductRepo{themes: themes}
	users := &fakeUserRepo{}
	uploader := &fakeUploader{}
	sender := &fakeSender{}
	google := &fakeGoogle{profiles: map[string]*services.GoogleProfile{}}
	tokens := services.NewTokenService("test-secret")

	admin := &models.User{ID: "admin-1", Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, Password: helpers.HashPassword("admin-pass")}
	customer := &models.User{ID: "user-1", Name: "Customer", Email: "user@example.com", Role: models.RoleUser, Password: helpers.HashPassword("user-pass")}
	users.add(admin)
	users.add(customer)

	router := routes.BuildRouter(routes.Deps{
		ThemeRepo:         themes,
		ProductRepo:       products,
		UserRepo:          users,
		Uploader:          uploader,
		ContactSender:     sender,
		Google:            google,
		Tokens:            tokens,
		AdminSignupSecret: adminSignupSecret,
		UploadFolder:      "home/Ds",
	})

	adminToken, err := tokens.Issue(admin)
	require.NoError(t, err)
	userToken, err := tokens.Issue(customer)
	require.NoError(t, err)

	return &fixture{
		themes:     themes,
		products:   products,
		users:      users,
		uploader:   uploader,
		sender:     sender,
		google:     google,
		tokens:     tokens,
		router:     router,
		adminToken: adminToken,
		userToken:  userToken,
	}
}

func (f *fixture) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return f.do(t, method, path, token, body, "application/json")
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeSlice(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeMap(t, rec)
	detail, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected an error envelope, got %s", rec.Body.String())
	code, _ := detail["code"].(string)
	return code
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := w.CreateFormFile(name, name+".jpg")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func sampleVariants() datatypes.JSONSlice[models.PriceVariant] {
	return datatypes.NewJSONSlice([]models.PriceVariant{
		{Weight: "500g", Price: decimal.NewFromInt(499)},
		{Weight: "1kg", Price: decimal.NewFromInt(899)},
	})
}
