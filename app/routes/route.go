package routes

import (
	"net/http"

	"github.com/dsdryfruits/storefront/app/configs"
	"github.com/dsdryfruits/storefront/app/handlers"
	"github.com/dsdryfruits/storefront/app/middlewares"
	"github.com/dsdryfruits/storefront/app/repositories"
	"github.com/dsdryfruits/storefront/app/services"
	"github.com/dsdryfruits/storefront/app/utils/renderer"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Deps are the collaborators behind the API surface. Tests swap in fakes.
type Deps struct {
	ThemeRepo         repositories.ThemeRepositoryImpl
	ProductRepo       repositories.ProductRepositoryImpl
	UserRepo          repositories.UserRepositoryImpl
	Uploader          services.ImageUploader
	ContactSender     services.ContactSender
	Google            services.GoogleVerifier
	Tokens            *services.TokenService
	AdminSignupSecret string
	UploadFolder      string
}

func NewRouter(db *gorm.DB, env configs.ENV, uploader services.ImageUploader, sender services.ContactSender, google services.GoogleVerifier) *mux.Router {
	uploadFolder := env.UploadFolder
	if uploadFolder == "" {
		uploadFolder = "home/Ds"
	}

	return BuildRouter(Deps{
		ThemeRepo:         repositories.NewThemeRepository(db),
		ProductRepo:       repositories.NewProductRepository(db),
		UserRepo:          repositories.NewUserRepository(db),
		Uploader:          uploader,
		ContactSender:     sender,
		Google:            google,
		Tokens:            services.NewTokenService(env.JWTSecret),
		AdminSignupSecret: env.AdminSignupSecret,
		UploadFolder:      uploadFolder,
	})
}

func BuildRouter(d Deps) *mux.Router {
	rnd := renderer.New()
	validate := validator.New()

	themeHandler := handlers.NewThemeHandler(d.ThemeRepo, d.Uploader, rnd, validate, d.UploadFolder)
	productHandler := handlers.NewProductHandler(d.ProductRepo, d.ThemeRepo, d.Uploader, rnd, validate, d.UploadFolder)
	contactHandler := handlers.NewContactHandler(d.ContactSender, rnd, validate)
	authHandler := handlers.NewAuthHandler(d.UserRepo, d.Tokens, d.Google, rnd, validate, d.AdminSignupSecret)

	verify := middlewares.VerifyToken(d.Tokens, rnd)
	requireAdmin := middlewares.RequireAdmin(d.UserRepo, rnd)
	admin := func(h http.HandlerFunc) http.Handler {
		return verify(requireAdmin(h))
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	themes := api.PathPrefix("/themes").Subrouter()
	themes.HandleFunc("", themeHandler.List).Methods("GET")
	themes.HandleFunc("/by-slug/{slug}", themeHandler.GetBySlug).Methods("GET")
	themes.Handle("", admin(themeHandler.Create)).Methods("POST")

	products := api.PathPrefix("/products").Subrouter()
	// /featured must be registered before /{id} so the literal segment is
	// never captured as a product id.
	products.HandleFunc("/featured", productHandler.Featured).Methods("GET")
	products.Handle("", admin(productHandler.ListAll)).Methods("GET")
	products.HandleFunc("/by-theme/{themeId}", productHandler.ByTheme).Methods("GET")
	products.Handle("", admin(productHandler.Create)).Methods("POST")
	products.Handle("/{id}", admin(productHandler.Update)).Methods("PUT")
	products.HandleFunc("/{id}", productHandler.GetByID).Methods("GET")

	api.HandleFunc("/contact", contactHandler.Send).Methods("POST")

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/google", authHandler.Google).Methods("POST")

	return router
}
