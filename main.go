package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/dsdryfruits/storefront/app/cmd"
	"github.com/dsdryfruits/storefront/app/configs"
	"github.com/dsdryfruits/storefront/app/routes"
	"github.com/dsdryfruits/storefront/app/services"
	"github.com/gorilla/handlers"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

func main() {

	env := configs.LoadEnv()
	configs.InitLogger(env)
	defer func() { _ = zap.L().Sync() }()

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	if env.JWTSecret == "" {
		zap.S().Fatalf("JWT_SECRET is empty! Please check your .env file.")
	}
	if env.CloudinaryURL == "" {
		zap.S().Fatalf("CLOUDINARY_URL is empty! Please check your .env file.")
	}

	db, err := configs.OpenConnection()
	if err != nil {
		zap.S().Fatalf("DB connection failed: %v", err)
	}
	zap.S().Info("✅ Database connected.")

	uploader, err := services.NewCloudinaryUploader(env.CloudinaryURL)
	if err != nil {
		zap.S().Fatalf("Cloudinary init failed: %v", err)
	}

	mailer := services.NewMailer(services.MailConfig{
		Host:      env.EmailHost,
		Port:      cast.ToInt(env.EmailPort),
		Username:  env.EmailUsername,
		Password:  env.EmailPassword,
		From:      env.EmailFrom,
		Recipient: env.ContactRecipient,
	})

	google := services.NewGoogleVerifier(env.GoogleClientID)

	router := routes.NewRouter(db, env, uploader, mailer, google)

	origins := []string{"http://localhost:5173"}
	if env.CORSOrigins != "" {
		origins = strings.Split(env.CORSOrigins, ",")
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	server := http.Server{
		Addr:    env.Port,
		Handler: cors(router),
	}

	zap.S().Infof("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		zap.S().Errorf("server stopped: %v", err)
	}

}
