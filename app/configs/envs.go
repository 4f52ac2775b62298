package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	Port              string
	JWTSecret         string
	AdminSignupSecret string
	GoogleClientID    string
	CloudinaryURL     string
	UploadFolder      string
	EmailHost         string
	EmailPort         string
	EmailUsername     string
	EmailPassword     string
	EmailFrom         string
	ContactRecipient  string
	CORSOrigins       string
	LogFile           string
	APP_ENV           string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		Port:              os.Getenv("APP_PORT"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminSignupSecret: os.Getenv("ADMIN_SIGNUP_SECRET"),
		GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
		UploadFolder:      os.Getenv("UPLOAD_FOLDER"),
		EmailHost:         os.Getenv("EMAIL_HOST"),
		EmailPort:         os.Getenv("EMAIL_PORT"),
		EmailUsername:     os.Getenv("EMAIL_USERNAME"),
		EmailPassword:     os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:         os.Getenv("EMAIL_USERNAME"),
		ContactRecipient:  os.Getenv("CONTACT_RECIPIENT"),
		CORSOrigins:       os.Getenv("CORS_ORIGINS"),
		LogFile:           os.Getenv("LOG_FILE"),
		APP_ENV:           os.Getenv("APP_ENV"),
	}

}

var LoadENV = LoadEnv()
