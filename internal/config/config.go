package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	RedisAddr     string
	RedisPassword string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	AppPort       string
	AppEnv        string
	SecretKey     string
	StaffPinHash  string
	AdminPinHash  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		AppPort:       os.Getenv("APP_PORT"),
		AppEnv:        os.Getenv("APP_ENV"),
		SecretKey:     os.Getenv("SECRET_KEY"),
		StaffPinHash:  os.Getenv("STAFF_PIN_HASH"),
		AdminPinHash:  os.Getenv("ADMIN_PIN_HASH"),
	}

	if cfg.RedisAddr == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
