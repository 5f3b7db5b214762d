package config

import (
	"os"
	"strings"
)

type Config struct {
	Port              string
	DatabaseURL       string
	RedisAddress      string
	RedisPassword     string
	JWTSecret         []byte
	AllowedOrigins    []string
	EventsChannel     string
	IncludeErrorStack bool
}

func Load() *Config {
	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET environment variable is required")
	}

	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173"
	}
	var allowedOrigins []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowedOrigins = append(allowedOrigins, o)
		}
	}

	eventsChannel := os.Getenv("EVENTS_CHANNEL")
	if eventsChannel == "" {
		eventsChannel = "shelter:events"
	}

	// Stack traces in error responses are a development convenience only.
	includeStack := os.Getenv("APP_ENV") != "production"

	return &Config{
		Port:              port,
		DatabaseURL:       dbURL,
		RedisAddress:      redisAddr,
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         []byte(jwtSecret),
		AllowedOrigins:    allowedOrigins,
		EventsChannel:     eventsChannel,
		IncludeErrorStack: includeStack,
	}
}
