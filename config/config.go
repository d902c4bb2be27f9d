package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EmailProviderEmailJS = "emailjs"
	EmailProviderSMTP    = "smtp"
)

type Config struct {
	Port           string
	LogLevel       string
	FrontendURL    string
	AllowedOrigins []string
	ContentFile    string
	// Email delivery
	EmailProvider        string
	ContactRecipientName string
	ContactEmailTo       string
	// EmailJS Configuration
	EmailJSBaseURL    string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string // Optional accessToken for strict mode accounts
	EmailJSTimeout    time.Duration
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitEditThreshold    int
	RateLimitGlobalThreshold  int
	// Contact form sessions
	ContactSessionTTL  time.Duration
	ContactMaxSessions int
}

func LoadConfig() (*Config, error) {
	// .env is optional; production reads the real environment
	_ = godotenv.Load()

	frontendURL := strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/")

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    frontendURL,
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{frontendURL}),
		ContentFile:    getEnv("CONTENT_FILE", "content.yaml"),
		// Email delivery
		EmailProvider:        strings.ToLower(getEnv("EMAIL_PROVIDER", EmailProviderEmailJS)),
		ContactRecipientName: getEnv("CONTACT_RECIPIENT_NAME", "Michael Zhan"),
		ContactEmailTo:       getEnv("CONTACT_EMAIL_TO", ""),
		// EmailJS Configuration
		EmailJSBaseURL:    strings.TrimRight(getEnv("EMAILJS_BASE_URL", "https://api.emailjs.com"), "/"),
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		EmailJSTimeout:    time.Duration(getEnvInt("EMAILJS_TIMEOUT_SECONDS", 15)) * time.Second,
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),   // 1 minute window
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5), // 5 submits per window
		RateLimitEditThreshold:    getEnvInt("RATE_LIMIT_EDIT_THRESHOLD", 600),  // form edits per window
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 120),
		// Contact form sessions
		ContactSessionTTL:  time.Duration(getEnvInt("CONTACT_SESSION_TTL_MINUTES", 30)) * time.Minute,
		ContactMaxSessions: getEnvInt("CONTACT_MAX_SESSIONS", 10000),
	}

	if cfg.SMTPFromEmail == "" {
		cfg.SMTPFromEmail = cfg.SMTPUsername
	}

	switch cfg.EmailProvider {
	case EmailProviderEmailJS:
		if cfg.EmailJSPublicKey == "" || cfg.EmailJSServiceID == "" || cfg.EmailJSTemplateID == "" {
			log.Println("WARNING: EMAILJS_* not fully configured. Contact form will be unavailable.")
		}
	case EmailProviderSMTP:
		if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" || cfg.ContactEmailTo == "" {
			log.Println("WARNING: SMTP_* or CONTACT_EMAIL_TO not configured. Contact form will be unavailable.")
		}
	default:
		log.Printf("WARNING: unknown EMAIL_PROVIDER %q, falling back to %s", cfg.EmailProvider, EmailProviderEmailJS)
		cfg.EmailProvider = EmailProviderEmailJS
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks and trailing slashes
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
