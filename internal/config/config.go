package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração carregada do ambiente no início do processo.
// Os segredos de assinatura são lidos uma única vez; rotas que dependem deles
// nunca consultam o ambiente novamente.
type Config struct {
	Port            int
	DBDSN           string
	JWTUserSecret   string
	JWTAdminSecret  string
	JWTAccessTTL    time.Duration
	AllowOrigins    []string
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig
	Upload          UploadConfig
	Admin           AdminConfig
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// UploadConfig define onde e como imagens de perfil são gravadas.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
	// PublicPath é o prefixo sob o qual o diretório é servido (ex.: /images).
	PublicPath string
}

// AdminConfig guarda as credenciais do administrador da plataforma.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
// Falha imediatamente quando DSN ou segredos estão ausentes.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "5000")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN obrigatório")
	}

	cfg.JWTUserSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTUserSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	cfg.JWTAdminSecret = strings.TrimSpace(getEnv("JWT_SECRET_ADMIN", ""))
	if len(cfg.JWTAdminSecret) < 32 {
		return nil, errors.New("JWT_SECRET_ADMIN deve ter pelo menos 32 caracteres")
	}
	if cfg.JWTAdminSecret == cfg.JWTUserSecret {
		return nil, errors.New("JWT_SECRET_ADMIN não pode ser igual a JWT_SECRET")
	}

	accessTTL, err := parseDurationEnv("JWT_ACCESS_TTL", 8*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTAccessTTL = accessTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	cfg.Upload = UploadConfig{
		Dir:        getEnv("UPLOAD_DIR", "uploads"),
		MaxBytes:   8 * 1024 * 1024,
		PublicPath: "/images",
	}

	cfg.Admin = AdminConfig{
		Name:     strings.TrimSpace(getEnv("ADMIN_NAME", "")),
		Email:    strings.TrimSpace(getEnv("ADMIN_EMAIL", "")),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil, errors.New("ADMIN_EMAIL e ADMIN_PASSWORD obrigatórios")
	}
	if cfg.Admin.Name == "" {
		cfg.Admin.Name = "Administrator"
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
