package config

import (
	"log"
	"os"
	"strings"
	"time"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Env struct {
	AppAddr     string
	GinMode     string
	DBDriver    string
	DBDSN       string
	JWTSecret   string
	TokenTTL    time.Duration
	RedisAddr   string
	CORSOrigins []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if driver != DriverSQLite {
		driver = DriverMySQL
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = defaultDSN(driver)
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		log.Println("warning: JWT_SECRET kosong, memakai secret default (jangan dipakai di production)")
		secret = "super-secret-key-change-me"
	}

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("JWT_TTL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			ttl = d
		} else {
			log.Printf("warning: JWT_TTL tidak valid (%q), memakai %s", raw, ttl)
		}
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     ginMode,
		DBDriver:    driver,
		DBDSN:       dsn,
		JWTSecret:   secret,
		TokenTTL:    ttl,
		RedisAddr:   strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CORSOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func defaultDSN(driver string) string {
	if driver == DriverSQLite {
		return "storefront.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	return "root:@tcp(127.0.0.1:3306)/storefront?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
