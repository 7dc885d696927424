package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	intconfig "storefront/internal/config"
	router "storefront/internal/http"
	"storefront/internal/http/handlers"
	"storefront/internal/metrics"
	"storefront/internal/repositories"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	throttle := auth.NewThrottle(throttleState(env))
	throttle.OnLocked = func(remaining int) {
		metrics.LoginLocked()
		log.Printf("[AUTH] action=locked remaining_minutes=%d", remaining)
	}

	api := &handlers.API{
		Users:     repositories.UserRepository{DB: db},
		Products:  repositories.ProductRepository{DB: db},
		Purchases: repositories.PurchaseRepository{DB: db},
		Throttle:  throttle,
		Secret:    []byte(env.JWTSecret),
		TokenTTL:  env.TokenTTL,
	}

	// Router (Gin engine)
	r := router.NewRouter(env, api)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}

// throttleState shares the login counter through Redis when REDIS_ADDR is set.
func throttleState(env intconfig.Env) auth.ThrottleState {
	if env.RedisAddr == "" {
		log.Printf("Login throttle memakai memori proses")
		return auth.NewMemoryState()
	}

	client := auth.NewGoRedisEvaler(env.RedisAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		log.Fatalf("Gagal konek ke redis %s: %v", env.RedisAddr, err)
	}
	log.Printf("Login throttle memakai redis addr=%s", env.RedisAddr)
	return auth.NewRedisState(client, auth.DefaultThrottleKey)
}
