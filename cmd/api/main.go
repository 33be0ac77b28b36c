package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mamacare-health/notify-backend-go/internal/config"
	"github.com/mamacare-health/notify-backend-go/internal/domain/notification"
	appHTTP "github.com/mamacare-health/notify-backend-go/internal/handler/http"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/database"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/push"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/suppression"
	"github.com/mamacare-health/notify-backend-go/internal/repository/postgresql"
	appointmentService "github.com/mamacare-health/notify-backend-go/internal/service/appointment"
	notificationService "github.com/mamacare-health/notify-backend-go/internal/service/notification"
	recipientService "github.com/mamacare-health/notify-backend-go/internal/service/recipient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	recipientRepo := postgresql.NewRecipientRepository(db)
	appointmentRepo := postgresql.NewAppointmentRepository(db)

	fcmClient, err := push.NewFCMClient(cfg.FCM)
	if err != nil {
		log.Fatal("Failed to initialize push client: ", err)
	}

	// The suppression list is optional. Without Redis every fanout still
	// works, it just pays the provider round trip for dead tokens.
	var suppressionList notification.SuppressionList
	var suppressionCache *suppression.Cache
	if cfg.Redis.URL != "" {
		suppressionCache, err = suppression.New(cfg.Redis.URL, cfg.Redis.SuppressionTTL)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer suppressionCache.Close()
		suppressionList = suppressionCache
	}

	notificationSvc := notificationService.NewNotificationService(
		recipientRepo,
		fcmClient,
		suppressionList,
		notificationService.Config{
			Concurrency: cfg.Fanout.Concurrency,
			SendTimeout: cfg.FCM.Timeout,
		},
	)
	appointmentSvc := appointmentService.NewAppointmentService(appointmentRepo, notificationSvc)
	recipientSvc := recipientService.NewRecipientService(recipientRepo, suppressionList)

	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	appointmentHandler := appHTTP.NewAppointmentHandler(appointmentSvc)
	recipientHandler := appHTTP.NewRecipientHandler(recipientSvc)
	healthHandler := appHTTP.NewHealthHandler(db.Pool, fcmClient)

	router := appHTTP.NewRouter(
		cfg.App,
		notificationHandler,
		appointmentHandler,
		recipientHandler,
		healthHandler,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	stop()
	fmt.Println("Shutdown signal received, draining in-flight requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Forced shutdown:", err)
	}
}
