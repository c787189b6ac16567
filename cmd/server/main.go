package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/zidalco/backend/internal/config"
	"github.com/zidalco/backend/internal/handler"
	"github.com/zidalco/backend/internal/logging"
	"github.com/zidalco/backend/internal/mailer"
	"github.com/zidalco/backend/internal/repository"
	"github.com/zidalco/backend/internal/service"
	"github.com/zidalco/backend/internal/storage"
	"github.com/zidalco/backend/pkg/auth"
	"github.com/zidalco/backend/pkg/supabase"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}

	store := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
	smtpMailer := mailer.New(cfg.SMTP)
	uploads := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPrefix)

	feedbackRepo := repository.NewSbFeedbackRepository(store)
	emailRepo := repository.NewSbEmailRepository(store)
	replyRepo := repository.NewSbReplyRepository(store)
	contentRepo := repository.NewSbContentRepository(store)

	feedbackService := service.NewFeedbackService(feedbackRepo)
	emailService := service.NewEmailService(emailRepo, smtpMailer)
	adminService := service.NewAdminService(feedbackRepo, emailRepo, replyRepo, smtpMailer, cfg.SMTP.From)
	authService := service.NewAuthService(store)
	contentService := service.NewContentService(contentRepo)

	h := handler.New(cfg.FrontendURL)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	emailHandler := handler.NewEmailHandler(emailService)
	adminHandler := handler.NewAdminHandler(adminService)
	authHandler := handler.NewAuthHandler(authService)
	contentHandler := handler.NewContentHandler(contentService, uploads)

	requireAuth := auth.RequireAuth(authService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// Public website endpoints.
	mux.HandleFunc("POST /api/feedback/submit", feedbackHandler.Submit)
	mux.HandleFunc("GET /api/feedback", feedbackHandler.List)
	mux.HandleFunc("GET /api/feedback/{id}", feedbackHandler.Get)
	mux.HandleFunc("PATCH /api/feedback/{id}/status", feedbackHandler.UpdateStatus)
	mux.HandleFunc("PATCH /api/feedback/{id}/read", feedbackHandler.MarkRead)

	mux.HandleFunc("POST /api/emails/send", emailHandler.Send)
	mux.HandleFunc("GET /api/emails", emailHandler.List)
	mux.HandleFunc("GET /api/emails/{id}", emailHandler.Get)
	mux.HandleFunc("PATCH /api/emails/{id}/status", emailHandler.UpdateStatus)
	mux.HandleFunc("PATCH /api/emails/{id}/read", emailHandler.MarkRead)
	mux.HandleFunc("POST /api/emails/{id}/resend", emailHandler.Resend)

	mux.HandleFunc("GET /api/contents", contentHandler.ListPublic)

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/forgot-password", authHandler.ForgotPassword)

	// Admin endpoints, all behind the bearer-token gate.
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(fn))
	}
	admin("GET /api/admin/dashboard-stats", adminHandler.DashboardStats)
	admin("GET /api/admin/notifications", adminHandler.Notifications)
	admin("POST /api/admin/reply-feedback", adminHandler.ReplyFeedback)
	admin("POST /api/admin/reply-email", adminHandler.ReplyEmail)
	admin("POST /api/admin/mark-read", adminHandler.MarkRead)
	admin("POST /api/admin/mark-all-read", adminHandler.MarkAllRead)

	admin("GET /api/admin/feedback", feedbackHandler.List)
	admin("GET /api/admin/feedback/{id}", feedbackHandler.Get)
	admin("DELETE /api/admin/feedback/{id}", feedbackHandler.Delete)

	admin("GET /api/admin/emails", emailHandler.List)
	admin("GET /api/admin/emails/{id}", emailHandler.Get)
	admin("DELETE /api/admin/emails/{id}", emailHandler.Delete)

	admin("GET /api/admin/contents", contentHandler.List)
	admin("POST /api/admin/contents", contentHandler.Create)
	admin("GET /api/admin/contents/{id}", contentHandler.Get)
	admin("PATCH /api/admin/contents/{id}", contentHandler.Update)
	admin("DELETE /api/admin/contents/{id}", contentHandler.Delete)
	admin("POST /api/admin/contents/upload", contentHandler.Upload)

	// Uploaded images are served directly from disk.
	mux.Handle("GET "+cfg.UploadURLPrefix+"/", http.StripPrefix(cfg.UploadURLPrefix+"/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	chain := handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux)))

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
