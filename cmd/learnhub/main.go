package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/geocoder89/learnhub/internal/app"
	"github.com/geocoder89/learnhub/internal/config"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, os.Stdout)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}

	workerCtx, stopWorker := context.WithCancel(ctx)
	workerDone := make(chan error, 1)
	go func() {
		workerDone <- a.Worker.Run(workerCtx)
	}()

	runErr := walkthrough(ctx, a)
	if runErr != nil {
		a.Log.Error("walkthrough failed", "err", runErr)
	}

	stopWorker()
	if err := <-workerDone; err != nil {
		a.Log.Error("worker stopped with error", "err", err)
	}

	shutdownCtx, cancel := config.WithTimeout(cfg.ShutdownTimeout)
	defer cancel()

	if err := a.Close(shutdownCtx); err != nil {
		a.Log.Error("shutdown failed", "err", err)
		os.Exit(1)
	}

	if families, err := a.Registry.Gather(); err == nil {
		a.Log.Info("metrics collected", "families", len(families))
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// walkthrough drives one course from authoring to a verified certificate.
func walkthrough(ctx context.Context, a *app.App) error {
	svc := a.LMS

	teacher, err := svc.RegisterUser(ctx, "Grace Hopper", "grace@lms.com", "compilers-rule", user.RoleTeacher)
	if err != nil {
		return err
	}

	c, err := svc.CreateCourse(ctx, "Practical Go", teacher.ID, decimal.Zero)
	if err != nil {
		return err
	}

	if _, err := svc.AddContent(ctx, c.ID, "Foundations", []string{"Types", "Functions", "Interfaces"}); err != nil {
		return err
	}
	if _, err := svc.PublishCourse(ctx, c.ID); err != nil {
		return err
	}

	// no role: the configured default applies
	student, err := svc.RegisterUser(ctx, "Ada Lovelace", "ada@lms.com", "analytical-engine", "")
	if err != nil {
		return err
	}
	if err := svc.Enroll(ctx, c.ID, student.ID, false); err != nil {
		return err
	}

	cert, err := svc.UpdateProgress(ctx, c.ID, student.ID, 100)
	if err != nil {
		return err
	}
	if cert == nil {
		return errors.New("completion did not issue a certificate")
	}

	verified, err := svc.Certificate(ctx, cert.ID)
	if err != nil {
		return err
	}

	a.Log.InfoContext(ctx, "certificate verified",
		"certificate_id", verified.ID,
		"user_id", verified.UserID,
		"course_id", verified.CourseID,
		"verification_url", svc.VerificationURL(verified),
	)
	return nil
}
