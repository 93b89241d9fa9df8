package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/stylesync-app/booking-api/internal/config"
	dbpkg "github.com/stylesync-app/booking-api/internal/db"
	infraRepo "github.com/stylesync-app/booking-api/internal/infra/repository"
	"github.com/stylesync-app/booking-api/internal/mail"
	"github.com/stylesync-app/booking-api/internal/reminder"
)

// reminderd sweeps upcoming appointments and emails the 24h and 2h
// reminders. It runs alongside the API against the same database; the
// persisted notification flags keep concurrent or restarted sweeps from
// double-sending.
func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	mailer := mail.NewSMTPMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.MailFrom,
	)

	repo := infraRepo.NewAppointmentGormRepository(db)
	sweeper := reminder.NewSweeper(repo, mailer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := func() {
		sent, err := sweeper.Run(ctx)
		if err != nil {
			log.Printf("sweep failed: %v", err)
			return
		}
		if sent > 0 {
			log.Printf("sweep sent %d reminder(s)", sent)
		}
	}

	log.Printf("reminderd running, interval %s", cfg.ReminderInterval)
	run()

	ticker := time.NewTicker(cfg.ReminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("reminderd shutting down")
			return
		case <-ticker.C:
			run()
		}
	}
}
