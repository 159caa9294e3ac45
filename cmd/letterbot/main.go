package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	awsclient "letterbot/internal/common/aws"
	"letterbot/internal/common/config"
	"letterbot/internal/common/logger"
	"letterbot/internal/letter"
	"letterbot/internal/mail"
	"letterbot/internal/nationbuilder"
	"letterbot/internal/query"
	"letterbot/internal/server"
	"letterbot/internal/slack"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting letterbot",
		zap.String("environment", cfg.App.Environment),
		zap.String("mailProvider", cfg.Mail.Provider),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slackClient := slack.NewClient(cfg.Slack.WebhookURL, log)
	registrar := nationbuilder.NewClient(cfg.CRM.Slug, cfg.CRM.Token, cfg.CRM.Tags, log)
	encoder := letter.NewEncoder(registrar, log)

	mailer, err := mail.New(ctx, cfg.Mail, cfg.AWS.Region, log)
	if err != nil {
		zapLog.Fatal("mail provider init failed", zap.Error(err))
	}

	renderer, err := letter.NewRenderer(cfg.Mail.Template)
	if err != nil {
		zapLog.Fatal("email template parse failed", zap.Error(err))
	}

	// An empty bucket disables audit logging; approvals still deliver.
	var audit letter.AuditStore
	if cfg.Audit.Bucket != "" {
		s3Client, err := awsclient.NewS3Client(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Fatal("s3 client init failed", zap.Error(err))
		}
		audit = letter.NewS3AuditStore(s3Client, cfg.Audit.Bucket)
	} else {
		zapLog.Warn("audit bucket not configured, approvals will not be logged")
	}

	processor := letter.NewProcessor(
		cfg.Slack.VerificationToken, slackClient, mailer, renderer, audit, log)

	// An empty database disables querying; slash commands report that.
	var dispatcher *query.Dispatcher
	if cfg.Athena.Database != "" {
		athenaClient, err := awsclient.NewAthenaClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Fatal("athena client init failed", zap.Error(err))
		}
		engine := query.NewEngine(
			athenaClient,
			cfg.Athena.Database,
			cfg.Athena.Workgroup,
			"s3://"+cfg.Audit.Bucket+"/query-results/",
			config.GetDuration(cfg.Athena.PollInterval),
			log,
		)
		dispatcher = query.NewDispatcher(engine, cfg.Athena.Table, log)
	}

	snsClient, err := awsclient.NewSNSClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("sns client init failed", zap.Error(err))
	}

	srv := server.New(cfg, encoder, processor, dispatcher, slackClient, snsClient, log)
	if err := srv.Run(ctx); err != nil {
		zapLog.Fatal("server stopped", zap.Error(err))
	}

	zapLog.Info("shutdown complete")
}
