package bootstrap

import (
	"fmt"
	"log"

	"supplier-onboarding-be/internal/config"
	"supplier-onboarding-be/internal/controller"
	"supplier-onboarding-be/internal/pkg/logger"
	"supplier-onboarding-be/internal/pkg/mailer"
	"supplier-onboarding-be/internal/repository/contract"
	"supplier-onboarding-be/internal/repository/implementation"
	"supplier-onboarding-be/internal/repository/keyvalue"
	"supplier-onboarding-be/internal/repository/memory"
	"supplier-onboarding-be/internal/service"
	"supplier-onboarding-be/pkg/database"
	"supplier-onboarding-be/pkg/export"
	"supplier-onboarding-be/pkg/pipeline"

	pktNats "supplier-onboarding-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const pipelineTopic = "pipeline-events"

type Container struct {
	// Controllers
	IntakeController controller.IIntakeController
	ReviewController controller.IReviewController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Logging
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() }, func() { _ = auditLogger.Sync() })

	// 2. Persistence
	submissions, err := c.submissionRepository(cfg)
	if err != nil {
		return nil, err
	}
	sessions := memory.NewIntakeSessionRepository(cfg.App.IntakeSessionTTL)

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Println("[INFO] SMTP_HOST not set, reviewer emails disabled")
	}

	// 4. Services
	publisherService := service.NewPublisherService(pipelineTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		pipelineTopic,
		emailService,
		mailboxes(cfg.Reviewers),
		forwarder,
		cfg.App.BaseURL,
		sysLogger,
	)

	intakeService := service.NewIntakeService(sessions, submissions, publisherService, sysLogger)
	reviewService := service.NewReviewService(submissions, publisherService, sysLogger, auditLogger, auditLogger)
	exportService := service.NewExportService(submissions, export.NewPDFExporter(cfg.Export.ChromePath), sysLogger)

	// 5. Controllers
	c.IntakeController = controller.NewIntakeController(intakeService)
	c.ReviewController = controller.NewReviewController(reviewService, exportService)

	return c, nil
}

func (c *Container) submissionRepository(cfg *config.Config) (contract.SubmissionRepository, error) {
	switch cfg.Storage.Driver {
	case config.PersistenceRedis:
		repo, err := keyvalue.NewSubmissionRepository(cfg.Storage.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis submission store: %w", err)
		}
		c.closers = append(c.closers, func() { _ = repo.Close() })
		log.Printf("[INFO] Using submission store: REDIS")
		return repo, nil
	case config.PersistencePostgres:
		db, err := database.NewGormDBFromDSN(cfg.Storage.Connection, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("postgres submission store: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, func() { _ = sqlDB.Close() })
		}
		log.Printf("[INFO] Using submission store: POSTGRES")
		return implementation.NewSubmissionRepository(db), nil
	}
	return nil, fmt.Errorf("unknown PERSISTENCE_DRIVER %q", cfg.Storage.Driver)
}

func mailboxes(r config.ReviewerMailboxes) service.ReviewerMailboxes {
	return service.ReviewerMailboxes{
		pipeline.StagePBPReview:         r.PBP,
		pipeline.StageProcurementReview: r.Procurement,
		pipeline.StageOPWReview:         r.OPW,
		pipeline.StageContractUpload:    r.Contract,
		pipeline.StageAPReview:          r.AP,
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
