package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gartstein/expocert/internal/expocert/auth"
	"github.com/gartstein/expocert/internal/expocert/controller"
	gorm "github.com/gartstein/expocert/internal/expocert/db"
	"github.com/gartstein/expocert/internal/expocert/events"
	"github.com/gartstein/expocert/internal/expocert/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration
type Config struct {
	DBHost           string   `yaml:"DB_HOST"`
	DBPort           int      `yaml:"DB_PORT"`
	DBUser           string   `yaml:"DB_USER"`
	DBPassword       string   `yaml:"DB_PASSWORD"`
	DBName           string   `yaml:"DB_NAME"`
	DBSSLMode        string   `yaml:"DB_SSLMODE"`
	KafkaBrokers     []string `yaml:"KAFKA_BROKERS"`
	JWTSecret        string   `yaml:"JWT_SECRET"`
	Topic            string   `yaml:"TOPIC"`
	MaxCompanies     int      `yaml:"MAX_COMPANIES"`
	MaxApplies       int      `yaml:"MAX_APPLIES"`
	DefaultCertQuota uint8    `yaml:"DEFAULT_CERT_QUOTA"`
}

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := gorm.NewRepository(initDatabase(cfg))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}
	defer repo.Close()

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		log.Fatal("failed to initialize Kafka producer", err)
	}
	defer producer.Close()

	workflowCfg := controller.Config{
		MaxCompanies:     cfg.MaxCompanies,
		MaxApplies:       cfg.MaxApplies,
		DefaultCertQuota: cfg.DefaultCertQuota,
	}
	applySvc := controller.NewApplyService(repo, producer, workflowCfg, logger)
	certSvc := controller.NewCertService(repo, producer, workflowCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Consume lifecycle events and log them as applicant notifications.
	consumer := events.NewConsumer(cfg.KafkaBrokers, "expocert-notifier", cfg.Topic,
		func(_ context.Context, event events.Event) error {
			logger.Info("workflow event",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID.String()),
			)
			return nil
		}, logger)
	consumer.Start(ctx)
	defer consumer.Close()

	if err := runDemoWorkflow(ctx, cfg, applySvc, certSvc, logger); err != nil {
		logger.Error("demo workflow failed", zap.Error(err))
	}

	waitForShutdown(logger)
}

// runDemoWorkflow drives one submission through both workflows end to end:
// register a company with an exhibition apply, then take a certificate apply
// from Pending to Issued.
func runDemoWorkflow(ctx context.Context, cfg *Config, applySvc *controller.ApplyService, certSvc *controller.CertService, logger *zap.Logger) error {
	// Authenticate the way a hosting environment would: mint and validate a
	// token for a demo account.
	token, err := auth.GenerateToken(models.CallerID("demo0001"), cfg.JWTSecret)
	if err != nil {
		return err
	}
	caller, err := auth.NewAuthenticator(cfg.JWTSecret).Authenticate(token)
	if err != nil {
		return err
	}

	company := &models.Company{
		Name:          "Blockchain Co. 1",
		Address:       "Beijing",
		Contact:       "Zhang San",
		Email:         "tom@abc.com",
		Mobile:        "13800000000",
		BusinessScope: "blockchain, web3, exhibitions on chain",
	}
	apply := &models.ExhibitionApply{
		Exhibition: models.CAEXPO,
		Purpose:    models.Exhibit,
		Exhibits:   "exhibit 1, exhibit 2",
		Booth:      models.BoothType{Kind: models.Standard, Value: 3},
	}
	if err := applySvc.Submit(ctx, caller, company, apply); err != nil {
		return err
	}
	quota := models.CalculateCertQuota(apply.Purpose, apply.Booth)
	logger.Info("exhibition apply recorded",
		zap.ByteString("company_id", company.ID),
		zap.ByteString("apply_id", apply.ID),
		zap.Uint32("visitor_certs", quota.Visitor),
		zap.Uint32("exhibitor_certs", quota.Exhibitor),
	)

	// The certificate workflow reads its own apply key space; record the
	// approved apply there under a caller-chosen id.
	directApply := &models.ExhibitionApply{
		ID:         models.ApplyID("demo-apply-0001"),
		CompanyID:  company.ID,
		Exhibition: apply.Exhibition,
		Purpose:    apply.Purpose,
		Exhibits:   apply.Exhibits,
		Booth:      apply.Booth,
	}
	if err := certSvc.CreateApply(ctx, caller, directApply); err != nil {
		return err
	}

	cert := &models.PassCert{
		ID:      models.CertID("demo-cert-0001"),
		ApplyID: directApply.ID,
	}
	if err := certSvc.CreateCert(ctx, caller, cert); err != nil {
		return err
	}
	for _, step := range []func(context.Context, models.CallerID, models.CertID) error{
		certSvc.Approve, certSvc.MarkMade, certSvc.MarkIssued,
	} {
		if err := step(ctx, caller, cert.ID); err != nil {
			return err
		}
	}
	logger.Info("certificate issued", zap.ByteString("cert_id", cert.ID))
	return nil
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// loadConfig loads configuration. Use real config tooling (e.g. Viper) in production.
func loadConfig() (*Config, error) {
	configPath := filepath.Join("internal", "expocert", "config", "config.yaml")
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// initDatabase initializes the database connection.
func initDatabase(cfg *Config) *gorm.Config {
	return &gorm.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// waitForShutdown blocks until an interrupt or SIGTERM is received.
func waitForShutdown(logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
}
