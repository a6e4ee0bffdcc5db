// cmd/container.go
//
// Root composition root. Owns infrastructure (DB, Redis, broker, FS) and
// composes the module services. This is the only place that knows about ALL
// modules.
package main

import (
	"context"

	"github.com/Abraxas-365/relaycrm/pkg/auth"
	"github.com/Abraxas-365/relaycrm/pkg/auth/authinfra"
	"github.com/Abraxas-365/relaycrm/pkg/auth/authsrv"
	"github.com/Abraxas-365/relaycrm/pkg/config"
	"github.com/Abraxas-365/relaycrm/pkg/courier"
	"github.com/Abraxas-365/relaycrm/pkg/courier/courierconsole"
	"github.com/Abraxas-365/relaycrm/pkg/courier/courierses"
	"github.com/Abraxas-365/relaycrm/pkg/courier/courierwa"
	"github.com/Abraxas-365/relaycrm/pkg/engagement/engagementinfra"
	"github.com/Abraxas-365/relaycrm/pkg/engagement/engagementsrv"
	"github.com/Abraxas-365/relaycrm/pkg/fsx"
	"github.com/Abraxas-365/relaycrm/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/relaycrm/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/relaycrm/pkg/lead/leadinfra"
	"github.com/Abraxas-365/relaycrm/pkg/lead/leadsrv"
	"github.com/Abraxas-365/relaycrm/pkg/logx"
	"github.com/Abraxas-365/relaycrm/pkg/reminder"
	"github.com/Abraxas-365/relaycrm/pkg/reminder/reminderinfra"
	"github.com/Abraxas-365/relaycrm/pkg/reminder/remindersrv"
	"github.com/Abraxas-365/relaycrm/pkg/settings/settingsinfra"
	"github.com/Abraxas-365/relaycrm/pkg/settings/settingssrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds shared infrastructure and the composed module services.
type Container struct {
	Config *config.Config

	// Infrastructure (shared across all modules)
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Publisher  reminder.EventPublisher

	// Module services and handlers
	AuthMiddleware     *auth.TokenMiddleware
	AuthHandlers       *authsrv.Handlers
	LeadHandlers       *leadsrv.Handlers
	EngagementHandlers *engagementsrv.Handlers
	ReminderService    *remindersrv.Service
	ReminderHandlers   *remindersrv.Handlers
	SettingsHandlers   *settingssrv.Handlers
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("initializing application container")

	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initModules()

	logx.Info("application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure — DB, Redis, broker, file storage
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	// 1. Database
	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("database connected")

	// 2. Redis
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err := c.Redis.Ping(context.Background()).Err(); err != nil {
		logx.Fatalf("failed to connect to redis: %v", err)
	}
	logx.Info("redis connected")

	// 3. Message broker
	publisher, err := reminderinfra.NewAMQPPublisher(c.Config.AMQP.URL, c.Config.AMQP.Exchange)
	if err != nil {
		logx.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	c.Publisher = publisher
	logx.Info("rabbitmq connected")

	// 4. File storage
	switch c.Config.Storage.Mode {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(c.Config.Storage.S3Region))
		if err != nil {
			logx.Fatalf("failed to load AWS config: %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.Storage.S3Bucket, "")
		logx.Infof("file storage: s3 bucket %s", c.Config.Storage.S3Bucket)
	default:
		local, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.LocalDir)
		if err != nil {
			logx.Fatalf("failed to init local storage: %v", err)
		}
		c.FileSystem = local
		logx.Infof("file storage: local dir %s", c.Config.Storage.LocalDir)
	}
}

// ---------------------------------------------------------------------------
// Modules
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	// Auth
	if c.Config.Auth.JWTSecret == "" {
		logx.Fatal("JWT_SECRET is required")
	}
	tokens := auth.NewJWTService(c.Config.Auth.JWTSecret, c.Config.Auth.AccessTokenTTL, c.Config.Auth.Issuer)
	users := authinfra.NewPostgresUserRepository(c.DB)
	authService := authsrv.NewService(users, tokens)
	c.AuthMiddleware = auth.NewTokenMiddleware(tokens)
	c.AuthHandlers = authsrv.NewHandlers(authService)

	// Leads
	leadRepo := leadinfra.NewPostgresRepository(c.DB)
	c.LeadHandlers = leadsrv.NewHandlers(leadsrv.NewService(leadRepo))

	// Engagements and outbound delivery
	engagementRepo := engagementinfra.NewPostgresRepository(c.DB)
	engagementService := engagementsrv.NewService(
		engagementRepo, c.buildCourier(), c.FileSystem, c.Config.Courier.EmailFrom)
	c.EngagementHandlers = engagementsrv.NewHandlers(engagementService)

	// Reminders
	reminderRepo := reminderinfra.NewPostgresRepository(c.DB)
	c.ReminderService = remindersrv.NewService(reminderRepo, c.Publisher)
	c.ReminderHandlers = remindersrv.NewHandlers(c.ReminderService)

	// Settings, cached through Redis
	settingsRepo := settingsinfra.NewCachedRepository(
		settingsinfra.NewPostgresRepository(c.DB), c.Redis, c.Config.Redis.CacheTTL)
	c.SettingsHandlers = settingssrv.NewHandlers(settingssrv.NewService(settingsRepo))
}

// buildCourier picks the delivery providers from config. Missing credentials
// fall back to the console provider so local development works offline.
func (c *Container) buildCourier() courier.Courier {
	console := courierconsole.NewConsoleProvider()
	out := courier.Courier{Chat: console, Email: console}

	if c.Config.Courier.ChatGatewayURL != "" && c.Config.Courier.ChatInstanceID != "" {
		out.Chat = courierwa.NewProvider(
			c.Config.Courier.ChatGatewayURL,
			c.Config.Courier.ChatInstanceID,
			c.Config.Courier.ChatGatewayKey,
			c.Config.Courier.SendTimeout,
		)
		logx.Info("chat courier: whatsapp gateway")
	} else {
		logx.Warn("chat courier: console (gateway not configured)")
	}

	if c.Config.Courier.EmailProvider == "ses" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(c.Config.Courier.SESRegion))
		if err != nil {
			logx.Fatalf("failed to load AWS config for SES: %v", err)
		}
		out.Email = courierses.NewSESProvider(ses.NewFromConfig(awsCfg), c.Config.Courier.EmailFrom)
		logx.Info("email courier: ses")
	} else {
		logx.Warn("email courier: console (provider not configured)")
	}

	return out
}

// Cleanup releases every connection the container owns.
func (c *Container) Cleanup() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logx.WithError(err).Warn("failed to close rabbitmq connection")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.WithError(err).Warn("failed to close redis connection")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.WithError(err).Warn("failed to close database connection")
		}
	}
}
