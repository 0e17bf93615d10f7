package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/config"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/handler"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/middleware"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/migration"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/repository"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/routes"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/service"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/ws"
	pkgcache "github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/cache"
	pkgjwt "github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/jwt"
	pkglogger "github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/logger"
	pkgredis "github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Cadenza Messaging API
// @version         1.0
// @description     School administration platform - messaging subsystem API
//
// @host            localhost:8082
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis (optional; messaging degrades to no cache / single instance)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
	}

	// WebSocket hub for live sessions
	hub := ws.NewHub(redisClient)
	go hub.Run()
	defer hub.Stop()

	// Repositories
	studentRepo := repository.NewStudentRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	chatRepo := repository.NewChatRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	resolver := service.NewParticipantResolver(studentRepo, mentorRepo)
	fanout := service.NewFanout(notificationRepo, hub, cacheService)
	chatService := service.NewChatService(chatRepo, groupRepo, messageRepo, resolver, fanout, cacheService)
	groupService := service.NewGroupService(groupRepo, messageRepo, resolver, fanout)
	notificationService := service.NewNotificationService(notificationRepo, cacheService)

	// Handlers
	chatHandler := handler.NewChatHandler(chatService, groupService)
	groupHandler := handler.NewGroupHandler(groupService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	wsHandler := handler.NewWSHandler(hub, cfg.Server.AllowedOrigins)

	jwtManager := pkgjwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	// Router
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	corsCfg := cors.DefaultConfig()
	if cfg.Server.AllowedOrigins != "" {
		corsCfg.AllowOrigins = splitOrigins(cfg.Server.AllowedOrigins)
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Dedup-Token", "X-Request-ID")
	router.Use(cors.New(corsCfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(router, chatHandler, groupHandler, notificationHandler, wsHandler, jwtManager, cacheService)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)
	mysqlCfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	gormLogLevel := gormlogger.Warn
	if os.Getenv("APP_ENV") == "local" {
		gormLogLevel = gormlogger.Info
	}

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the chat and membership stores rely
	// on to recover uniqueness races.
	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func splitOrigins(origins string) []string {
	var out []string
	for _, part := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
