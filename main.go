package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"LandokProject/config"
	mongoutil "LandokProject/data/database/mgo/mongoutil"
	"LandokProject/logger"
	"LandokProject/middleware"
	"LandokProject/module/admin"
	"LandokProject/module/category"
	"LandokProject/module/chatmsg"
	"LandokProject/module/food"
	foodmodel "LandokProject/module/food/model"
	"LandokProject/module/image"
	"LandokProject/module/order"
	ordermodel "LandokProject/module/order/model"
	orderservice "LandokProject/module/order/service"
	"LandokProject/service/chat"
	chathandlers "LandokProject/service/chat/handlers"
	"LandokProject/service/mgo"
	"LandokProject/service/ratelimit"
	"LandokProject/service/storage/cloudinary"
	redisstore "LandokProject/service/storage/redis"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if cfg.MongoURI == "" {
		logger.Error("MONGO_URI is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mgo.StartAsync(ctx, &mongoutil.Config{
		Uri:      cfg.MongoURI,
		Database: cfg.MongoDB,
	})
	waitCtx, waitCancel := context.WithTimeout(ctx, 30*time.Second)
	defer waitCancel()
	if err := mgo.WaitReady(waitCtx); err != nil {
		logger.Errorf("mongo not ready: %v (last: %v)", err, mgo.Err())
		os.Exit(1)
	}
	logger.Infof("mongo connected db=%s", cfg.MongoDB)

	if cfg.RedisAddr != "" {
		if err := redisstore.InitRedis(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}); err != nil {
			logger.Warnf("redis unavailable, menu cache disabled: %v", err)
		} else {
			defer func() { _ = redisstore.CloseRedis() }()
		}
	}

	rt := chat.NewServer(chat.Config{AllowedOrigins: cfg.AllowedOrigins})
	chathandlers.Register(rt)

	limiter := ratelimit.NewLimiter(ratelimit.Conf{})
	orderSvc, err := orderservice.NewOrderService(limiter, &foodmodel.Food{}, &ordermodel.Order{}, rt)
	if err != nil {
		logger.Errorf("order service init: %v", err)
		os.Exit(1)
	}

	var uploader *cloudinary.Uploader
	if cfg.CloudinaryURL != "" {
		uploader, err = cloudinary.New(cfg.CloudinaryURL)
		if err != nil {
			logger.Warnf("cloudinary init failed, image uploads disabled: %v", err)
			uploader = nil
		}
	} else {
		logger.Warn("CLOUDINARY_URL not set, image uploads disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws", rt.HandleWS)

	api := r.Group("/api")
	food.RegisterRoutes(api.Group("/foods"))
	category.RegisterRoutes(api.Group("/categories"))
	order.NewHandler(orderSvc, cfg.AdminToken).RegisterRoutes(api.Group("/orders"))
	chatmsg.RegisterRoutes(api.Group("/chat"))
	admin.NewHandler(cfg.AdminUsername, cfg.AdminPassword).RegisterRoutes(api.Group("/admin"))
	image.NewHandler(uploader).RegisterRoutes(api.Group("/upload"))

	logger.Infof("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Errorf("server exited: %v", err)
		os.Exit(1)
	}
}
