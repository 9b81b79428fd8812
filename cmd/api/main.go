package main

import (
	"context"
	"time"

	"VidTube.com/cmd/api/mw"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/cmd/dal/db"
	"VidTube.com/config"
	"VidTube.com/pkg/cache"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/search"
	"VidTube.com/pkg/tracer"
	"VidTube.com/pkg/utils"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/cors"
	"github.com/sirupsen/logrus"
)

const commentsPerMinute = 10

func initLogger() {
	level, err := logrus.ParseLevel(config.ConfigInfo.Server.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if !config.IsDevelopment() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// Init 必需组件(MySQL MinIO)失败直接退出 其余组件失败时降级运行
func Init(ctx context.Context) (deps, func()) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	cfg := config.ConfigInfo

	if cfg.Jaeger.AgentAddr != "" {
		closer, err := tracer.InitJaeger(cfg.Jaeger.ServiceName, cfg.Jaeger.AgentAddr)
		if err != nil {
			logrus.Warnf("tracing disabled: %v", err)
		} else {
			closers = append(closers, func() { _ = closer.Close() })
		}
	}

	gdb, err := db.Open(utils.GetMysqlDsn(), cfg.Mysql.MaxOpenConns, cfg.Mysql.MaxIdleConns)
	if err != nil {
		logrus.Fatalf("connect mysql failed: %v", err)
	}
	store := db.NewStore(gdb)
	if err = store.AutoMigrate(); err != nil {
		logrus.Fatalf("migrate schema failed: %v", err)
	}
	closers = append(closers, func() { _ = store.Close() })

	media, err := oss.NewMinioStore(ctx, oss.Config{
		Endpoint:      cfg.Minio.Endpoint,
		AccessKey:     cfg.Minio.AccessKey,
		SecretKey:     cfg.Minio.SecretKey,
		UseSSL:        cfg.Minio.UseSSL,
		Bucket:        cfg.Minio.Bucket,
		PublicBaseURL: cfg.Minio.PublicBaseURL,
	})
	if err != nil {
		logrus.Fatalf("connect minio failed: %v", err)
	}

	d := deps{
		store:   store,
		media:   media,
		probe:   utils.ProbeDuration,
		tempDir: cfg.Server.TempDir,
		jwt: authfunc.Config{
			AccessSecret:  cfg.Jwt.AccessSecret,
			AccessTTL:     cfg.Jwt.AccessTTL,
			RefreshSecret: cfg.Jwt.RefreshSecret,
			RefreshTTL:    cfg.Jwt.RefreshTTL,
		},
	}

	// 只有创建成功时才赋值给接口 避免出现非nil接口包着nil指针
	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(ctx, cache.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			logrus.Warnf("redis disabled: %v", err)
		} else {
			denylist := cache.NewTokenDenylist(client)
			d.locker = cache.NewLocker(client)
			d.limiter = cache.NewRateLimiter(client, commentsPerMinute, time.Minute)
			d.revoker = denylist
			d.denylist = denylist
			closers = append(closers, func() { _ = client.Close() })
		}
	}

	if url := config.RabbitMqURL(); url != "" {
		producer, err := mq.NewProducer(url, cfg.RabbitMq.Exchange)
		if err != nil {
			logrus.Warnf("event publishing disabled: %v", err)
		} else {
			d.events = producer
			closers = append(closers, func() { _ = producer.Close() })
		}
	}

	if cfg.Elastic.URL != "" {
		index, err := search.NewVideoIndex(ctx, cfg.Elastic.URL, cfg.Elastic.Index)
		if err != nil {
			logrus.Warnf("search index disabled: %v", err)
		} else {
			d.index = index
		}
	}
	return d, cleanup
}

func main() {
	config.Init()
	initLogger()
	ctx := context.Background()

	d, cleanup := Init(ctx)
	defer cleanup()

	rt, err := newRoutes(d)
	if err != nil {
		logrus.Fatalf("init routes failed: %v", err)
	}

	cfg := config.ConfigInfo.Server
	r := server.New(
		server.WithHostPorts(cfg.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.MaxBodySize),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(mw.Recovery(), mw.Tracing(), mw.Metrics())

	if cfg.FlowQPS > 0 {
		if err = mw.InitFlowControl(cfg.FlowQPS); err != nil {
			logrus.Warnf("flow control disabled: %v", err)
		} else {
			r.Use(mw.FlowControl())
		}
	}

	// 注册路由
	register(r.Engine, rt)

	logrus.Infof("vidtube api listening on %s", cfg.Addr)
	r.Spin()
}
