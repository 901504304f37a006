package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/library/internal/application/auth"
	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	appcirculation "github.com/xiebiao/library/internal/application/circulation"
	appfine "github.com/xiebiao/library/internal/application/fine"
	appmember "github.com/xiebiao/library/internal/application/member"
	appnotification "github.com/xiebiao/library/internal/application/notification"
	appreservation "github.com/xiebiao/library/internal/application/reservation"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/googlebooks"
	"github.com/xiebiao/library/internal/infrastructure/notify"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/internal/scheduler"
	"github.com/xiebiao/library/pkg/clock"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire自动组装版本）
func main() {
	// 1. 初始化监控指标
	metrics.InitMetrics()

	// 2. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 借期%d天/续借%d次/每日罚款%.2f元/欠费阈值%.2f元/保留%d天\n",
		cfg.Circulation.LoanPeriodDays, cfg.Circulation.MaxRenewals,
		cfg.Circulation.DailyFineAmount, cfg.Circulation.MaxFineThreshold,
		cfg.Circulation.HoldExpiryDays)

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 消息队列（可选，关闭时通知只落库）
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("连接RabbitMQ失败: %v", err)
		}
		defer publisher.Close()
	}

	// 6. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	memberRepo := mysql.NewMemberRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	resRepo := mysql.NewReservationRepository(db)
	fineRepo := mysql.NewFineRepository(db)
	notificationRepo := mysql.NewNotificationRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	clk := clock.System{}
	notifier := notify.NewService(notificationRepo, publisher, clk)
	booksClient := googlebooks.NewClient(cfg.GoogleBooks)
	policy := cfg.Circulation

	// 领域层
	memberService := member.NewService(memberRepo)

	// 应用层
	queueService := appreservation.NewQueueService(resRepo, bookRepo, notifier, clk)

	issueUseCase := appcirculation.NewIssueLoanUseCase(loanRepo, bookRepo, memberRepo, resRepo, fineRepo, txManager, policy, clk)
	returnUseCase := appcirculation.NewReturnLoanUseCase(loanRepo, bookRepo, fineRepo, queueService, notifier, txManager, policy, clk)
	renewUseCase := appcirculation.NewRenewLoanUseCase(loanRepo, bookRepo, memberRepo, resRepo, txManager, policy, clk)
	lostUseCase := appcirculation.NewMarkLostUseCase(loanRepo, bookRepo, fineRepo, notifier, txManager, clk)
	listLoansUseCase := appcirculation.NewListLoansUseCase(loanRepo, bookRepo, clk)

	createResUseCase := appreservation.NewCreateReservationUseCase(resRepo, bookRepo, memberRepo, loanRepo, fineRepo, txManager, policy, clk)
	cancelResUseCase := appreservation.NewCancelReservationUseCase(resRepo, bookRepo, queueService, txManager)
	listResUseCase := appreservation.NewListReservationsUseCase(resRepo, bookRepo, queueService)
	expireHoldsUseCase := appreservation.NewExpireHoldsUseCase(resRepo, bookRepo, notifier, txManager, policy, clk)

	accrualSweepUseCase := appfine.NewAccrualSweepUseCase(loanRepo, fineRepo, txManager, policy, clk)
	payFineUseCase := appfine.NewPayFineUseCase(fineRepo, loanRepo, txManager)
	listFinesUseCase := appfine.NewListFinesUseCase(fineRepo)

	createBookUseCase := appcatalog.NewCreateBookUseCase(bookRepo)
	updateBookUseCase := appcatalog.NewUpdateBookUseCase(bookRepo)
	deleteBookUseCase := appcatalog.NewDeleteBookUseCase(bookRepo, resRepo, txManager)
	queryBooksUseCase := appcatalog.NewQueryBooksUseCase(bookRepo)
	addItemUseCase := appcatalog.NewAddItemUseCase(bookRepo, clk)
	deleteItemUseCase := appcatalog.NewDeleteItemUseCase(bookRepo, txManager)
	importBookUseCase := appcatalog.NewImportBookUseCase(bookRepo, booksClient)

	registerUseCase := appmember.NewRegisterMemberUseCase(memberService, clk)
	manageMemberUseCase := appmember.NewManageMemberUseCase(memberRepo)
	deleteMemberUseCase := appmember.NewDeleteMemberUseCase(memberRepo, loanRepo, fineRepo, txManager)
	librariansUseCase := appmember.NewManageLibrariansUseCase(memberService, memberRepo)

	loginUseCase := appauth.NewLoginUseCase(memberService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
	refreshUseCase := appauth.NewRefreshUseCase(jwtManager, sessionStore)
	logoutUseCase := appauth.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)

	notificationUseCase := appnotification.NewNotificationUseCase(notificationRepo)

	// 接口层
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(loginUseCase, refreshUseCase, logoutUseCase),
		Member:       handler.NewMemberHandler(registerUseCase, manageMemberUseCase, deleteMemberUseCase, librariansUseCase),
		Catalog:      handler.NewCatalogHandler(createBookUseCase, updateBookUseCase, deleteBookUseCase, queryBooksUseCase, addItemUseCase, deleteItemUseCase, importBookUseCase),
		Circulation:  handler.NewCirculationHandler(issueUseCase, returnUseCase, renewUseCase, lostUseCase, listLoansUseCase),
		Reservation:  handler.NewReservationHandler(createResUseCase, cancelResUseCase, listResUseCase, expireHoldsUseCase),
		Fine:         handler.NewFineHandler(payFineUseCase, listFinesUseCase, accrualSweepUseCase),
		Notification: handler.NewNotificationHandler(notificationUseCase),
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	router.Register(r, handlers, authMiddleware)

	// 8. 后台维护任务（保留过期扫描 + 罚款计提扫描）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(expireHoldsUseCase, accrualSweepUseCase, cfg.Circulation.SweepInterval)
	go sched.Start(ctx)

	// 9. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", srv.Addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", srv.Addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", srv.Addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", srv.Addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	// 10. 优雅停机：先停维护任务，再关HTTP服务
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在停止服务...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("停止HTTP服务失败: %v", err)
	}
	fmt.Println("服务已停止")
}
