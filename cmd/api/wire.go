//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 与main.go的手动组装等价,运行 `wire gen ./cmd/api` 生成wire_gen.go。
// Wire在编译期生成代码:零运行时开销、类型安全、编译期检测循环依赖。
//
// 核心概念:
// - Provider: 提供依赖的构造函数(如mysql.NewLoanRepository)
// - Injector: 声明最终要构造的目标类型(InitializeApp → *gin.Engine)
// - wire.Bind: 接口到实现的绑定(用例依赖接口,生产注入具体实现)

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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
	"github.com/xiebiao/library/pkg/clock"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	providePublisher,
	provideGoogleBooksConfig,
	googlebooks.NewClient,
	provideClock,
	notify.NewService,
	wire.Bind(new(notify.Notifier), new(*notify.Service)),
	wire.Bind(new(appcatalog.BookLookup), new(*googlebooks.Client)),
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewMemberRepository,
	mysql.NewBookRepository,
	mysql.NewLoanRepository,
	mysql.NewReservationRepository,
	mysql.NewFineRepository,
	mysql.NewNotificationRepository,
	mysql.NewTxManager,
	wire.Bind(new(appcirculation.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appreservation.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appfine.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appcatalog.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appmember.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	member.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	provideCirculationConfig,

	appreservation.NewQueueService,

	appcirculation.NewIssueLoanUseCase,
	appcirculation.NewReturnLoanUseCase,
	appcirculation.NewRenewLoanUseCase,
	appcirculation.NewMarkLostUseCase,
	appcirculation.NewListLoansUseCase,

	appreservation.NewCreateReservationUseCase,
	appreservation.NewCancelReservationUseCase,
	appreservation.NewListReservationsUseCase,
	appreservation.NewExpireHoldsUseCase,

	appfine.NewAccrualSweepUseCase,
	appfine.NewPayFineUseCase,
	appfine.NewListFinesUseCase,

	appcatalog.NewCreateBookUseCase,
	appcatalog.NewUpdateBookUseCase,
	appcatalog.NewDeleteBookUseCase,
	appcatalog.NewQueryBooksUseCase,
	appcatalog.NewAddItemUseCase,
	appcatalog.NewDeleteItemUseCase,
	appcatalog.NewImportBookUseCase,

	appmember.NewRegisterMemberUseCase,
	appmember.NewManageMemberUseCase,
	appmember.NewDeleteMemberUseCase,
	appmember.NewManageLibrariansUseCase,

	provideLoginUseCase,
	appauth.NewRefreshUseCase,
	provideLogoutUseCase,

	appnotification.NewNotificationUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewMemberHandler,
	handler.NewCatalogHandler,
	handler.NewCirculationHandler,
	handler.NewReservationHandler,
	handler.NewFineHandler,
	handler.NewNotificationHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// providePublisher 按配置创建事件发布器
// mq.enabled=false时返回nil,通知服务只落库不发事件
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideClock 生产环境使用系统时钟
func provideClock() clock.Clock {
	return clock.System{}
}

// provideCirculationConfig 从全局配置提取流通策略
// Wire无法自动从Config提取字段,需要手动编写Provider
func provideCirculationConfig(cfg *config.Config) config.CirculationConfig {
	return cfg.Circulation
}

// provideGoogleBooksConfig 从全局配置提取Google Books配置
func provideGoogleBooksConfig(cfg *config.Config) config.GoogleBooksConfig {
	return cfg.GoogleBooks
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideLoginUseCase 登录用例
// Session有效期取Refresh Token有效期;两个time.Duration参数
// Wire无法区分,所以在Provider里显式传参
func provideLoginUseCase(
	memberService member.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	cfg *config.Config,
) *appauth.LoginUseCase {
	return appauth.NewLoginUseCase(memberService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
}

// provideLogoutUseCase 登出用例
// 黑名单TTL取Access Token有效期
func provideLogoutUseCase(sessionStore *redis.SessionStore, cfg *config.Config) *appauth.LogoutUseCase {
	return appauth.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册统一走router.Register,与main.go共用同一份路由表
func provideGinEngine(
	cfg *config.Config,
	handlers *router.Handlers,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	router.Register(r, handlers, authMiddleware)
	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖关系顺序调用所有Provider,生成完整的组装代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
