package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、环境变量覆盖
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	MQ          MQConfig          `mapstructure:"mq"`
	Circulation CirculationConfig `mapstructure:"circulation"`
	GoogleBooks GoogleBooksConfig `mapstructure:"google_books"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN 生成MySQL连接字符串
// 格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// 注意：loc参数需要URL编码（Asia/Shanghai → Asia%2FShanghai）
func (d DatabaseConfig) DSN() string {
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpire  time.Duration `mapstructure:"access_token_expire"`
	RefreshTokenExpire time.Duration `mapstructure:"refresh_token_expire"`
}

// MQConfig 消息队列配置
// Enabled=false时通知只落库,不发布事件(开发环境无需RabbitMQ)
type MQConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// CirculationConfig 流通策略配置
// 设计说明:借期、续借上限、罚款费率、欠费阈值、保留时长全部显式配置,
// 不在代码里写死字面量,保证可以用替代策略值做测试
type CirculationConfig struct {
	LoanPeriodDays    int           `mapstructure:"loan_period_days"`     // 默认借期(天)
	MaxRenewals       int           `mapstructure:"max_renewals"`         // 最大续借次数
	DailyFineAmount   float64       `mapstructure:"daily_fine_amount"`    // 每日逾期罚款(元)
	MaxLoansPerMember int           `mapstructure:"max_loans_per_member"` // 单人最大在借数量
	MaxFineThreshold  float64       `mapstructure:"max_fine_threshold"`   // 欠费阈值(元),达到后禁止借阅/预约
	HoldExpiryDays    int           `mapstructure:"hold_expiry_days"`     // 留书保留天数
	DamageFineAmount  float64       `mapstructure:"damage_fine_amount"`   // 损坏罚款(元),一次性
	SweepInterval     time.Duration `mapstructure:"sweep_interval"`       // 后台维护任务执行间隔
}

// GoogleBooksConfig Google Books导入配置
type GoogleBooksConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml
// 2. 环境变量覆盖（如LIBRARY_DATABASE_PASSWORD）
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	v.SetEnvPrefix("LIBRARY")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	if cfg.JWT.Secret == "your-secret-key-change-in-production" && cfg.Server.Mode == "release" {
		return fmt.Errorf("生产环境必须修改JWT密钥")
	}

	c := cfg.Circulation
	if c.LoanPeriodDays <= 0 || c.MaxLoansPerMember <= 0 || c.HoldExpiryDays <= 0 {
		return fmt.Errorf("流通策略配置不完整: %+v", c)
	}
	if c.DailyFineAmount < 0 || c.MaxFineThreshold <= 0 {
		return fmt.Errorf("罚款策略配置不合法: %+v", c)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("无效的维护任务间隔: %v", c.SweepInterval)
	}

	return nil
}
