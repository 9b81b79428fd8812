package config

import "time"

type config struct {
	Server   server   `yaml:"server" mapstructure:"server"`
	Mysql    mysql    `yaml:"mysql" mapstructure:"mysql"`
	Redis    redis    `yaml:"redis" mapstructure:"redis"`
	Minio    minio    `yaml:"minio" mapstructure:"minio"`
	Jwt      jwt      `yaml:"jwt" mapstructure:"jwt"`
	RabbitMq rabbitmq `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Elastic  elastic  `yaml:"elastic" mapstructure:"elastic"`
	Jaeger   jaeger   `yaml:"jaeger" mapstructure:"jaeger"`
}

type server struct {
	Addr        string   `yaml:"addr"`
	Env         string   `yaml:"env"`
	LogLevel    string   `yaml:"log_level" mapstructure:"log_level"`
	MaxBodySize int      `yaml:"max_body_size" mapstructure:"max_body_size"`
	CorsOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	FlowQPS     float64  `yaml:"flow_qps" mapstructure:"flow_qps"`
	TempDir     string   `yaml:"temp_dir" mapstructure:"temp_dir"`
}

type mysql struct {
	Addr         string `yaml:"addr"`
	Database     string `yaml:"database"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Charset      string `yaml:"charset"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type minio struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey     string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL        bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"public_base_url" mapstructure:"public_base_url"`
}

type jwt struct {
	AccessSecret  string        `yaml:"access_secret" mapstructure:"access_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl" mapstructure:"access_ttl"`
	RefreshSecret string        `yaml:"refresh_secret" mapstructure:"refresh_secret"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl" mapstructure:"refresh_ttl"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Exchange string `yaml:"exchange"`
}

type elastic struct {
	URL   string `yaml:"url"`
	Index string `yaml:"index"`
}

type jaeger struct {
	AgentAddr   string `yaml:"agent_addr" mapstructure:"agent_addr"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}
