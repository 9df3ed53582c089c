package config

import "os"

type AppConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
	AuthCfg     AuthConfig
	OAuthCfg    OAuthConfig
	SMTPCfg     SMTPConfig
	PaymentCfg  PaymentConfig
	MLCfg       MLConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

type AuthConfig struct {
	JWTSecret string
}

type OAuthConfig struct {
	GoogleClientID      string
	TwitterClientID     string
	TwitterClientSecret string
	TwitterRedirectURI  string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type PaymentConfig struct {
	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
}

type MLConfig struct {
	BaseURL string
}

func New() *AppConfig {
	return &AppConfig{
		Port: os.Getenv("PORT"),
		PostgresCfg: PostgresConfig{
			DBname:   os.Getenv("DB_NAME"),
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PWD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
		},
		RedisCfg: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PWD"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: os.Getenv("RABBITMQ_USER"),
			Password: os.Getenv("RABBITMQ_PWD"),
			Host:     os.Getenv("RABBITMQ_HOST"),
			Port:     os.Getenv("RABBITMQ_PORT"),
		},
		AuthCfg: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		OAuthCfg: OAuthConfig{
			GoogleClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
			TwitterClientID:     os.Getenv("TWITTER_CLIENT_ID"),
			TwitterClientSecret: os.Getenv("TWITTER_CLIENT_SECRET"),
			TwitterRedirectURI:  os.Getenv("TWITTER_REDIRECT_URI"),
		},
		SMTPCfg: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PWD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		PaymentCfg: PaymentConfig{
			RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			RazorpayBaseURL:   os.Getenv("RAZORPAY_BASE_URL"),
		},
		MLCfg: MLConfig{
			BaseURL: os.Getenv("ML_SERVICE_URL"),
		},
	}
}
