package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Shop     ShopConfig     `yaml:"shop"`
	Loyalty  LoyaltyConfig  `yaml:"loyalty"`
	Engine   EngineConfig   `yaml:"engine"`
	SMTP     SMTPConfig     `yaml:"-"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type ShopConfig struct {
	Name         string `yaml:"name"`
	OwnerEmail   string `yaml:"owner_email"`
	OwnerEmailCC string `yaml:"owner_email_cc"`
	PopularTag   string `yaml:"popular_tag"`
}

type LoyaltyConfig struct {
	StampGoal           int     `yaml:"stamp_goal"`
	StampRewardAmount   int     `yaml:"stamp_reward_amount"`
	WelcomeCouponAmount int     `yaml:"welcome_coupon_amount"`
	DiscountRate        float64 `yaml:"discount_rate"`
	MinDiscountPurchase int     `yaml:"min_discount_purchase"`
}

type EngineConfig struct {
	DrinkPoolCap  int `yaml:"drink_pool_cap"`
	BakeryPoolCap int `yaml:"bakery_pool_cap"`
	GenerationCap int `yaml:"generation_cap"`
	TagMatchBonus int `yaml:"tag_match_bonus"`
	TopK          int `yaml:"top_k"`
}

// SMTPConfig is loaded from the environment (.env overlay), never from the
// YAML file, so credentials stay out of checked-in config.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// best effort: a missing .env just means the environment is already set
	_ = godotenv.Load()

	cfg.SMTP = SMTPConfig{
		Host:     envOr("SMTP_HOST", "smtp.gmail.com"),
		Port:     envIntOr("SMTP_PORT", 465),
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Shop: ShopConfig{
			Name:       "Lucy Bakery",
			PopularTag: "인기",
		},
		Loyalty: LoyaltyConfig{
			StampGoal:           10,
			StampRewardAmount:   3000,
			WelcomeCouponAmount: 2000,
			DiscountRate:        0.10,
			MinDiscountPurchase: 20000,
		},
		Engine: EngineConfig{
			DrinkPoolCap:  10,
			BakeryPoolCap: 12,
			GenerationCap: 300,
			TagMatchBonus: 2,
			TopK:          3,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return fallback
	}
	return n
}
