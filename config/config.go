package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Availability AvailabilityConfig
	Reminder     ReminderConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret          string
	AccessExpiry    time.Duration
	RefreshExpiry   time.Duration
	ChallengeExpiry time.Duration
}

type AvailabilityConfig struct {
	// WeeksAhead is how far weekly recurring hours are materialized
	// into concrete dated slots.
	WeeksAhead   int
	SlotDuration time.Duration
}

type ReminderConfig struct {
	// CronSpec drives the appointment reminder job.
	CronSpec string
	Window   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	challengeExpiry, err := time.ParseDuration(viper.GetString("JWT_CHALLENGE_EXPIRY"))
	if err != nil {
		challengeExpiry = 5 * time.Minute
	}

	weeksAhead := viper.GetInt("AVAILABILITY_WEEKS_AHEAD")
	if weeksAhead <= 0 {
		weeksAhead = 4
	}

	slotDuration, err := time.ParseDuration(viper.GetString("AVAILABILITY_SLOT_DURATION"))
	if err != nil || slotDuration <= 0 {
		slotDuration = 30 * time.Minute
	}

	cronSpec := viper.GetString("REMINDER_CRON")
	if cronSpec == "" {
		cronSpec = "0 * * * *"
	}

	reminderWindow, err := time.ParseDuration(viper.GetString("REMINDER_WINDOW"))
	if err != nil || reminderWindow <= 0 {
		reminderWindow = 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:          viper.GetString("JWT_SECRET"),
			AccessExpiry:    accessExpiry,
			RefreshExpiry:   refreshExpiry,
			ChallengeExpiry: challengeExpiry,
		},
		Availability: AvailabilityConfig{
			WeeksAhead:   weeksAhead,
			SlotDuration: slotDuration,
		},
		Reminder: ReminderConfig{
			CronSpec: cronSpec,
			Window:   reminderWindow,
		},
	}

	return config, nil
}
