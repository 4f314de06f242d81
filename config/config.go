package config

import (
	"flag"
	"os"

	"hotelsLookerBot/internal/hotelsapi"
	"hotelsLookerBot/pkg/database"

	"github.com/ilyakaznacheev/cleanenv"
)

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN" env-required:"true"`
}

type Config struct {
	Env       string           `yaml:"env" env:"ENV" env-default:"local"`
	Telegram  TelegramConfig   `yaml:"telegram"`
	Postgres  database.Config  `yaml:"postgres"`
	HotelsAPI hotelsapi.Config `yaml:"hotels_api"`
}

// MustLoad читает конфигурацию из yaml-файла, путь к которому задается
// флагом -config или переменной CONFIG_PATH. Без файла конфигурация
// собирается только из переменных окружения.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		var cfg Config
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("cannot read config from environment: " + err.Error())
		}
		return &cfg
	}
	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
