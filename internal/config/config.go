package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		ApiKey   string   `yaml:"api_key" env:"TOKEN" env-default:"" validate:"required"`
		BotName  string   `yaml:"bot_name" env:"BOT_NAME" env-default:"BoatSharingBot"`
		AdminIds []string `yaml:"admin_ids" env:"ADMIN_IDS" env-separator:"," env-default:""`
	} `yaml:"telegram"`
	Sheets struct {
		SpreadsheetId   string `yaml:"spreadsheet_id" env:"GOOGLE_SPREADSHEET_ID" env-default:""`
		SheetName       string `yaml:"sheet_name" env:"GOOGLE_SHEET_NAME" env-default:"Лист1"`
		CredentialsJson string `yaml:"credentials_json" env:"GOOGLE_CREDENTIALS_JSON" env-default:""`
	} `yaml:"sheets"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"boatsharing"`
	} `yaml:"mongo"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"BIND_IP" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env:"PORT" env-default:"9100"`
		ApiKey string `yaml:"key" env:"API_KEY" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

// MustLoad reads the config file merged with environment variables and
// exits the process when the Telegram token is missing. Everything else
// degrades at runtime instead of failing startup.
func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			// No config file is fine as long as the environment
			// carries the settings.
			if err = cleanenv.ReadEnv(instance); err != nil {
				desc, _ := cleanenv.GetDescription(instance, nil)
				err = fmt.Errorf("%s; %s", err, desc)
				instance = nil
				log.Fatal(err)
			}
		}
		if err = validator.New().Struct(instance); err != nil {
			instance = nil
			log.Fatal(fmt.Errorf("config validation: %w", err))
		}
	})
	return instance
}
