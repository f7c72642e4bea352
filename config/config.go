package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	AssetsDir string `yaml:"assets_dir" json:"assets_dir"`
}

// DBConfig selects and parameterizes the storage backend. Type is one of
// "postgres", "sqlite" or "bolt"; the host/user fields only apply to postgres.
type DBConfig struct {
	Type    string `yaml:"type" json:"type"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Name    string `yaml:"name" json:"name"`
	User    string `yaml:"user" json:"user"`
	Passwd  string `yaml:"passwd" json:"passwd"`
	MaxConn int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int   `yaml:"idle_conn" json:"idle_conn"`
	Debug   bool   `yaml:"debug" json:"debug"`
}

// TelegramConfig carries the bot credentials and the administrator chat.
// Both values may be blank; the notification adapter reports rather than
// crashes when unconfigured.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" json:"bot_token"`
	ChatID   string `yaml:"chat_id" json:"chat_id"`
	APIHost  string `yaml:"api_host" json:"api_host"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`
	Smtp     SmtpConfig     `yaml:"smtp" json:"smtp"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "craftstore",
		Location: "Asia/Kolkata",
		Workdir:  "/var/craftstore",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		Secret:    "9b6de5cc-craftstore-0000-0000-secret",
		AssetsDir: "assets",
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "craftstore",
		User:     "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Telegram: TelegramConfig{
		APIHost: "https://api.telegram.org",
	},
	Logger: LoggerConfig{
		Mode:     "development",
		Filename: "/var/craftstore/craftstore.log",
	},
}

func setEnvValue(name string, val *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*val = cast.ToInt(v)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*val = cast.ToBool(v)
	}
}

// LoadConfig reads the YAML configuration file and applies CRAFTSTORE_*
// environment overrides. A missing file yields the defaults, so a container
// deployment can run on environment variables alone. The returned config is
// a copy; DefaultAppConfig itself is never written to.
func LoadConfig(cfile string) *AppConfig {
	cfg := &AppConfig{}
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				_ = yaml.Unmarshal(data, cfg)
			}
		}
	}

	setEnvValue("CRAFTSTORE_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("CRAFTSTORE_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("CRAFTSTORE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("CRAFTSTORE_WEB_PORT", &cfg.Web.Port)
	setEnvValue("CRAFTSTORE_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("CRAFTSTORE_DB_TYPE", &cfg.Database.Type)
	setEnvValue("CRAFTSTORE_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("CRAFTSTORE_DB_PORT", &cfg.Database.Port)
	setEnvValue("CRAFTSTORE_DB_NAME", &cfg.Database.Name)
	setEnvValue("CRAFTSTORE_DB_USER", &cfg.Database.User)
	setEnvValue("CRAFTSTORE_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("CRAFTSTORE_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken)
	setEnvValue("TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID)
	setEnvValue("TELEGRAM_API_HOST", &cfg.Telegram.APIHost)

	setEnvValue("CRAFTSTORE_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("CRAFTSTORE_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("CRAFTSTORE_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("CRAFTSTORE_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvValue("CRAFTSTORE_SMTP_FROM", &cfg.Smtp.From)
	setEnvValue("CRAFTSTORE_SMTP_TO", &cfg.Smtp.To)

	setEnvValue("CRAFTSTORE_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("CRAFTSTORE_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("CRAFTSTORE_LOGGER_FILENAME", &cfg.Logger.Filename)

	_ = os.MkdirAll(cfg.System.Workdir, 0o755)
	_ = os.MkdirAll(filepath.Join(cfg.System.Workdir, "data"), 0o755)
	return cfg
}
