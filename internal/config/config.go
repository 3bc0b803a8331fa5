package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port        int      `yaml:"port"`
	LogLevel    string   `yaml:"log_level"`
	LogJSON     bool     `yaml:"log_json"`
	CorsOrigins []string `yaml:"cors_origins"`

	BcryptCost       int `yaml:"bcrypt_cost"`
	FailedLoginLimit int `yaml:"failed_login_limit"` // attempts before lockout
	BlockHours       int `yaml:"block_hours"`        // lockout window, in hours

	DefaultCalendarName  string `yaml:"default_calendar_name"`
	DefaultCalendarColor string `yaml:"default_calendar_color"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

// BlockDuration is the account lockout window.
func (c *Config) BlockDuration() time.Duration {
	return time.Duration(c.Public.BlockHours) * time.Hour
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func (p *Public) validate() {
	if p.FailedLoginLimit <= 0 {
		panic("failed_login_limit must be positive")
	}
	if p.BlockHours <= 0 {
		panic("block_hours must be positive")
	}
	if p.DefaultCalendarName == "" {
		panic("default_calendar_name is required")
	}
	if p.Port <= 0 {
		panic(fmt.Sprintf("invalid port: %d", p.Port))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.validate()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
