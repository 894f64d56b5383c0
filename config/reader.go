package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type DBConfig struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ConfigSchema struct {
	Databases struct {
		Master   DBConfig   `yaml:"master"`
		Replicas []DBConfig `yaml:"replicas"`
	} `yaml:"databases"`
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Redis    RedisConfig `yaml:"redis"`
	RabbitMQ struct {
		URL string `yaml:"url"`
	} `yaml:"rabbitmq"`
	Weather struct {
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"weather"`
	Auth struct {
		JWTSecret    string `yaml:"jwt_secret"`
		TokenTTLMins int    `yaml:"token_ttl_minutes"`
	} `yaml:"auth"`
	Logs struct {
		Level string `yaml:"level"`
	} `yaml:"logs"`
}

var AppConfig *ConfigSchema

func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var conf ConfigSchema
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return err
	}
	applyEnvOverrides(&conf)
	AppConfig = &conf
	return nil
}

// applyEnvOverrides перекрывает секреты и адреса значениями из окружения
// (.env подгружается в main через godotenv)
func applyEnvOverrides(conf *ConfigSchema) {
	if v := os.Getenv("DB_HOST"); v != "" {
		conf.Databases.Master.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			conf.Databases.Master.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		conf.Databases.Master.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		conf.Databases.Master.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		conf.Databases.Master.Name = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		conf.Redis.Host = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		conf.RabbitMQ.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		conf.Auth.JWTSecret = v
	}
	if v := os.Getenv("WEATHERBIT_API_KEY"); v != "" {
		conf.Weather.APIKey = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			conf.Weather.TimeoutSeconds = secs
		}
	}
}
