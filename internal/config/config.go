package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Режимы работы клиентского ядра
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config содержит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Client   ClientConfig
}

// ServerConfig содержит настройки сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig содержит настройки базы данных
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret     string
	ExpireTime time.Duration
}

// ClientConfig содержит настройки клиентского ядра:
// какой бэкенд использовать (local или remote) и где хранить локальные данные
type ClientConfig struct {
	Backend    string
	APIBaseURL string
	StorageDir string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() *Config {
	// Подхватываем .env, если он есть
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as is")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Second * 15,
			WriteTimeout: time.Second * 15,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "eventhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "secret-key"),
			ExpireTime: time.Hour * 24,
		},
		Client: ClientConfig{
			Backend:    getEnv("CLIENT_BACKEND", BackendLocal),
			APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			StorageDir: getEnv("CLIENT_STORAGE_DIR", ".eventhub"),
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
