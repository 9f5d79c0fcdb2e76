// Package config provides configuration management for the chatstore application.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// ChatConfig holds the domain limits applied by the message API.
type ChatConfig struct {
	// MaxMessageLength is the maximum accepted message body length.
	MaxMessageLength int
	// UsernameMaxLength is the upper bound on username length; the lower bound is fixed at 3.
	UsernameMaxLength int
	// DefaultDateRange is the trailing retrieval window, in days.
	DefaultDateRange int
	// DefaultMaxDataPerPage is both the default and the cap for per_page.
	DefaultMaxDataPerPage int
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string // Port for the HTTP server
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB     *PoolConfig
	Chat   *ChatConfig
	Server *ServerConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvPositiveInt is like getOptionalEnvInt but additionally rejects
// values below 1, since all chat limits are counts that must be positive.
func getOptionalEnvPositiveInt(key string, defaultValue int, errors *[]string) int {
	value := getOptionalEnvInt(key, defaultValue, errors)
	if value < 1 {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: must be a positive integer, got %d", key, value))
		return defaultValue
	}
	return value
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
	poolSize := getOptionalEnvPositiveInt("DB_POOL_SIZE", 10, &errors)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Chat limits
	chatConfig := &ChatConfig{
		MaxMessageLength:      getOptionalEnvPositiveInt("MAX_MESSAGE_LENGTH", 200, &errors),
		UsernameMaxLength:     getOptionalEnvPositiveInt("USERNAME_MAX_LENGTH", 18, &errors),
		DefaultDateRange:      getOptionalEnvPositiveInt("DEFAULT_DATE_RANGE", 30, &errors),
		DefaultMaxDataPerPage: getOptionalEnvPositiveInt("DEFAULT_MAX_DATA_PER_PAGE", 10, &errors),
	}

	// Server configuration
	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:     dbConfig,
		Chat:   chatConfig,
		Server: serverConfig,
	}, nil
}
