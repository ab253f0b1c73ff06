package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
)

func New() (Config, error) {
	privateKey, err := rsaPrivateKey(requireEnv("JWT_PRIVATE_KEY"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Hostname: requireEnv("HOSTNAME"),
		BasePath: os.Getenv("BASE_PATH"),
		LogMode:  os.Getenv("LOG_MODE"),
		Postgresql: Postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		Redis: Redis{
			Host: requireEnv("REDIS_HOST"),
			Port: requireEnvAsInt("REDIS_PORT"),
		},
		SMTP: SMTP{
			Host:     requireEnv("SMTP_HOST"),
			Port:     requireEnvAsInt("SMTP_PORT"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		PrivateKey:                    privateKey,
		AccessTokenExpirationSeconds:  requireEnvAsInt("ACCESS_TOKEN_EXPIRATION_IN_SECONDS"),
		RefreshTokenSecretKey:         requireEnv("REFRESH_TOKEN_SECRET_KEY"),
		RefreshTokenExpirationSeconds: requireEnvAsInt("REFRESH_TOKEN_EXPIRATION_IN_SECONDS"),
	}, nil
}

type Config struct {
	Hostname                      string
	BasePath                      string
	LogMode                       string
	Postgresql                    Postgresql
	Redis                         Redis
	SMTP                          SMTP
	PrivateKey                    *rsa.PrivateKey
	AccessTokenExpirationSeconds  int
	RefreshTokenSecretKey         string
	RefreshTokenExpirationSeconds int
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type Redis struct {
	Host string
	Port int
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

func rsaPrivateKey(keyInPem string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(keyInPem))
	if block == nil {
		return nil, errors.New("failed to decode JWT_PRIVATE_KEY as PEM")
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT_PRIVATE_KEY: %v", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("JWT_PRIVATE_KEY isn't an RSA key")
	}

	return rsaKey, nil
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse %s as integer: %s", key, err.Error())
	}
	return value
}
