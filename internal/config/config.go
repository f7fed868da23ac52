package config

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Server   ServerConfig
	Display  DisplayConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type ServerConfig struct {
	Port int
}

type DisplayConfig struct {
	ServerURL string
	Name      string
}

// Load reads the config.yml format used across the deployment: two-level
// YAML with flat key: value pairs under each section. Purpose-built reader,
// no external parser.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := &Config{}
	cfg.Database.Port = 5432
	cfg.Database.SSLMode = "disable"
	cfg.RabbitMQ.Port = 5672
	cfg.RabbitMQ.VHost = "/"
	cfg.Server.Port = 3000
	cfg.Display.ServerURL = "http://localhost:3000"

	var section string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		kv := strings.SplitN(line, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.Trim(strings.TrimSpace(kv[1]), `"'`)

		switch section {
		case "database":
			cfg.Database.set(key, val)
		case "rabbitmq":
			cfg.RabbitMQ.set(key, val)
		case "server":
			if key == "port" {
				cfg.Server.Port = atoi(val, cfg.Server.Port)
			}
		case "display":
			switch key {
			case "server_url":
				cfg.Display.ServerURL = val
			case "name":
				cfg.Display.Name = val
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Database == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.RabbitMQ.Host == "" || cfg.RabbitMQ.User == "" {
		return nil, fmt.Errorf("rabbitmq config incomplete")
	}
	return cfg, nil
}

func (d *DatabaseConfig) set(key, val string) {
	switch key {
	case "host":
		d.Host = val
	case "port":
		d.Port = atoi(val, d.Port)
	case "user":
		d.User = val
	case "password":
		d.Password = val
	case "database":
		d.Database = val
	case "sslmode":
		if val != "" {
			d.SSLMode = val
		}
	}
}

func (r *RabbitMQConfig) set(key, val string) {
	switch key {
	case "host":
		r.Host = val
	case "port":
		r.Port = atoi(val, r.Port)
	case "user":
		r.User = val
	case "password":
		r.Password = val
	case "vhost":
		if val != "" {
			r.VHost = val
		}
	}
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Find returns the first config file present from the usual locations.
func Find() (string, error) {
	for _, p := range []string{"config.yml", "config.yaml", "deploy/config.example.yml"} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
