package conf

import "path/filepath"

type Database struct {
	Type        string `json:"type" env:"TYPE"`
	Host        string `json:"host" env:"HOST"`
	Port        int    `json:"port" env:"PORT"`
	User        string `json:"user" env:"USER"`
	Password    string `json:"password" env:"PASS"`
	Name        string `json:"name" env:"NAME"`
	DBFile      string `json:"db_file" env:"FILE"`
	TablePrefix string `json:"table_prefix" env:"TABLE_PREFIX"`
	SSLMode     string `json:"ssl_mode" env:"SSL_MODE"`
}

type LogConfig struct {
	Enable     bool   `json:"enable" env:"ENABLE"`
	Name       string `json:"name" env:"NAME"`
	MaxSize    int    `json:"max_size" env:"MAX_SIZE"`
	MaxBackups int    `json:"max_backups" env:"MAX_BACKUPS"`
	MaxAge     int    `json:"max_age" env:"MAX_AGE"`
	Compress   bool   `json:"compress" env:"COMPRESS"`
}

type Scheme struct {
	Address string `json:"address" env:"ADDR"`
	Port    int    `json:"http_port" env:"HTTP_PORT"`
}

type Config struct {
	JwtSecret     string    `json:"jwt_secret" env:"JWT_SECRET"`
	TokenExpireIn int       `json:"token_expire_in" env:"TOKEN_EXPIRE_IN"`
	UploadDir     string    `json:"upload_dir" env:"UPLOAD_DIR"`
	Scheme        Scheme    `json:"scheme" envPrefix:"SCHEME_"`
	Database      Database  `json:"database" envPrefix:"DB_"`
	Log           LogConfig `json:"log" envPrefix:"LOG_"`
	Cors          []string  `json:"cors" env:"CORS" envSeparator:","`
}

func DefaultConfig(dataDir string) *Config {
	return &Config{
		TokenExpireIn: 48,
		UploadDir:     filepath.Join(dataDir, "uploads"),
		Scheme: Scheme{
			Address: "0.0.0.0",
			Port:    5244,
		},
		Database: Database{
			Type:        "sqlite3",
			DBFile:      filepath.Join(dataDir, "data.db"),
			TablePrefix: "tp_",
		},
		Log: LogConfig{
			Enable:     true,
			Name:       filepath.Join(dataDir, "log", "log.log"),
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     28,
		},
		Cors: []string{"*"},
	}
}
