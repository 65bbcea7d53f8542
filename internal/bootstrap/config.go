package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/google/uuid"

	"github.com/taskproof/taskproof/internal/conf"
	"github.com/taskproof/taskproof/pkg/utils"
)

// InitConfig loads the JSON config file, creating it with defaults on first
// run, then overlays TASKPROOF_* environment variables.
func InitConfig(dataDir string) {
	configPath := filepath.Join(dataDir, "config.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		utils.Log.Infof("config file not exists, creating default config file")
		conf.Conf = conf.DefaultConfig(dataDir)
		conf.Conf.JwtSecret = uuid.NewString()
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			utils.Log.Fatalf("failed to create data dir: %+v", err)
		}
		if err := utils.WriteJsonToFile(configPath, conf.Conf); err != nil {
			utils.Log.Fatalf("failed to create default config file: %+v", err)
		}
	} else {
		content, err := os.ReadFile(configPath)
		if err != nil {
			utils.Log.Fatalf("reading config file error: %+v", err)
		}
		conf.Conf = conf.DefaultConfig(dataDir)
		if err = utils.Json.Unmarshal(content, conf.Conf); err != nil {
			utils.Log.Fatalf("load config error: %+v", err)
		}
	}
	if err := env.ParseWithOptions(conf.Conf, env.Options{Prefix: "TASKPROOF_"}); err != nil {
		utils.Log.Fatalf("load config from env error: %+v", err)
	}
	if err := os.MkdirAll(conf.Conf.UploadDir, 0o755); err != nil {
		utils.Log.Fatalf("failed to create upload dir: %+v", err)
	}
}
