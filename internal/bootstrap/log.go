package bootstrap

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"

	"github.com/taskproof/taskproof/internal/conf"
	"github.com/taskproof/taskproof/pkg/utils"
)

func InitLog(debug bool) {
	if debug {
		utils.Log.SetLevel(logrus.DebugLevel)
		utils.Log.SetReportCaller(true)
	}
	logCfg := conf.Conf.Log
	if !logCfg.Enable {
		return
	}
	writer := &lumberjack.Logger{
		Filename:   logCfg.Name,
		MaxSize:    logCfg.MaxSize,
		MaxBackups: logCfg.MaxBackups,
		MaxAge:     logCfg.MaxAge,
		Compress:   logCfg.Compress,
	}
	utils.Log.SetOutput(io.MultiWriter(os.Stdout, writer))
}
