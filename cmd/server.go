package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/taskproof/taskproof/internal/conf"
	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/storage"
	"github.com/taskproof/taskproof/pkg/utils"
	"github.com/taskproof/taskproof/server"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the taskproof server",
	Run: func(cmd *cobra.Command, args []string) {
		initAll()
		defer db.Close()
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}
		store, err := storage.New(conf.Conf.UploadDir)
		if err != nil {
			utils.Log.Fatalf("failed init storage: %+v", err)
		}
		e := gin.New()
		e.Use(gin.LoggerWithWriter(utils.Log.Out), gin.RecoveryWithWriter(utils.Log.Out))
		server.Init(e, store)
		addr := fmt.Sprintf("%s:%d", conf.Conf.Scheme.Address, conf.Conf.Scheme.Port)
		utils.Log.Infof("start HTTP server @ %s", addr)
		if err := e.Run(addr); err != nil {
			utils.Log.Fatalf("failed to start http server: %+v", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(ServerCmd)
}
