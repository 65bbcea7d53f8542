package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskproof/taskproof/internal/bootstrap"
)

var (
	dataDir string
	debug   bool
)

var RootCmd = &cobra.Command{
	Use:   "taskproof",
	Short: "Task assignment with evidence uploads",
	Long:  "taskproof assigns upload-evidenced tasks to users with exclusive, time-boxed claims",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "data folder")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "start with debug mode")
}

func initAll() {
	bootstrap.InitConfig(dataDir)
	bootstrap.InitLog(debug)
	bootstrap.InitDB()
}
