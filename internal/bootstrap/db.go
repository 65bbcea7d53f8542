package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/taskproof/taskproof/internal/bootstrap/data"
	"github.com/taskproof/taskproof/internal/conf"
	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/pkg/utils"
)

func InitDB() {
	logLevel := glogger.Silent
	if utils.Log.IsLevelEnabled(logrus.DebugLevel) {
		logLevel = glogger.Info
	}
	gormConfig := &gorm.Config{
		Logger: glogger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: conf.Conf.Database.TablePrefix,
		},
	}
	database := conf.Conf.Database
	var d *gorm.DB
	var err error
	switch database.Type {
	case "sqlite3":
		d, err = gorm.Open(sqlite.Open(database.DBFile), gormConfig)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			database.User, database.Password, database.Host, database.Port, database.Name)
		d, err = gorm.Open(mysql.Open(dsn), gormConfig)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			database.Host, database.User, database.Password, database.Name, database.Port, database.SSLMode)
		d, err = gorm.Open(postgres.Open(dsn), gormConfig)
	default:
		utils.Log.Fatalf("unsupported database type: %s", database.Type)
	}
	if err != nil {
		utils.Log.Fatalf("failed to connect database: %+v", err)
	}
	db.Init(d)
	data.InitData()
}
