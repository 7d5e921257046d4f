package main

import (
	stdLog "log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/app"
	"github.com/lectoria/library-service/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Print("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig()

	app.Run(cfg)
}
