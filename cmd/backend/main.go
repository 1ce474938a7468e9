package main

import (
	"gestic/internal/api"

	_ "gestic/docs"

	"github.com/sirupsen/logrus"
)

// @title GestIC catalog API
// @version 1.0
// @description IT services catalog of the OTIC: roles, users, categories, services, service history and requests.
// @host localhost:8080
// @BasePath /
func main() {
	logrus.Info("App start")
	if err := api.StartServer(); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("App terminated")
}
