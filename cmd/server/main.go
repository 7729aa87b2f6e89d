package main

import "taskboard/internal/app"

// @title           TaskBoard API
// @version         1.0
// @description     Task management with sharing, invitations and notifications.

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	app.Run()
}
