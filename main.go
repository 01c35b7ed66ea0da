package main

import (
	"inspection_service/startup"
	"inspection_service/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
