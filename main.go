package main

import (
	"github.com/creoleap/api/app"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	log.Trace("Starting server...")
	if err := app.SetupAndRunServer(); err != nil {
		panic(err)
	}
}
