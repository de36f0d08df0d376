package main

import "weijob_backend/internal/app"

func main() {
	app.Run()
}
