package main

import (
	"github.com/joho/godotenv"

	"github.com/nhle/studytrack/cmd/studytrack/root"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()
	root.Execute()
}
