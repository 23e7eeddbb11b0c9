package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// dotEnvPath holds TODO_* variables kept with the project.
var dotEnvPath = filepath.Join(".todo", ".env")

// loadDotEnv loads dotEnvPath without overriding variables already set.
var loadDotEnv = func() error {
	return godotenv.Load(dotEnvPath)
}

func main() {
	// A missing .env file is not an error.
	_ = loadDotEnv()

	Execute()
}
