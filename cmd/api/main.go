package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/metinatakli/showtime-booking/internal/app"
)

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env file", "error", err)
		os.Exit(1)
	}

	err = app.Run(os.Args[1:])
	if err != nil {
		slog.Error("application stopped with error", "error", err)
		os.Exit(1)
	}
}
