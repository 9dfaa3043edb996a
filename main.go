package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/arenalab/arena/cmd/root"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05.000",
	})))

	if err := root.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
