package main

import (
	"log"
	"os"
	"strings"

	"filebundler/cmd"
	"filebundler/pkg/config"
	"filebundler/pkg/logging"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	exitCode := 0
	if err := cmd.Execute(os.Args[1:], cfg, logger); err != nil {
		logger.Debug("filebundler execution failed", zap.Error(err))
		exitCode = 1
	}

	// Check if stderr is a terminal or a regular file before attempting to sync.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
	os.Exit(exitCode)
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
