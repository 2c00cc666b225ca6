package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"edumind/config"
	"edumind/model"
	"edumind/storage"
	"edumind/ui"
)

const (
	Version = "v0.1.0"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	sessionStorage, err := storage.NewSessionStorage(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize session storage: %v\n", err)
		os.Exit(1)
	}

	quizStorage, err := storage.NewQuizStorage(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize quiz storage: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := quizStorage.Close(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to close quiz storage: %v", err)
		}
	}()

	// Restore the last open session, if any
	var lastSession *storage.Session
	if lastSessionID, err := sessionStorage.LoadCurrentSessionID(); err == nil {
		lastSession, _ = sessionStorage.Load(lastSessionID)
	}

	dataModel := model.NewModel(cfg, sessionStorage, quizStorage, lastSession, Version, License)

	p := tea.NewProgram(
		ui.NewAppView(dataModel),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running edumind: %v\n", err)
		os.Exit(1)
	}
}
