package main

import (
	"log"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/anas-gulzar-dev/grace-capture/internal/app"
	"github.com/anas-gulzar-dev/grace-capture/internal/config"
	"github.com/anas-gulzar-dev/grace-capture/internal/gui"
	"github.com/anas-gulzar-dev/grace-capture/internal/logger"
)

func main() {
	logger.Init()
	defer logger.Close()

	// Create Fyne application
	myApp := fyneapp.NewWithID("com.anas-gulzar-dev.grace-capture")
	myApp.Settings().SetTheme(&gui.CaptureTheme{})

	// Create main window
	mainWindow := myApp.NewWindow("Grace Capture")
	mainWindow.Resize(gui.DefaultWindowSize)

	// Load configuration
	settings, err := config.LoadSettings("Settings.ini")
	if err != nil {
		log.Printf("Warning: Failed to load config: %v", err)
		settings = config.NewDefaultSettings()
	}

	engine, err := app.New(settings, config.LoadCredentials())
	if err != nil {
		log.Fatalf("Failed to start capture engine: %v", err)
	}

	// Create GUI controller
	controller := gui.NewController(engine, myApp, mainWindow)

	// Set content and show
	mainWindow.SetContent(controller.BuildUI())
	mainWindow.SetMaster()
	mainWindow.ShowAndRun()

	// Cleanup on exit
	controller.Shutdown()
}
