// Package main provides the entry point for the Dotwork puzzle editor.
package main

import (
	"fmt"
	"log"
	"os"

	"dotwork/internal/app"
	"dotwork/internal/render"
	"dotwork/internal/version"
	"dotwork/ui/mainwindow"
	"dotwork/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "io.dotwork.editor"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s IMAGE\n", os.Args[0])
		os.Exit(2)
	}
	imagePath := os.Args[1]

	appPrefs := prefs.Load()
	settings := app.LoadSettings(appPrefs)

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Failed to initialise renderer: %v", err)
	}

	appState := app.NewState(settings, renderer)
	if err := appState.LoadBackdrop(imagePath); err != nil {
		log.Fatalf("Failed to load %s: %v", imagePath, err)
	}

	a := fyneapp.NewWithID(appID)
	a.Settings().SetTheme(&app.DotworkTheme{})

	win := mainwindow.New(a, appState, appPrefs, renderer)
	win.ShowAndRun()
}
