package models

import (
	"github.com/nerlens/nerlens/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	Recognizer EntityRecognizer
	Config     *config.Config
}
