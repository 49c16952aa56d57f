package main

import (
	"io"
	"os"

	"github.com/Uddiptaatwork/labsite/internal/config"
)

// Environment variables read at start-up.
const (
	EnvConfig  = "LABSITE_CONFIG" // config name or path, overridden by --config
	EnvNoColor = "NO_COLOR"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Config     *config.Config // used when no config file is named; nil = compiled-in defaults
	ConfigName string         // config file from the environment
	NoColor    bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Config:     config.DefaultConfig(),
		ConfigName: os.Getenv(EnvConfig),
		NoColor:    os.Getenv(EnvNoColor) != "",
	}
}
