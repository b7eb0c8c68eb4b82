package cmd

import (
	"github.com/spf13/pflag"
)

var (
	globalSibylConfig string
)

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&globalSibylConfig,
		"config",
		"",
		"Path to the sibylctl configuration file")
}

func GetConfigPath() string {
	return globalSibylConfig
}
