// Package server is the generic API server machinery shared by every
// binary: gin serving config, a side gRPC listener and CLI config
// loading.
package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const (
	// RecommendedHomeDir defines the default directory used to place
	// service configurations.
	RecommendedHomeDir = ".sibyl"

	// RecommendedEnvPrefix defines the environment variable prefix for
	// all binaries.
	RecommendedEnvPrefix = "SIBYL"
)

// Config is a structure used to configure a GenericAPIServer.
type Config struct {
	InsecureServing *InsecureServingInfo
	Mode            string
	Middlewares     []string
	EnableProfiling bool
}

// NewConfig returns a Config struct with the default values.
func NewConfig() *Config {
	return &Config{
		Mode:            gin.ReleaseMode,
		Middlewares:     []string{},
		EnableProfiling: false,
	}
}

// CompletedConfig is the completed configuration for GenericAPIServer.
type CompletedConfig struct {
	*Config
}

// Complete fills in any fields not set that are required to have valid
// data and can be derived from other fields.
func (c *Config) Complete() CompletedConfig {
	if c.InsecureServing == nil {
		c.InsecureServing = &InsecureServingInfo{Address: "127.0.0.1:8000"}
	}
	return CompletedConfig{c}
}

// New returns a new instance of GenericAPIServer from the completed
// config.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		Engine:              gin.New(),
		InsecureServingInfo: c.InsecureServing,
		ShutdownTimeout:     10 * time.Second,
		enableProfiling:     c.EnableProfiling,
	}

	initGenericAPIServer(s)

	return s, nil
}

// LoadConfig reads in config file and ENV variables if set. Used by the
// client CLIs which do not go through pkg/app.
func LoadConfig(cfg string, defaultName string) {
	if cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(homeDir(), RecommendedHomeDir))
		viper.SetConfigName(defaultName)
	}

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(RecommendedEnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("WARNING: viper failed to discover and load the configuration file: %s\n", err.Error())
		}
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
