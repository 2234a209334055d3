package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig loads filename into viper. Without a filename it looks for ./data/config.* and a missing file is
// not an error.
func ReadConfig(filename string) error {
	viper.AutomaticEnv()

	if filename != "" {
		viper.SetConfigFile(filename)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./data/")
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if filename == "" && errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
