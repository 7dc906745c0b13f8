package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"iotdash/internal/client"
)

// Settings configure how the CLI reaches the inventory API.
// Sources in priority order: flags, ASSETTREE_* env, config file, defaults.
type Settings struct {
	APIURL  string        `mapstructure:"api_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadSettings resolves Settings. configFile may be empty, in which case an
// optional assettree.yaml is looked up in the working directory and
// $HOME/.config/iotdash.
func LoadSettings(configFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("api_url", client.DefaultBaseURL)
	v.SetDefault("token", "")
	v.SetDefault("timeout", client.DefaultTimeout)

	v.SetEnvPrefix("ASSETTREE")
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{"api_url": "api-url", "token": "token"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("assettree")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/iotdash")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if s.APIURL == "" {
		return nil, errors.New("api_url must not be empty")
	}
	return &s, nil
}
