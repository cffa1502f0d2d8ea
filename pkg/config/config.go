package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the dataset build.
type Config struct {
	InputCSV  string `mapstructure:"INPUT_CSV"`
	OutputCSV string `mapstructure:"OUTPUT_CSV"`

	// SelfDomain is the site's own domain, used by the iframe analyzer to
	// decide whether an iframe points somewhere external.
	SelfDomain string `mapstructure:"SELF_DOMAIN"`

	DNSServer string `mapstructure:"DNS_SERVER"`

	// Timeouts in seconds. FetchTimeout bounds the single page fetch;
	// ProbeTimeout bounds each DNS/TLS/WHOIS call individually.
	FetchTimeout int `mapstructure:"FETCH_TIMEOUT"`
	ProbeTimeout int `mapstructure:"PROBE_TIMEOUT"`

	Workers int `mapstructure:"WORKERS"`

	PhishingSample int   `mapstructure:"PHISHING_SAMPLE"`
	BenignSample   int   `mapstructure:"BENIGN_SAMPLE"`
	ClassSize      int   `mapstructure:"CLASS_SIZE"`
	ShuffleSeed    int64 `mapstructure:"SHUFFLE_SEED"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// The .env file is optional; environment variables alone are enough.
	_ = viper.ReadInConfig()

	viper.SetDefault("INPUT_CSV", "malicious_phish.csv")
	viper.SetDefault("OUTPUT_CSV", "phishing_url_dataset.csv")
	viper.SetDefault("SELF_DOMAIN", "your-website-domain.com")
	viper.SetDefault("DNS_SERVER", "8.8.8.8:53")
	viper.SetDefault("FETCH_TIMEOUT", 120)
	viper.SetDefault("PROBE_TIMEOUT", 15)
	viper.SetDefault("WORKERS", 1)
	viper.SetDefault("PHISHING_SAMPLE", 2000)
	viper.SetDefault("BENIGN_SAMPLE", 1000)
	viper.SetDefault("CLASS_SIZE", 400)
	viper.SetDefault("SHUFFLE_SEED", 0)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
