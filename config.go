package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultAuthor            = "הרב אליעזר מלמד"
	defaultIntroductionTitle = "מבוא"
	defaultStylesheet        = ".footnote {text-decoration: underline;}"
	defaultColophonTitle     = "Colophon"
)

// config holds the optional settings read from a YAML file. Every field has a
// default, so running without a config file reproduces the stock book layout.
type config struct {
	Author            string `yaml:"author"`
	IntroductionTitle string `yaml:"introduction_title"`
	Stylesheet        string `yaml:"stylesheet"`
	Sanitize          bool   `yaml:"sanitize"`
	Colophon          string `yaml:"colophon"`
	ColophonTitle     string `yaml:"colophon_title"`
}

func defaultConfig() config {
	return config{
		Author:            defaultAuthor,
		IntroductionTitle: defaultIntroductionTitle,
		Stylesheet:        defaultStylesheet,
		ColophonTitle:     defaultColophonTitle,
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	return cfg, nil
}
