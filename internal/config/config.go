package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Workshop Workshop `koanf:"workshop"`
	Database Database `koanf:"db"`
}

// Workshop describes the operating calendar used for all lead time math.
// Times are local wall-clock times ("HH:MM") in the configured timezone.
type Workshop struct {
	Timezone       string `koanf:"timezone"`
	OperatingStart string `koanf:"operatingstart"`
	OperatingEnd   string `koanf:"operatingend"`
	// Breaks are "HH:MM-HH:MM" windows inside the operating window.
	Breaks []string `koanf:"breaks"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Workshop: Workshop{
			Timezone:       "Asia/Jakarta",
			OperatingStart: "08:00",
			OperatingEnd:   "17:00",
			Breaks:         []string{"12:00-13:00"},
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "pitstop",
			Pass:   "",
			Name:   "pitstop",
			Schema: "pitstop",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "PITSTOP_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PITSTOP_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
