package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sessatakuma/API-tools/pkg/jmdict"
	"github.com/sessatakuma/API-tools/pkg/nlb"
	"github.com/sessatakuma/API-tools/pkg/ojad"
	"github.com/sessatakuma/API-tools/pkg/yahoo"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
)

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

type CacheConfig struct {
	Path     string
	InMemory bool
}

type Config struct {
	ZapConfig  string
	Host       string
	SecretFile string
	Timeout    time.Duration

	Yahoo  yahoo.Config
	OJAD   ojad.Config
	JMdict jmdict.Config
	NLB    nlb.Config
	Cache  CacheConfig
}

func (c *Config) ZapConf() (*zap.Config, error) {
	if c.ZapConfig == "" {
		defaultConf := zap.NewDevelopmentConfig()
		return &defaultConf, nil
	}
	var zapConf zap.Config
	if err := json.Unmarshal([]byte(c.ZapConfig), &zapConf); err != nil {
		return nil, err
	}
	return &zapConf, nil
}

func getConfig() (*Config, *zap.Config, error) {
	pflag.StringP("config", "c", "config.yaml", "path to local config")
	pflag.Parse()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, nil, err
	}
	viper.SetEnvPrefix("APITOOLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("host", "localhost:8080")
	viper.SetDefault("secretfile", "secret.yaml")
	viper.SetDefault("timeout", "10s")
	viper.BindEnv("yahoo.appid")
	viper.BindEnv("cache.path")
	viper.BindEnv("cache.inmemory")

	configPath := viper.GetString("config")
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err == nil {
		fmt.Printf("Using config file: %s\n", configPath)
	}

	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, nil, fmt.Errorf("error while unmarshaling config: %w", err)
	}
	if err := loadSecret(&conf); err != nil {
		return nil, nil, err
	}
	zapConf, err := conf.ZapConf()
	if err != nil {
		return nil, nil, err
	}
	return &conf, zapConf, nil
}

// loadSecret reads the upstream credential from the secret file when
// the main config did not supply one. Deployments keep the credential
// out of the committed config this way.
func loadSecret(conf *Config) error {
	if conf.Yahoo.AppID != "" || conf.SecretFile == "" {
		return nil
	}
	secrets := viper.New()
	secrets.SetConfigFile(conf.SecretFile)
	if err := secrets.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error while reading secret file: %w", err)
	}
	conf.Yahoo.AppID = secrets.GetString("Yahoo_API_key")
	return nil
}

func main() {
	conf, zapConf, err := getConfig()
	if err != nil {
		exitf(codeErrorArgs, "Failure while parsing arguments: %s", err)
	}
	logger, err := zapConf.Build()
	if err != nil {
		exitf(codeErrorArgs, "Failure while instatiating logger: %s", err)
	}
	defer logger.Sync()

	logger.Info("Starting server")
	server, err := New(logger, conf)
	if err != nil {
		exitf(codeInternalError, "Can not initialize server: %s", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		if err := server.Close(context.Background()); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
			return
		}
	}()

	logger.Info(fmt.Sprintf("Listening started on http://%s", conf.Host))
	if err := server.ListenAndServe(); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
		}
	}
	logger.Info("Closed")
}
