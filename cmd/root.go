/*
Package cmd implements the command-line interface for a2a-foundry. Each
command replays one agent scenario against a hosted agent service project
and cleans up everything it created.
*/
package cmd

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the tool,
which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "a2a-foundry"
	cfgFile     string
	verbose     bool

	rootCmd = &cobra.Command{
		Use:               "a2a-foundry",
		Short:             "Call hosted agents over the Agent-to-Agent (A2A) protocol",
		Long:              longRoot,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

/*
Execute is the main entry point for the CLI. An interrupt cancels the running
command, its cleanup still runs.
*/
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"log at debug level and report callers",
	)

	rootCmd.AddCommand(basicCmd, toolsCmd)
}

/*
initConfig writes the default config file to the user's home directory if
it doesn't exist, reads it back, and binds the environment variables the
scenarios need.
*/
func initConfig() {
	var err error

	if err = writeConfig(); err != nil {
		log.Fatal("failed to write config", "error", err)
	}

	home, _ := os.UserHomeDir()

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(filepath.Join(home, "."+projectName))

	if err = viper.ReadInConfig(); err != nil {
		log.Fatal("failed to read config", "error", err)
	}

	bindEnv(viper.GetViper())
}

/*
bindEnv lets the environment take precedence over the config file.
*/
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("foundry.endpoint", "PROJECT_ENDPOINT")
	_ = v.BindEnv("foundry.model", "MODEL_DEPLOYMENT_NAME")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	if verbose {
		log.SetReportCaller(true)
		log.SetCallerOffset(0)
		log.SetLevel(log.DebugLevel)
		return nil
	}

	level, err := log.ParseLevel(viper.GetString("log.level"))

	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	log.SetLevel(level)
	return nil
}

/*
writeConfig writes the default config file to the user's home directory.
*/
func writeConfig() (err error) {
	var (
		home, _ = os.UserHomeDir()
		fh      fs.File
		buf     bytes.Buffer
	)

	configDir := filepath.Join(home, "."+projectName)

	if !CheckFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	fullPath := filepath.Join(configDir, cfgFile)

	if CheckFileExists(fullPath) {
		return nil
	}

	if fh, err = embedded.Open("cfg/" + cfgFile); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}

	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info("wrote config file", "path", fullPath)
	return nil
}

func CheckFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
a2a-foundry drives agents hosted in an AI project and talks to them over the
Agent-to-Agent (A2A) protocol.

It needs PROJECT_ENDPOINT (the project endpoint URL) and MODEL_DEPLOYMENT_NAME
(the model deployment agents run on). Tokens come from the default Azure
credential chain unless foundry.token holds a pre-issued bearer token.
`
