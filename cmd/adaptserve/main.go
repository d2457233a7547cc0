// Copyright 2025 The AdaptServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the adaptive autosuggest server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

AdaptServe derives per-user autosuggest behavior from a recorded clickthrough log.
Each user's click-through rate and typing speed decide when suggestions appear and
how many are shown, and their writing style decides how suggestions are phrased.
It can operate as a MessagePack IPC server for integration with front ends, or as
a CLI application that replays typed lines through the trigger state machine.

# Usage

Start the server with the bundled sample log:

	adaptserve

Use a recorded log and enable debug mode:

	adaptserve -data /path/to/log.csv -d

Replay typing for one user in CLI mode:

	adaptserve -c -user USER_002_JAMES

# Configuration

Runtime configuration is managed through a TOML file, created with defaults at
[UserConfigDir]/adaptserve/config.toml when missing:

	[server]
	max_prefix = 60
	rate_limit = 30
	rate_window_seconds = 60

	[ai]
	enabled = true
	endpoint = "https://myresource.openai.azure.com"
	deployment = "gpt-4o-mini"
	api_key_env = "AZURE_OPENAI_API_KEY"

	[settings]
	db_path = "/var/lib/adaptserve/settings.db"

A section that fails to decode falls back to its defaults without affecting the others.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See package server for
the commands and response shapes.

	{"id": "req1", "cmd": "suggest", "u": "USER_004_MICHAEL", "p": "how to"}

# Command Line Flags

	-data string
	    Behavior log to load (default: config, then the bundled sample)
	-config string
	    Path to a config file
	-d  Enable debug mode with detailed logging
	-c  Run CLI -- replays typed lines through the trigger machine
	-user string
	    User for CLI mode (default from config)
	-no-sim
	    Deliver each CLI line as one input instead of keystrokes
	-ai
	    Enable AI suggestions regardless of the config
	-reset-config
	    Rewrite the default config file and exit
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/adaptserve/internal/cache"
	"github.com/bastiangx/adaptserve/internal/cli"
	"github.com/bastiangx/adaptserve/internal/llm"
	"github.com/bastiangx/adaptserve/internal/settings"
	"github.com/bastiangx/adaptserve/pkg/behavior"
	"github.com/bastiangx/adaptserve/pkg/config"
	"github.com/bastiangx/adaptserve/pkg/server"
	"github.com/bastiangx/adaptserve/pkg/suggest"
)

const (
	Version = "0.3.0-beta"
	AppName = "adaptserve"
	gh      = "https://github.com/bastiangx/adaptserve"
)

// sigHandler closes the settings store and exits on SIGINT or SIGTERM.
func sigHandler(store io.Closer) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		if err := store.Close(); err != nil {
			log.Warnf("Closing settings store: %v", err)
		}
		os.Exit(0)
	}()
}

// main wires config, dataset, settings and the AI source into the server or CLI.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Behavior log to load (default: config, then the bundled sample)")
	configPath := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- replays typed lines through the trigger machine")
	userID := flag.String("user", "", "User for CLI mode (default from config)")
	noSim := flag.Bool("no-sim", false, "Deliver each CLI line as one input instead of keystrokes")
	forceAI := flag.Bool("ai", false, "Enable AI suggestions regardless of the config")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config file and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *resetConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		path, _ := config.GetDefaultConfigPath()
		fmt.Fprintf(os.Stderr, "Default config written to %s\n", path)
		return
	}

	appConfig, loadedFrom, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(loadedFrom))
	if *dataPath != "" {
		appConfig.Dataset.Path = *dataPath
	}
	if *forceAI {
		appConfig.AI.Enabled = true
	}

	ds, err := behavior.LoadDataset(appConfig.Dataset.Path)
	if err != nil {
		log.Fatalf("Failed to load behavior log: %v", err)
	}
	log.Debug("Dataset loaded", "source", ds.Source, "entries", ds.Stats.TotalEntries, "users", ds.Stats.TotalUsers)

	store, err := openStore(appConfig.Settings)
	if err != nil {
		log.Fatalf("Failed to open settings: %v", err)
	}
	defer store.Close()
	sigHandler(store)

	ai := newAISource(appConfig.AI)
	ctx := context.Background()

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		user := *userID
		if user == "" {
			user = appConfig.CLI.DefaultUser
		}
		opts := cli.Options{
			UserID:         user,
			SimulateTyping: appConfig.CLI.SimulateTyping && !*noSim,
			Debounce:       appConfig.AI.Debounce(),
		}
		if ai != nil {
			opts.AI = ai
			// per-session memo; entries live as long as the process
			opts.Memo, err = cache.New[[]string](cache.Options{Size: appConfig.AI.CacheSize})
			if err != nil {
				log.Fatalf("Failed to create AI memo: %v", err)
			}
		}
		handler := cli.NewInputHandler(suggest.FromDataset(ds), ds.Profiles, os.Stdout, opts)
		if err := handler.Start(ctx, os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srvOpts := server.Options{Store: store}
	if ai != nil {
		srvOpts.AI = ai
	}
	srv := server.NewServer(ds, appConfig, srvOpts)

	showStartupInfo(ds, ai != nil)

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func openStore(cfg config.SettingsConfig) (settings.Store, error) {
	if cfg.DBPath == "" {
		log.Debug("Settings kept in memory")
		return settings.NewMemoryStore(), nil
	}
	log.Debugf("Settings database at: %s", cfg.DBPath)
	return settings.Open(cfg.DBPath)
}

// newAISource returns nil when AI suggestions are off or cannot be reached.
func newAISource(cfg config.AIConfig) *llm.Suggester {
	if !cfg.Enabled {
		return nil
	}
	client := llm.NewClient(&llm.ClientConfig{
		Endpoint:          cfg.Endpoint,
		Deployment:        cfg.Deployment,
		APIVersion:        cfg.APIVersion,
		APIKey:            cfg.APIKey(),
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: float64(cfg.RequestsPerSecond),
	})
	if !client.Configured() {
		log.Warn("AI suggestions enabled without an endpoint, disabling")
		return nil
	}
	if cfg.APIKey() == "" {
		log.Warnf("AI suggestions enabled but %s is empty", cfg.APIKeyEnv)
	}

	ttl := cfg.CacheTTL()
	if ttl <= 0 {
		ttl = llm.DefaultCacheTTL
	}
	responses, err := cache.New[[]string](cache.Options{Size: cfg.CacheSize, TTL: ttl})
	if err != nil {
		log.Warnf("AI response cache unavailable: %v", err)
		responses = nil
	}
	return llm.NewSuggester(client, responses)
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ AdaptServe ] Autosuggest that adapts to how you type")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(ds *behavior.Dataset, aiEnabled bool) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" AdaptServe ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dataset: ( %s ) %d entries, %d profiles", ds.Source, ds.Stats.TotalEntries, len(ds.Profiles))
	log.Infof("ai: %t", aiEnabled)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
