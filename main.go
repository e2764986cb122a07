package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/utils"
)

const defaultConfigFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	configFile := utils.ConfigPath(os.Args[1:], defaultConfigFile)
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		if configFile != defaultConfigFile {
			log.Fatalf("loading config: %+v", err)
		}
		fmt.Printf("Using default configuration (%s not found)\n", defaultConfigFile)
		config = utils.DefaultConfig()
	}

	flag.String("config", configFile, "JSON or YAML configuration file")
	config.Bind(flag.CommandLine)
	flag.Parse()

	if config.Interactive {
		if err = utils.Prompt(os.Stdin, os.Stdout, &config); err != nil {
			log.Fatalf("reading settings: %+v", err)
		}
	}
	if err = config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	renderer, err := newRenderer(config)
	if err != nil {
		log.Fatalf("starting renderer: %+v", err)
	}

	g, err := initializeGame(config, renderer)
	if err != nil {
		_ = renderer.Close()
		log.Fatalf("initializing game: %+v", err)
	}
	if config.Renderer == utils.RendererTerminal {
		displayGameInfo(os.Stdout, config, g)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reason, err := g.run(ctx)
	_ = renderer.Close()
	if err != nil {
		log.Fatalf("simulation failed: %+v", err)
	}

	fmt.Printf("\nSimulation ended: %s\n", reason)
	fmt.Printf("Final stats: %s\n", g.stats.Summary())
}

func newRenderer(config utils.Config) (model.Renderer, error) {
	if config.Renderer == utils.RendererScreen {
		r, err := model.NewScreenRenderer(nil)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	r := model.NewTerminalRenderer(os.Stdout)
	r.AliveChar, r.DeadChar = config.AliveChar, config.DeadChar
	return r, nil
}
