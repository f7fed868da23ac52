package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pos-system/internal/config"
	"pos-system/internal/display"
	"pos-system/internal/logger"
	"pos-system/internal/orderservice"
)

func main() {
	mode := flag.String("mode", "", "order-service | waiter-display | kitchen-display")
	cfgPath := flag.String("config", "", "path to YAML config (default: auto-discover)")
	port := flag.Int("port", 0, "order-service: override HTTP port")
	serverURL := flag.String("server", "", "displays: override order-service URL")
	name := flag.String("name", "", "displays: display name reported on actions")
	flag.Parse()

	lg := logger.New("bootstrap")

	path := *cfgPath
	if path == "" {
		var err error
		if path, err = config.Find(); err != nil {
			fmt.Fprintln(os.Stderr, "no config file found; pass --config")
			os.Exit(2)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *serverURL != "" {
		cfg.Display.ServerURL = *serverURL
	}
	if *name != "" {
		cfg.Display.Name = *name
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "order-service":
		err = orderservice.Run(ctx, cfg)
	case "waiter-display":
		err = display.RunWaiter(ctx, cfg)
	case "kitchen-display":
		err = display.RunKitchen(ctx, cfg)
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: order-service | waiter-display | kitchen-display")
		os.Exit(2)
	}
	if err != nil {
		lg.Error("fatal", err, map[string]any{"mode": *mode})
		os.Exit(1)
	}
}
