// Package config provides the configuration system for consolekit.
//
// Settings are assembled from three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← CONSOLEKIT_SECTION_KEY
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML, by extension
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg := config.New(config.WithPath("consolekit.toml"))
//	settings, err := cfg.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Live Reload
//
// A Watcher reloads the file when it changes and hands the validated
// settings to a callback:
//
//	w, _ := config.NewWatcher(cfg)
//	go w.Run(ctx, func(s *config.Settings, err error) { ... })
package config
