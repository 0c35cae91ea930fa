package config

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BaseDelayMs int    `json:"basedelayms"`
	MinDelayMs  int    `json:"mindelayms"`
	Seed        int64  `json:"seed"`
	DBPath      string `json:"dbpath"`
	Port        string `json:"port"`
	WebEnabled  bool   `json:"webenabled"`
	StaticDir   string `json:"staticdir"`
	Blocksize   int    `json:"blocksize"`
}

var (
	instance   *AppConfig
	instanceMu sync.RWMutex
	once       sync.Once
)

func defaultConfig() *AppConfig {
	return &AppConfig{
		Width:       40,
		Height:      20,
		BaseDelayMs: 120,
		MinDelayMs:  40,
		Seed:        0, // 0 means seed from the clock
		DBPath:      "snake.db",
		Port:        "38870",
		WebEnabled:  true,
		StaticDir:   "./static",
		Blocksize:   20,
	}
}

// LoadConfig initializes and returns a copy of AppConfig
func LoadConfig(filePath string) AppConfig {
	once.Do(func() {
		instance = defaultConfig()
		// Load the config file if it exists, otherwise create one
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			saveConfig(filePath)
		} else {
			loadConfig(filePath)
		}
	})
	return GetConfig()
}

// GetConfig returns a copy of the current configuration. Hot-reloaded
// values show up here; callers pick them up when the next session
// starts.
func GetConfig() AppConfig {
	instanceMu.RLock()
	defer instanceMu.RUnlock()
	return *instance
}

// loadConfig loads the settings from the file
func loadConfig(filePath string) {
	if err := reloadConfig(filePath); err != nil {
		panic(err)
	}
}

// reloadConfig re-reads the file and swaps the instance. The watcher
// uses this path, where a half-written file must not take the game
// down.
func reloadConfig(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	cfg := defaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return err
	}
	sanitize(cfg)

	instanceMu.Lock()
	instance = cfg
	instanceMu.Unlock()
	return nil
}

// sanitize clamps unusable values back to the defaults.
func sanitize(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Width < 10 {
		cfg.Width = def.Width
	}
	if cfg.Height < 8 {
		cfg.Height = def.Height
	}
	if cfg.BaseDelayMs <= 0 {
		cfg.BaseDelayMs = def.BaseDelayMs
	}
	if cfg.MinDelayMs <= 0 {
		cfg.MinDelayMs = def.MinDelayMs
	}
	if cfg.MinDelayMs > cfg.BaseDelayMs {
		cfg.MinDelayMs = cfg.BaseDelayMs
	}
	if cfg.Blocksize <= 0 {
		cfg.Blocksize = def.Blocksize
	}
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	if cfg.Port == "" {
		cfg.Port = def.Port
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = def.StaticDir
	}
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string) {
	file, err := os.Create(filePath)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(instance); err != nil {
		panic(err)
	}
}

// WatchConfig hot-reloads the file on change. Run it as a goroutine;
// it blocks forever. A running session never sees new values, they
// apply when the next one starts.
func WatchConfig(filePath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Println("config watcher disabled:", err)
		return
	}
	defer watcher.Close()

	done := make(chan bool)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
					if err := reloadConfig(filePath); err != nil {
						log.Println("config reload failed:", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("config watcher error:", err)
			}
		}
	}()

	if err = watcher.Add(filePath); err != nil {
		log.Println("config watcher disabled:", err)
		return
	}
	<-done
}
