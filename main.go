package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hoshinonyaruko/snake-term/api"
	"github.com/hoshinonyaruko/snake-term/config"
	"github.com/hoshinonyaruko/snake-term/memsnap"
	"github.com/hoshinonyaruko/snake-term/snake"
	"github.com/hoshinonyaruko/snake-term/sqlite"
	"github.com/hoshinonyaruko/snake-term/structs"
	"github.com/hoshinonyaruko/snake-term/terminal"
	"golang.org/x/term"
)

const logFile = "snake-term.log"

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "snake-term needs an interactive terminal")
		os.Exit(1)
	}

	setupLogOutput()
	// Initialize the configuration
	cfg := config.LoadConfig("./config.json")
	// 检测并热更新配置 下一局生效
	go config.WatchConfig("./config.json")
	EnsureFoldersExist(cfg.StaticDir)
	// 载入上一局的棋盘到内存
	if err := memsnap.Load(cfg.StaticDir); err != nil {
		log.Println("could not restore last board:", err)
	}
	db := api.InitDB(cfg.DBPath)
	defer db.Close()

	if cfg.WebEnabled {
		router := api.NewRouter(db, cfg.StaticDir)
		// 从配置单例读取端口 监听
		go func() {
			if err := router.Run(":" + cfg.Port); err != nil {
				log.Println("web server stopped:", err)
			}
		}()
	}

	for {
		// hot-reloaded values apply from here on
		cfg = config.GetConfig()
		g := snake.NewGame(snake.Options{
			Width:       cfg.Width,
			Height:      cfg.Height,
			BaseDelayMs: cfg.BaseDelayMs,
			MinDelayMs:  cfg.MinDelayMs,
			Seed:        cfg.Seed,
		})

		if err := playSession(g); err != nil {
			log.Fatalf("could not open the terminal screen: %s", err)
		}

		finishSession(db, g, cfg)

		if !askReplay() {
			break
		}
	}

	fmt.Println("Thanks for playing!")
}

// playSession runs one game on a fresh screen. The deferred Close puts
// the terminal back into cooked mode on every exit path, panics
// included.
func playSession(g *snake.Game) error {
	scr, err := terminal.NewTcellScreen()
	if err != nil {
		return err
	}
	defer scr.Close()

	snake.RunSession(g, scr)
	return nil
}

// finishSession persists the score, publishes the final board for the
// web layer and prints the result.
func finishSession(db *sql.DB, g *snake.Game, cfg config.AppConfig) {
	rec := structs.ScoreRecord{
		Score:    g.Score,
		Length:   len(g.Body),
		Ticks:    g.Ticks,
		Cause:    g.Cause,
		PlayedAt: time.Now(),
	}
	if err := sqlite.SaveScore(db, rec); err != nil {
		log.Println("could not save score:", err)
	}

	snap := g.TakeSnapshot()
	memsnap.Set(snap)
	if err := api.SaveBoardSnapshot(snap, cfg.StaticDir, cfg.Blocksize); err != nil {
		log.Println("could not save board snapshot:", err)
	}

	best, err := sqlite.BestScore(db)
	if err != nil {
		best = g.Score
	}

	fmt.Println("Game Over!")
	fmt.Printf("Final Score: %d\n", g.Score)
	fmt.Printf("Best Score: %d\n", best)
}

// askReplay reads a single key for the prompt, raw so the player does
// not have to hit enter. Only y or Y restarts.
func askReplay() bool {
	fmt.Print("Play again? (y/n): ")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// fall back to a buffered line read
		var answer string
		fmt.Scanln(&answer)
		return answer == "y" || answer == "Y"
	}

	buf := make([]byte, 1)
	n, _ := os.Stdin.Read(buf)
	term.Restore(fd, oldState)

	if n == 0 {
		fmt.Println()
		return false
	}
	// raw mode swallowed the echo
	fmt.Printf("%c\n", buf[0])
	return buf[0] == 'y' || buf[0] == 'Y'
}

// setupLogOutput sends the standard logger to a file; stdout and
// stderr belong to the game screen.
func setupLogOutput() {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	log.SetOutput(f)
}

// EnsureFoldersExist 检查并创建必需的文件夹
func EnsureFoldersExist(staticDir string) {
	folders := []string{staticDir}

	for _, folder := range folders {
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			if err := os.MkdirAll(folder, 0755); err != nil {
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		}
	}
}
