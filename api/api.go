package api

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/gin-gonic/gin"
	"github.com/hoshinonyaruko/snake-term/memsnap"
	"github.com/hoshinonyaruko/snake-term/sqlite"
	"github.com/hoshinonyaruko/snake-term/structs"
	_ "github.com/mattn/go-sqlite3"
)

const (
	boardFile      = "board.png"
	boardSmallFile = "board_small.png"
	thumbWidth     = 200
	maxScoreLimit  = 100
)

func InitDB(dbPath string) *sql.DB {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatal(err)
	}

	sqlite.InitializeDatabase(db)

	return db
}

// NewRouter builds the read-only spectator API. gin's console logger
// stays out of the chain; stdout belongs to the game screen.
func NewRouter(db *sql.DB, staticDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/highscores", HighScores(db))
	router.GET("/last-game", LastGame())
	router.Static("/static", staticDir)

	return router
}

// HighScores returns the best sessions as JSON, highest score first.
func HighScores(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if limit > maxScoreLimit {
			limit = maxScoreLimit
		}

		records, err := sqlite.TopScores(db, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load scores"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"scores": records})
	}
}

// LastGame returns the final board of the most recent session.
func LastGame() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := memsnap.Get()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No finished game yet"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// SaveBoardSnapshot renders the final board to board.png under the
// static directory, with a resized preview and the snapshot JSON next
// to it.
func SaveBoardSnapshot(snap structs.Snapshot, staticDir string, blockSize int) error {
	dc := renderBoard(snap, blockSize)

	if err := os.MkdirAll(staticDir, os.ModePerm); err != nil {
		return err
	}
	if err := dc.SavePNG(filepath.Join(staticDir, boardFile)); err != nil {
		return err
	}

	thumb := imaging.Resize(dc.Image(), thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(staticDir, boardSmallFile)); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(memsnap.Path(staticDir), data, 0644)
}

// renderBoard draws the board onto a canvas with one block of border
// ring around the playfield, mirroring the terminal layout.
func renderBoard(snap structs.Snapshot, blockSize int) *gg.Context {
	bs := float64(blockSize)
	canvasWidth := (snap.Width + 2) * blockSize
	canvasHeight := (snap.Height + 2) * blockSize

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// border ring
	dc.SetRGB(0.25, 0.25, 0.25)
	dc.DrawRectangle(0, 0, float64(canvasWidth), bs)
	dc.DrawRectangle(0, float64(canvasHeight)-bs, float64(canvasWidth), bs)
	dc.DrawRectangle(0, 0, bs, float64(canvasHeight))
	dc.DrawRectangle(float64(canvasWidth)-bs, 0, bs, float64(canvasHeight))
	dc.Fill()

	renderGrid(dc, canvasWidth, canvasHeight, blockSize)

	for i, seg := range snap.Body {
		if i == 0 {
			dc.SetRGB(0.2, 0.8, 0.2)
		} else {
			dc.SetRGB(0.1, 0.55, 0.1)
		}
		dc.DrawRectangle(float64(seg.X+1)*bs, float64(seg.Y+1)*bs, bs, bs)
		dc.Fill()
	}

	// food parked off the board is not drawn
	if snap.Food.X >= 0 && snap.Food.Y >= 0 {
		dc.SetRGB(0.85, 0.15, 0.15)
		dc.DrawCircle(float64(snap.Food.X+1)*bs+bs/2, float64(snap.Food.Y+1)*bs+bs/2, bs*0.4)
		dc.Fill()
	}

	return dc
}

// renderGrid draws the light cell grid across the playfield, inside
// the border ring.
func renderGrid(dc *gg.Context, width, height, blockSize int) {
	dc.SetRGB(0.9, 0.9, 0.9)
	for x := blockSize; x <= width-blockSize; x += blockSize {
		dc.DrawLine(float64(x), float64(blockSize), float64(x), float64(height-blockSize))
		dc.Stroke()
	}
	for y := blockSize; y <= height-blockSize; y += blockSize {
		dc.DrawLine(float64(blockSize), float64(y), float64(width-blockSize), float64(y))
		dc.Stroke()
	}
}
