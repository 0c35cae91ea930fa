package sqlite

import (
	"database/sql"
	"log"

	"github.com/hoshinonyaruko/snake-term/structs"
)

const createScoresTableSQL = `
CREATE TABLE IF NOT EXISTS Scores (
    ID INTEGER PRIMARY KEY AUTOINCREMENT,
    Score INTEGER NOT NULL,
    Length INTEGER NOT NULL,
    Ticks INTEGER NOT NULL,
    Cause TEXT NOT NULL,
    PlayedAt TIMESTAMP NOT NULL
);
`

const createScoresIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_scores_rank ON Scores (Score DESC, PlayedAt);
`

func executeSQL(db *sql.DB, sqlStatement string) {
	_, err := db.Exec(sqlStatement)
	if err != nil {
		log.Fatalf("Error executing SQL statement: %s\n%s", sqlStatement, err)
	}
}

func InitializeDatabase(db *sql.DB) {
	executeSQL(db, createScoresTableSQL)
	executeSQL(db, createScoresIndexSQL)
}

// SaveScore stores one finished session.
func SaveScore(db *sql.DB, rec structs.ScoreRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT INTO Scores (Score, Length, Ticks, Cause, PlayedAt) VALUES (?, ?, ?, ?, ?)",
		rec.Score, rec.Length, rec.Ticks, rec.Cause, rec.PlayedAt)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// TopScores returns the best n sessions, highest score first. Ties go
// to the earlier game.
func TopScores(db *sql.DB, n int) ([]structs.ScoreRecord, error) {
	rows, err := db.Query("SELECT ID, Score, Length, Ticks, Cause, PlayedAt FROM Scores ORDER BY Score DESC, PlayedAt ASC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []structs.ScoreRecord{}
	for rows.Next() {
		var rec structs.ScoreRecord
		if err := rows.Scan(&rec.ID, &rec.Score, &rec.Length, &rec.Ticks, &rec.Cause, &rec.PlayedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// BestScore returns the highest score so far, zero when no game has
// been played.
func BestScore(db *sql.DB) (int, error) {
	var best sql.NullInt64
	if err := db.QueryRow("SELECT MAX(Score) FROM Scores").Scan(&best); err != nil {
		return 0, err
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}
