package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"batepapo/internal/database"
)

func TestMain(m *testing.M) {
	// プロジェクトルートの.envを読み込み
	_ = godotenv.Load("../../.env")
	os.Exit(m.Run())
}

// setupTestDB テスト用データベース接続をセットアップ
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	host := os.Getenv("DB_HOST")
	if host == "" {
		t.Skip("Skipping: DB_HOST not set")
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), host, port, os.Getenv("DB_NAME"))

	testDB, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("Skipping: could not connect to test database: %v", err)
	}
	if err := testDB.Ping(); err != nil {
		t.Skipf("Skipping: could not ping test database: %v", err)
	}

	if err := database.Migrate(context.Background(), testDB); err != nil {
		t.Fatalf("Failed to create test tables: %v", err)
	}

	wipe := func() {
		testDB.Exec("DELETE FROM participants")
		testDB.Exec("DELETE FROM messages")
	}
	wipe()
	t.Cleanup(func() {
		wipe()
		testDB.Close()
	})

	return testDB
}

func TestMySQL(t *testing.T) {
	testStore(t, func(t *testing.T) Store { return NewMySQL(setupTestDB(t)) })
}
