package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Поддерживаемые драйверы.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	// modernc регистрируется как "sqlite", sqlx знает только "sqlite3".
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open открывает подключение к базе выбранного драйвера и настраивает пул.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgres(ctx, dsn)
	case DriverSQLite:
		return NewSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("db: неизвестный драйвер %q", driver)
	}
}

// NewPostgres создаёт подключение к PostgreSQL с заданным DSN.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: не удалось подключиться: %w", err)
	}

	// Каждый запрос трогает одну-две строки, большой пул не нужен.
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return conn, nil
}

// NewSQLite открывает файл встроенной базы. Путь ":memory:" тоже допустим.
func NewSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: путь к базе обязателен")
	}

	conn, err := sqlx.ConnectContext(ctx, DriverSQLite, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: не удалось открыть %s: %w", path, err)
	}

	// SQLite сериализует запись; одно соединение исключает SQLITE_BUSY
	// и делает ":memory:" одной и той же базой для всех запросов.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	return conn, nil
}

func sqliteDSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	if strings.Contains(path, "?") {
		return path + "&" + pragmas
	}
	return path + "?" + pragmas
}
