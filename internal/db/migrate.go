package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrations возвращает встроенные миграции для диалекта драйвера.
func Migrations(driver string) (fs.FS, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
		return fs.Sub(migrationsFS, "migrations/"+driver)
	default:
		return nil, fmt.Errorf("db: нет миграций для драйвера %q", driver)
	}
}

// RunMigrations выполняет встроенные SQL файлы для драйвера соединения.
func RunMigrations(ctx context.Context, conn *sqlx.DB) error {
	migrations, err := Migrations(conn.DriverName())
	if err != nil {
		return err
	}
	return RunMigrationsFS(ctx, conn, migrations)
}

// RunMigrationsFS выполняет SQL файлы из migrations в порядке имён.
// Уже применённые файлы пропускаются.
func RunMigrationsFS(ctx context.Context, conn *sqlx.DB, migrations fs.FS) error {
	// Создаём таблицу для отслеживания выполненных миграций
	if err := initMigrationsTable(ctx, conn); err != nil {
		return fmt.Errorf("migrations: не удалось инициализировать таблицу миграций: %w", err)
	}

	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return fmt.Errorf("migrations: не удалось прочитать каталог миграций: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		migrationName := entry.Name()

		alreadyApplied, err := isMigrationApplied(ctx, conn, migrationName)
		if err != nil {
			return fmt.Errorf("migrations: не удалось проверить статус миграции %s: %w", migrationName, err)
		}
		if alreadyApplied {
			continue
		}

		if err := applyMigration(ctx, conn, migrations, migrationName); err != nil {
			return err
		}
	}

	return nil
}

// AppliedMigrations возвращает имена применённых миграций по порядку.
func AppliedMigrations(ctx context.Context, conn *sqlx.DB) ([]string, error) {
	var names []string
	if err := conn.SelectContext(ctx, &names, `SELECT name FROM schema_migrations ORDER BY name`); err != nil {
		return nil, fmt.Errorf("migrations: list applied %w", err)
	}
	return names, nil
}

func initMigrationsTable(ctx context.Context, conn *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := conn.ExecContext(ctx, query)
	return err
}

func isMigrationApplied(ctx context.Context, conn *sqlx.DB, migrationName string) (bool, error) {
	var count int
	query := conn.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`)
	if err := conn.GetContext(ctx, &count, query, migrationName); err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyMigration читает и выполняет конкретный SQL файл в транзакции.
func applyMigration(ctx context.Context, conn *sqlx.DB, migrations fs.FS, migrationName string) error {
	sqlBytes, err := fs.ReadFile(migrations, migrationName)
	if err != nil {
		return fmt.Errorf("migrations: не удалось прочитать миграцию %s: %w", migrationName, err)
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrations: не удалось начать транзакцию для миграции %s: %w", migrationName, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("migrations: не удалось выполнить миграцию %s: %w", migrationName, err)
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_migrations (name) VALUES (?)`), migrationName); err != nil {
		return fmt.Errorf("migrations: не удалось отметить миграцию %s как выполненную: %w", migrationName, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrations: не удалось зафиксировать транзакцию для миграции %s: %w", migrationName, err)
	}

	return nil
}
