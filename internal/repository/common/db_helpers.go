package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Queryer общий интерфейс *sqlx.DB и *sqlx.Tx для чтения.
type Queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// GetByID - универсальная функция для получения сущности по ID.
// Запрос собирается с "?" и переписывается под диалект драйвера.
func GetByID[T any](ctx context.Context, db Queryer, table string, id interface{}, notFoundErr error) (*T, error) {
	var entity T
	query := db.Rebind(fmt.Sprintf("SELECT * FROM %s WHERE id = ?", table))

	if err := sqlx.GetContext(ctx, db, &entity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("get by id from %s: %w", table, err)
	}

	return &entity, nil
}

// SelectIn выбирает строки, у которых column входит в values.
// Пустой values не ходит в базу.
func SelectIn[T any, V any](ctx context.Context, db Queryer, base, column string, values []V) ([]T, error) {
	if len(values) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf("%s WHERE %s IN (?)", base, column), values)
	if err != nil {
		return nil, fmt.Errorf("select in: %w", err)
	}

	var rows []T
	if err := sqlx.SelectContext(ctx, db, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select in: %w", err)
	}
	return rows, nil
}

// BatchInsert - универсальная функция для массовой вставки
// Устраняет N+1 проблемы при вставке в цикле
type BatchInserter struct {
	tx          *sqlx.Tx
	query       string
	batchSize   int
	values      []interface{}
	rowCount    int
	fieldsCount int
	inserted    int
}

// NewBatchInserter создает новый batch inserter
func NewBatchInserter(tx *sqlx.Tx, baseQuery string, fieldsCount int, batchSize int) *BatchInserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchInserter{
		tx:          tx,
		query:       baseQuery,
		batchSize:   batchSize,
		values:      make([]interface{}, 0, batchSize*fieldsCount),
		fieldsCount: fieldsCount,
	}
}

// Add добавляет строку для вставки
func (bi *BatchInserter) Add(ctx context.Context, rowValues ...interface{}) error {
	if len(rowValues) != bi.fieldsCount {
		return fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidInput, bi.fieldsCount, len(rowValues))
	}

	bi.values = append(bi.values, rowValues...)
	bi.rowCount++

	// Если достигли размера батча, выполняем вставку
	if bi.rowCount >= bi.batchSize {
		return bi.Flush(ctx)
	}

	return nil
}

// Flush выполняет вставку накопленных значений
func (bi *BatchInserter) Flush(ctx context.Context) error {
	if bi.rowCount == 0 {
		return nil
	}

	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", bi.fieldsCount), ", ") + ")"
	rows := make([]string, bi.rowCount)
	for i := range rows {
		rows[i] = row
	}

	query := bi.tx.Rebind(bi.query + " VALUES " + strings.Join(rows, ", "))

	if _, err := bi.tx.ExecContext(ctx, query, bi.values...); err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}

	bi.inserted += bi.rowCount
	bi.values = bi.values[:0]
	bi.rowCount = 0

	return nil
}

// Inserted сколько строк уже записано в базу.
func (bi *BatchInserter) Inserted() int {
	return bi.inserted
}

// WithTransaction выполняет функцию внутри транзакции с правильной обработкой ошибок
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
