package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"plan-analyzer/internal/analyzer/models"
)

// ============================================================
// SQLite Plan Repository
// ============================================================

// Репозиторий хранит документ плана как JSON-блоб: движок анализа
// работает только с in-memory документом, схема таблицы его не дублирует.

var ErrNotFound = errors.New("plan not found")

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет миграции из файла.
func (r *Repository) Init(migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Save записывает документ, перезаписывая существующий с тем же id.
func (r *Repository) Save(ctx context.Context, id, name string, doc *models.Apartment) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO plans (id, name, data) VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data
    `, id, name, string(data))
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// Get читает и десериализует документ плана.
func (r *Repository) Get(ctx context.Context, id string) (*models.Apartment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM plans WHERE id = ?`, id)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var doc models.Apartment
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &doc, nil
}

type PlanInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// List возвращает сводку по сохраненным планам, без самих документов.
func (r *Repository) List(ctx context.Context) ([]PlanInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM plans ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []PlanInfo{}
	for rows.Next() {
		var p PlanInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Delete удаляет план; неизвестный id дает ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
