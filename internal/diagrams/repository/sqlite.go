package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pfd-editor/internal/diagrams/models"
	routing "pfd-editor/internal/routing/models"

	"github.com/google/uuid"
)

// ErrNotFound возвращается, когда записи нет.
var ErrNotFound = errors.New("not found")

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции и убеждается в наличии компонента по умолчанию.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureGeneric(ctx)
}

// ============================================================
// Components
// ============================================================

func (r *Repository) ListComponents(ctx context.Context) ([]models.Component, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT name, legend, suffix, grips, created_at
        FROM components
        ORDER BY name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Component{}
	for rows.Next() {
		comp, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *comp)
	}
	return out, rows.Err()
}

func (r *Repository) GetComponent(ctx context.Context, name string) (*models.Component, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT name, legend, suffix, grips, created_at
        FROM components
        WHERE name = ?
    `, name)
	return scanComponent(row)
}

// SaveComponent создаёт или перезаписывает компонент по имени.
func (r *Repository) SaveComponent(ctx context.Context, c models.Component) error {
	grips, err := json.Marshal(nonNilGrips(c.Grips))
	if err != nil {
		return fmt.Errorf("encode grips: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO components (name, legend, suffix, grips)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET legend = excluded.legend, suffix = excluded.suffix, grips = excluded.grips
    `, c.Name, c.Legend, c.Suffix, string(grips))
	if err != nil {
		return fmt.Errorf("save component: %w", err)
	}
	return nil
}

// ============================================================
// Diagrams
// ============================================================

// CreateDiagram сохраняет диаграмму под новым uuid и возвращает его.
func (r *Repository) CreateDiagram(ctx context.Context, d models.Diagram) (string, error) {
	items, conns, err := encodeDiagram(d)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO diagrams (id, name, items, connections)
        VALUES (?, ?, ?, ?)
    `, id, d.Name, items, conns)
	if err != nil {
		return "", fmt.Errorf("insert diagram: %w", err)
	}
	return id, nil
}

func (r *Repository) GetDiagram(ctx context.Context, id string) (*models.Diagram, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, items, connections, created_at, updated_at
        FROM diagrams
        WHERE id = ?
    `, id)

	var d models.Diagram
	var items, conns string
	if err := row.Scan(&d.ID, &d.Name, &items, &conns, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(items), &d.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal([]byte(conns), &d.Connections); err != nil {
		return nil, fmt.Errorf("decode connections: %w", err)
	}
	return &d, nil
}

// UpdateDiagram перезаписывает имя, элементы и соединения.
func (r *Repository) UpdateDiagram(ctx context.Context, d models.Diagram) error {
	items, conns, err := encodeDiagram(d)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE diagrams
        SET name = ?, items = ?, connections = ?, updated_at = datetime('now')
        WHERE id = ?
    `, d.Name, items, conns, d.ID)
	if err != nil {
		return fmt.Errorf("update diagram: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================
// Migrations & Seeding
// ============================================================

func (r *Repository) runMigrations(migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// ensureGeneric кладёт компонент с левым и правым грипом посередине высоты.
func (r *Repository) ensureGeneric(ctx context.Context) error {
	_, err := r.GetComponent(ctx, "generic")
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	err = r.SaveComponent(ctx, models.Component{
		Name:   "generic",
		Legend: "Generic",
		Grips:  []routing.Grip{{X: 0, Y: 50}, {X: 100, Y: 50}},
	})
	if err != nil {
		return fmt.Errorf("seed generic: %w", err)
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

// ============================================================
// Helpers
// ============================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanComponent(s scanner) (*models.Component, error) {
	var c models.Component
	var grips string
	if err := s.Scan(&c.Name, &c.Legend, &c.Suffix, &grips, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(grips), &c.Grips); err != nil {
		return nil, fmt.Errorf("decode grips: %w", err)
	}
	return &c, nil
}

func encodeDiagram(d models.Diagram) (string, string, error) {
	items := d.Items
	if items == nil {
		items = []routing.CanvasItem{}
	}
	conns := d.Connections
	if conns == nil {
		conns = []routing.Connection{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", "", fmt.Errorf("encode items: %w", err)
	}
	connsJSON, err := json.Marshal(conns)
	if err != nil {
		return "", "", fmt.Errorf("encode connections: %w", err)
	}
	return string(itemsJSON), string(connsJSON), nil
}

func nonNilGrips(g []routing.Grip) []routing.Grip {
	if g == nil {
		return []routing.Grip{}
	}
	return g
}
