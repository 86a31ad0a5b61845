package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sharkhome/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps each collection in its own table but still honors the
// whole-state Load/Save contract: Save replaces every collection inside one
// transaction, so readers never observe a partial write.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (r *SQLiteStore) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteStore) Load(ctx context.Context) (State, error) {
	s := State{
		ShoppingList:   []core.ShoppingItem{},
		Expenses:       []core.Expense{},
		Recipes:        []core.Recipe{},
		CustomProducts: []string{},
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text, completed, created_at FROM shopping_items ORDER BY position`)
	if err != nil {
		return State{}, fmt.Errorf("query shopping items: %w", err)
	}
	for rows.Next() {
		var it core.ShoppingItem
		var completed int
		var created string
		if err := rows.Scan(&it.ID, &it.Text, &completed, &created); err != nil {
			rows.Close()
			return State{}, fmt.Errorf("scan shopping item: %w", err)
		}
		it.Completed = completed != 0
		it.CreatedAt = parseStoredTime(created)
		s.ShoppingList = append(s.ShoppingList, it)
	}
	if err := closeRows(rows); err != nil {
		return State{}, fmt.Errorf("read shopping items: %w", err)
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT id, category, description, amount_cents, occurred_at FROM expenses ORDER BY position`)
	if err != nil {
		return State{}, fmt.Errorf("query expenses: %w", err)
	}
	for rows.Next() {
		var e core.Expense
		var occurred string
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.Amount.Cents, &occurred); err != nil {
			rows.Close()
			return State{}, fmt.Errorf("scan expense: %w", err)
		}
		e.OccurredAt = parseStoredTime(occurred)
		s.Expenses = append(s.Expenses, e)
	}
	if err := closeRows(rows); err != nil {
		return State{}, fmt.Errorf("read expenses: %w", err)
	}

	recipes, err := r.loadRecipes(ctx)
	if err != nil {
		return State{}, err
	}
	s.Recipes = recipes

	rows, err = r.db.QueryContext(ctx,
		`SELECT name FROM custom_products ORDER BY position`)
	if err != nil {
		return State{}, fmt.Errorf("query custom products: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return State{}, fmt.Errorf("scan custom product: %w", err)
		}
		s.CustomProducts = append(s.CustomProducts, name)
	}
	if err := closeRows(rows); err != nil {
		return State{}, fmt.Errorf("read custom products: %w", err)
	}

	return s, nil
}

func (r *SQLiteStore) loadRecipes(ctx context.Context) ([]core.Recipe, error) {
	recipes := []core.Recipe{}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM recipes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	index := map[core.ID]int{}
	for rows.Next() {
		var rec core.Recipe
		var created string
		if err := rows.Scan(&rec.ID, &rec.Name, &created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		rec.CreatedAt = parseStoredTime(created)
		rec.Ingredients = []core.Ingredient{}
		index[rec.ID] = len(recipes)
		recipes = append(recipes, rec)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT id, recipe_id, text FROM recipe_ingredients ORDER BY recipe_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	for rows.Next() {
		var ing core.Ingredient
		var recipeID core.ID
		if err := rows.Scan(&ing.ID, &recipeID, &ing.Text); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		if i, ok := index[recipeID]; ok {
			recipes[i].Ingredients = append(recipes[i].Ingredients, ing)
		}
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read recipe ingredients: %w", err)
	}

	return recipes, nil
}

func (r *SQLiteStore) Save(ctx context.Context, s State) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"shopping_items", "expenses", "recipe_ingredients", "recipes", "custom_products"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, it := range s.ShoppingList {
		completed := 0
		if it.Completed {
			completed = 1
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shopping_items (id, text, completed, created_at, position) VALUES (?, ?, ?, ?, ?)`,
			it.ID, it.Text, completed, formatStoredTime(it.CreatedAt), i)
		if err != nil {
			return fmt.Errorf("insert shopping item: %w", err)
		}
	}

	for i, e := range s.Expenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, category, description, amount_cents, occurred_at, position) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Category, e.Description, e.Amount.Cents, formatStoredTime(e.OccurredAt), i)
		if err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
	}

	for i, rec := range s.Recipes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipes (id, name, created_at, position) VALUES (?, ?, ?, ?)`,
			rec.ID, rec.Name, formatStoredTime(rec.CreatedAt), i)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		for j, ing := range rec.Ingredients {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_ingredients (id, recipe_id, text, position) VALUES (?, ?, ?, ?)`,
				ing.ID, rec.ID, ing.Text, j)
			if err != nil {
				return fmt.Errorf("insert recipe ingredient: %w", err)
			}
		}
	}

	for i, name := range s.CustomProducts {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO custom_products (name, position) VALUES (?, ?)`,
			name, i)
		if err != nil {
			return fmt.Errorf("insert custom product: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}

func (r *SQLiteStore) LoadRemoteConfig(ctx context.Context) (core.RemoteConfig, error) {
	var cfg core.RemoteConfig
	err := r.db.QueryRowContext(ctx,
		`SELECT endpoint, token FROM remote_config WHERE id = 1`).
		Scan(&cfg.Endpoint, &cfg.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return core.RemoteConfig{}, nil
	}
	if err != nil {
		return core.RemoteConfig{}, fmt.Errorf("query remote config: %w", err)
	}
	return cfg, nil
}

func (r *SQLiteStore) SaveRemoteConfig(ctx context.Context, cfg core.RemoteConfig) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO remote_config (id, endpoint, token) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET endpoint = excluded.endpoint, token = excluded.token`,
		cfg.Endpoint, cfg.Token)
	if err != nil {
		return fmt.Errorf("save remote config: %w", err)
	}
	return nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// parseStoredTime reads RFC3339; the zero time stands in for unparseable
// legacy values rather than failing the whole load.
func parseStoredTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatStoredTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
