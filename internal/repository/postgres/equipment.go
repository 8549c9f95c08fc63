package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/repository"
)

type equipmentRepository struct {
	conn
}

func NewEquipmentRepository(db *sql.DB, queryTimeout time.Duration) repository.EquipmentRepository {
	return &equipmentRepository{conn: newConn(db, queryTimeout)}
}

const equipmentColumns = `e.id, e.name, e.description, e.brand, e.model, e.year_manufactured, e.category_id,
	e.daily_rate, e.weekly_rate, e.monthly_rate, e.location, e.availability_status,
	e.features, e.specifications, e.images, e.created_at,
	COALESCE(c.name, ''), COALESCE(c.icon_name, '')`

const equipmentFrom = ` FROM equipment e LEFT JOIN equipment_categories c ON c.id = e.category_id`

func scanEquipment(s scanner) (*domain.Equipment, error) {
	var (
		e            domain.Equipment
		categoryID   sql.NullString
		year         sql.NullInt32
		specs        []byte
		categoryName string
		categoryIcon string
	)
	err := s.Scan(&e.ID, &e.Name, &e.Description, &e.Brand, &e.Model, &year, &categoryID,
		&e.DailyRate, &e.WeeklyRate, &e.MonthlyRate, &e.Location, &e.AvailabilityStatus,
		pq.Array(&e.Features), &specs, pq.Array(&e.Images), &e.CreatedAt,
		&categoryName, &categoryIcon)
	if err != nil {
		return nil, err
	}
	e.YearManufactured = year.Int32
	if categoryID.Valid {
		e.CategoryID = categoryID.String
		e.Category = &domain.EquipmentCategory{ID: categoryID.String, Name: categoryName, IconName: categoryIcon}
	}
	e.Specifications, err = decodeSpecifications(specs)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// decodeSpecifications flattens the JSONB object; non-string values keep their JSON text.
func decodeSpecifications(raw []byte) (map[string]string, error) {
	specs := map[string]string{}
	if len(raw) == 0 {
		return specs, nil
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode specifications: %w", err)
	}
	for k, v := range values {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			specs[k] = s
			continue
		}
		specs[k] = string(v)
	}
	return specs, nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + equipmentColumns + equipmentFrom + ` WHERE e.id = $1`
	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(ctx, "get equipment", "equipment", err)
	}
	return e, nil
}

func (r *equipmentRepository) Search(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	conds := []string{"e.availability_status = 'available'"}
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.CategoryID != "" {
		conds = append(conds, "e.category_id = "+arg(f.CategoryID))
	}
	if f.Location != "" {
		conds = append(conds, "e.location ILIKE "+arg("%"+f.Location+"%"))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(e.name ILIKE %[1]s OR e.description ILIKE %[1]s OR e.brand ILIKE %[1]s)", p))
	}
	if f.MinPrice > 0 {
		conds = append(conds, "e.daily_rate >= "+arg(f.MinPrice))
	}
	if f.MaxPrice > 0 {
		conds = append(conds, "e.daily_rate <= "+arg(f.MaxPrice))
	}

	query := `SELECT ` + equipmentColumns + equipmentFrom +
		` WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY e.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(ctx, "search equipment", "equipment", err)
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, mapError(ctx, "search equipment", "equipment", err)
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, "search equipment", "equipment", err)
	}
	return items, nil
}

func (r *equipmentRepository) ListSimilar(ctx context.Context, categoryID, excludeID string, limit int) ([]domain.Equipment, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + equipmentColumns + equipmentFrom +
		` WHERE e.category_id = $1 AND e.id <> $2 AND e.availability_status = 'available'
		ORDER BY e.created_at DESC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, categoryID, excludeID, limit)
	if err != nil {
		return nil, mapError(ctx, "list similar equipment", "equipment", err)
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, mapError(ctx, "list similar equipment", "equipment", err)
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, "list similar equipment", "equipment", err)
	}
	return items, nil
}

func (r *equipmentRepository) ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, icon_name FROM equipment_categories ORDER BY name`)
	if err != nil {
		return nil, mapError(ctx, "list categories", "category", err)
	}
	defer rows.Close()

	var categories []domain.EquipmentCategory
	for rows.Next() {
		var c domain.EquipmentCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IconName); err != nil {
			return nil, mapError(ctx, "list categories", "category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, "list categories", "category", err)
	}
	return categories, nil
}

func (r *equipmentRepository) GetCategoryByName(ctx context.Context, name string) (*domain.EquipmentCategory, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var c domain.EquipmentCategory
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description, icon_name FROM equipment_categories WHERE name = $1`, name).
		Scan(&c.ID, &c.Name, &c.Description, &c.IconName)
	if err != nil {
		return nil, mapError(ctx, "get category", "category", err)
	}
	return &c, nil
}
