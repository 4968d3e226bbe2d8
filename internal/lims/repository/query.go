package repository

import (
	"context"

	"gorm.io/gorm"
)

// paginate counts the filtered query then loads one page into dest.
// pageSize <= 0 loads every row.
func paginate(query *gorm.DB, page, pageSize int, order string, dest interface{}) (int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}

	q := query.Order(order)
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * pageSize).Limit(pageSize)
	}
	return total, q.Find(dest).Error
}

// StatusCount one row of a GROUP BY status aggregate
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func countByColumn(ctx context.Context, db *gorm.DB, model interface{}, column, value string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where(column+" = ?", value).Count(&n).Error
	return n, err
}

func groupByStatus(ctx context.Context, db *gorm.DB, model interface{}) (map[string]int64, error) {
	var rows []StatusCount
	err := db.WithContext(ctx).
		Model(model).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id string) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, column, value string) (bool, error) {
	n, err := countByColumn(ctx, db, model, column, value)
	return n > 0, err
}
