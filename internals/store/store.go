// Package store is typed CRUD over the FDP tables. Reads return (nil, nil)
// when the row does not exist; only real failures come back as errors.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	helper "fdp_backend/internals/helpers"
)

var ErrCertificateExists = errors.New("certificate already exists for this registration")

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) db(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx)
}

// first loads one row into dst and folds ErrRecordNotFound into found=false.
func first(q *gorm.DB, dst any) (bool, error) {
	err := q.Take(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func paged(q *gorm.DB, p helper.Paging) *gorm.DB {
	if p.Limit > 0 {
		q = q.Limit(p.Limit).Offset(p.Offset)
	}
	return q
}
