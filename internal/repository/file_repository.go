package repository

import (
	"context"
	"job_board_backend/internal/model"

	"gorm.io/gorm"
)

type FileRepository struct {
	DB *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) Create(ctx context.Context, f *model.File) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

