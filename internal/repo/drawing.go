package repo

import (
	"time"

	"github.com/SAMJ447/inspection-proto/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DrawingRepo represents the repository for the drawing model
type DrawingRepo struct {
	db *gorm.DB
}

type DrawingRepoInterface interface {
	CreateDrawing(drawing *models.Drawing) (uuid.UUID, error)
	GetDrawing(id uuid.UUID) (*models.Drawing, error)
	GetAllDrawings() ([]models.Drawing, error)
}

func NewDrawingRepository(db *gorm.DB) DrawingRepoInterface {
	return &DrawingRepo{db: db}
}

// CreateDrawing creates a new drawing in the database
func (r *DrawingRepo) CreateDrawing(drawing *models.Drawing) (uuid.UUID, error) {
	id := uuid.New()
	drawing.UUID = id
	drawing.CreatedAt = time.Now()
	drawing.UpdatedAt = time.Now()
	err := r.db.Create(drawing).Error
	return id, err
}

func (r *DrawingRepo) GetDrawing(id uuid.UUID) (*models.Drawing, error) {
	var drawing models.Drawing
	if err := r.db.Where("uuid = ?", id).First(&drawing).Error; err != nil {
		return nil, err
	}
	return &drawing, nil
}

// GetAllDrawings returns all drawings in the database
func (r *DrawingRepo) GetAllDrawings() ([]models.Drawing, error) {
	var drawings []models.Drawing
	err := r.db.Order("created_at desc").Find(&drawings).Error
	return drawings, err
}
