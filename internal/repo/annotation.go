package repo

import (
	"encoding/json"
	"time"

	"github.com/SAMJ447/inspection-proto/internal/canvas"
	"github.com/SAMJ447/inspection-proto/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnnotationRepo struct {
	db *gorm.DB
}

type AnnotationRepoInterface interface {
	SavePage(drawingID uuid.UUID, page int, shapes []canvas.Shape) error
	LoadPage(drawingID uuid.UUID, page int) ([]canvas.Shape, error)
	LoadAll(drawingID uuid.UUID) ([]canvas.Shape, error)
	ClearDrawing(drawingID uuid.UUID) error
}

// NewAnnotationRepository returns a new instance of AnnotationRepo
func NewAnnotationRepository(db *gorm.DB) AnnotationRepoInterface {
	return &AnnotationRepo{db: db}
}

// annotationRows builds the insert batch for one page. The slice index
// becomes the Seq column: creation order is the paint and hit-test order, so
// it has to survive the round-trip exactly, and insert timestamps can tie.
func annotationRows(drawingID uuid.UUID, page int, shapes []canvas.Shape) ([]models.Annotation, error) {
	rows := make([]models.Annotation, 0, len(shapes))
	for i, shape := range shapes {
		data, err := json.Marshal(shape)
		if err != nil {
			return nil, err
		}
		shapeUUID, err := uuid.Parse(shape.ID)
		if err != nil {
			// client-generated ids are not always uuids
			shapeUUID = uuid.New()
		}
		rows = append(rows, models.Annotation{
			UUID:      shapeUUID,
			DrawingID: drawingID,
			Page:      page,
			Seq:       i,
			Type:      string(shape.Type),
			Data:      datatypes.JSON(data),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	}
	return rows, nil
}

// SavePage replaces the stored shapes for a single page of a drawing.
// Shapes belonging to other pages are untouched.
func (r *AnnotationRepo) SavePage(drawingID uuid.UUID, page int, shapes []canvas.Shape) error {
	rows, err := annotationRows(drawingID, page, shapes)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("drawing_id = ? AND page = ?", drawingID, page).
			Delete(&models.Annotation{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *AnnotationRepo) LoadPage(drawingID uuid.UUID, page int) ([]canvas.Shape, error) {
	var rows []models.Annotation
	err := r.db.Where("drawing_id = ? AND page = ?", drawingID, page).
		Order("seq asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeShapes(rows)
}

func (r *AnnotationRepo) LoadAll(drawingID uuid.UUID) ([]canvas.Shape, error) {
	var rows []models.Annotation
	err := r.db.Where("drawing_id = ?", drawingID).
		Order("page asc, seq asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeShapes(rows)
}

func (r *AnnotationRepo) ClearDrawing(drawingID uuid.UUID) error {
	return r.db.Where("drawing_id = ?", drawingID).Delete(&models.Annotation{}).Error
}

func decodeShapes(rows []models.Annotation) ([]canvas.Shape, error) {
	shapes := make([]canvas.Shape, 0, len(rows))
	for _, row := range rows {
		var shape canvas.Shape
		if err := json.Unmarshal(row.Data, &shape); err != nil {
			return nil, err
		}
		shape.Page = row.Page
		shapes = append(shapes, shape)
	}
	return shapes, nil
}
