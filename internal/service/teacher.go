package service

import (
	"context"

	"github.com/zenstudio/booking-api/internal/core"
	"github.com/zenstudio/booking-api/internal/domain/model"
)

// TeacherService exposes read access to the teacher catalog.
type TeacherService struct {
	teachers core.TeacherRepository
}

// NewTeacherService creates a TeacherService.
func NewTeacherService(teachers core.TeacherRepository) *TeacherService {
	return &TeacherService{teachers: teachers}
}

// Get retrieves a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id string) (*model.Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}

// List retrieves all teachers.
func (s *TeacherService) List(ctx context.Context) ([]*model.Teacher, error) {
	return s.teachers.ListAll(ctx)
}
