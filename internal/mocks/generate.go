// Package mocks provides mock implementations for testing the booking API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByEmail, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/zenstudio/booking-api/internal/core UserRepository

// Generate mock for TeacherRepository interface from internal/core package.
// This creates MockTeacherRepository with methods for all TeacherRepository interface methods:
// GetByID, ListAll
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=teacher_repository_mock.go github.com/zenstudio/booking-api/internal/core TeacherRepository

// Generate mock for SessionRepository interface from internal/core package.
// This creates MockSessionRepository with methods for all SessionRepository interface methods:
// Create, GetByID, ListAll, Update, Delete, AddParticipant, RemoveParticipant
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_repository_mock.go github.com/zenstudio/booking-api/internal/core SessionRepository
