package service

import (
	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockArtifactGenerator mocks the ArtifactGenerator interface
type MockArtifactGenerator struct {
	mock.Mock
}

func (m *MockArtifactGenerator) Text() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockArtifactGenerator) Chart(subtype domain.ChartSubtype) *domain.ChartDescriptor {
	args := m.Called(subtype)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.ChartDescriptor)
}

func (m *MockArtifactGenerator) File() *domain.FileDescriptor {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.FileDescriptor)
}
