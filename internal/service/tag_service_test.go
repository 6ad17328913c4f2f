package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"famreg/internal/model"
)

func TestTagService_Create(t *testing.T) {
	mockRepo := new(MockTagRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(tag *model.Tag) bool {
		return tag.Name == "school" && tag.UserID == 42
	})).Return(nil)

	svc := NewTagService(mockRepo)
	tag, err := svc.Create(context.Background(), 42, "school")

	require.NoError(t, err)
	assert.Equal(t, "school", tag.Name)
	assert.Equal(t, uint(42), tag.UserID)
	mockRepo.AssertExpectations(t)
}

func TestTagService_List(t *testing.T) {
	tests := []struct {
		name         string
		assignedOnly bool
	}{
		{name: "all tags", assignedOnly: false},
		{name: "assigned only", assignedOnly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := []model.Tag{{Name: "soccer club", UserID: 7}}

			mockRepo := new(MockTagRepository)
			mockRepo.On("ListByUser", mock.Anything, uint(7), tt.assignedOnly).Return(expected, nil)

			svc := NewTagService(mockRepo)
			tags, err := svc.List(context.Background(), 7, tt.assignedOnly)

			require.NoError(t, err)
			assert.Equal(t, expected, tags)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestChildService_Create(t *testing.T) {
	mockRepo := new(MockChildRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(child *model.Child) bool {
		return child.Name == "Mia" && child.UserID == 42
	})).Return(nil)

	svc := NewChildService(mockRepo)
	child, err := svc.Create(context.Background(), 42, "Mia")

	require.NoError(t, err)
	assert.Equal(t, "Mia", child.Name)
	assert.Equal(t, uint(42), child.UserID)
	mockRepo.AssertExpectations(t)
}

func TestChildService_List(t *testing.T) {
	expected := []model.Child{{Name: "Noah", UserID: 7}}

	mockRepo := new(MockChildRepository)
	mockRepo.On("ListByUser", mock.Anything, uint(7), true).Return(expected, nil)

	svc := NewChildService(mockRepo)
	children, err := svc.List(context.Background(), 7, true)

	require.NoError(t, err)
	assert.Equal(t, expected, children)
	mockRepo.AssertExpectations(t)
}
