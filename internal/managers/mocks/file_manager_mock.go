package mocks

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockFileManager struct {
	mock.Mock
}

func (m *MockFileManager) SaveUpload(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockFileManager) Dir() string {
	args := m.Called()
	return args.String(0)
}
