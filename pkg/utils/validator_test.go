package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/pkg/apperror"
)

func TestValidateBoardRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBoardRequest
		wantField string
	}{
		{name: "valid", req: dto.CreateBoardRequest{Name: "Alpha", Description: "d"}},
		{name: "empty name", req: dto.CreateBoardRequest{Name: ""}, wantField: "name"},
		{name: "whitespace name", req: dto.CreateBoardRequest{Name: "   \t"}, wantField: "name"},
		{name: "long name", req: dto.CreateBoardRequest{Name: strings.Repeat("n", 101)}, wantField: "name"},
		{name: "long description", req: dto.CreateBoardRequest{Name: "ok", Description: strings.Repeat("d", 501)}, wantField: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			details := GetValidationErrors(err)
			require.Len(t, details, 1)
			assert.Equal(t, tt.wantField, details[0].Field)
		})
	}
}

func TestValidateCreateTaskRequest(t *testing.T) {
	bad := models.TaskStatus(3)
	err := ValidateStruct(&dto.CreateTaskRequest{Title: "T", Status: &bad, BoardID: 1})
	require.Error(t, err)
	assert.Equal(t, "status", GetValidationErrors(err)[0].Field)

	err = ValidateStruct(&dto.CreateTaskRequest{Title: "T"})
	require.Error(t, err)
	assert.Equal(t, "boardId", GetValidationErrors(err)[0].Field)

	assert.NoError(t, ValidateStruct(&dto.CreateTaskRequest{Title: "T", BoardID: 1}))
}

func TestValidateUpdateTaskRequest(t *testing.T) {
	err := ValidateStruct(&dto.UpdateTaskRequest{Title: " ", Priority: models.TaskPriorityHigh})
	require.Error(t, err)
	details := GetValidationErrors(err)
	assert.Equal(t, "title", details[0].Field)
	assert.Equal(t, "title is required", details[0].Message)

	err = ValidateStruct(&dto.UpdateTaskRequest{Title: "ok", Priority: models.TaskPriority(-1)})
	require.Error(t, err)
	assert.Equal(t, "priority", GetValidationErrors(err)[0].Field)
}

func TestValidateStructReturnsValidationKind(t *testing.T) {
	err := ValidateStruct(&dto.CreateBoardRequest{Name: ""})
	require.Error(t, err)

	assert.True(t, apperror.IsValidation(err))
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "name", appErr.Field)
	assert.Equal(t, "name is required", appErr.Message)
}

func TestValidateCreateTaskRejectsOversizedBoardID(t *testing.T) {
	err := ValidateStruct(&dto.CreateTaskRequest{Title: "T", BoardID: ^uint(0)})
	require.Error(t, err)
	details := GetValidationErrors(err)
	assert.Equal(t, "boardId", details[0].Field)
	assert.Equal(t, "max", details[0].Tag)

	assert.NoError(t, ValidateStruct(&dto.CreateTaskRequest{Title: "T", BoardID: 1<<63 - 1}))
}

func TestGetValidationErrorsFromPlainValidationError(t *testing.T) {
	details := GetValidationErrors(apperror.Validation("title", "title is required"))
	require.Len(t, details, 1)
	assert.Equal(t, "title", details[0].Field)
	assert.Equal(t, "title is required", details[0].Message)
}
