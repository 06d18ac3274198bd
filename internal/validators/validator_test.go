package validators

import (
	"testing"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cv := NewValidator()

	tests := []struct {
		name       string
		input      interface{}
		wantFields []string
	}{
		{
			name:  "valid notification by id",
			input: &models.CreateNotificationRequest{SentTo: 2, Title: "Hi", Message: "There"},
		},
		{
			name:  "valid notification by name with type",
			input: &models.CreateNotificationRequest{FullName: "Bob Stone", Title: "Hi", Message: "There", Type: models.NotificationTypeLike},
		},
		{
			name:       "missing recipient",
			input:      &models.CreateNotificationRequest{Title: "Hi", Message: "There"},
			wantFields: []string{"sent_to", "full_name"},
		},
		{
			name:       "unknown type",
			input:      &models.CreateNotificationRequest{SentTo: 2, Title: "Hi", Message: "There", Type: "poke"},
			wantFields: []string{"type"},
		},
		{
			name:       "empty comment",
			input:      &models.CreateCommentRequest{},
			wantFields: []string{"text"},
		},
		{
			name:       "empty batch",
			input:      &models.BatchNotificationRequest{Title: "Hi", Message: "There"},
			wantFields: []string{"recipients"},
		},
		{
			name:       "bad status",
			input:      &models.UpdateProjectStatusRequest{Status: "archived"},
			wantFields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			fields := cv.Translate(verrs)
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestTranslateUsesCustomMessage(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&models.CreateNotificationRequest{SentTo: 1, Title: "t", Message: "m", Type: "poke"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := cv.Translate(verrs)
	assert.Equal(t, "type must be one of projectComment, like, rating, projectSubmission, projectStatus, achievement, general", fields["type"])
}

func TestTranslateNestedField(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&models.BatchNotificationRequest{
		Recipients: []models.Recipient{{ID: 1}, {}},
		Title:      "t",
		Message:    "m",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := cv.Translate(verrs)
	assert.Contains(t, fields, "recipients[1].id")
}
