package taskform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/focusflow/internal/core/task"
)

func TestFromDraft(t *testing.T) {
	v := FromDraft(task.Draft{Title: "t", Priority: task.PriorityHigh, TimeAllocation: 30})
	assert.Equal(t, "30", v.Minutes)
	assert.Equal(t, task.PriorityHigh, v.Priority)

	empty := FromDraft(task.Draft{})
	assert.Empty(t, empty.Minutes)
	assert.Equal(t, task.PriorityMedium, empty.Priority)
}

func TestValues_Draft(t *testing.T) {
	v := &Values{Title: "  Write tests ", Description: " body ", Priority: task.PriorityLow, Minutes: " 45 "}

	d, err := v.Draft()
	require.NoError(t, err)
	assert.Equal(t, task.Draft{Title: "Write tests", Description: "body", Priority: task.PriorityLow, TimeAllocation: 45}, d)
}

func TestValues_DraftErrors(t *testing.T) {
	tests := []struct {
		name   string
		values Values
	}{
		{"blank title", Values{Title: "  ", Priority: task.PriorityLow, Minutes: "10"}},
		{"non numeric minutes", Values{Title: "x", Priority: task.PriorityLow, Minutes: "ten"}},
		{"minutes too low", Values{Title: "x", Priority: task.PriorityLow, Minutes: "4"}},
		{"minutes too high", Values{Title: "x", Priority: task.PriorityLow, Minutes: "181"}},
		{"bad priority", Values{Title: "x", Priority: "urgent", Minutes: "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.values.Draft()
			assert.Error(t, err)
		})
	}
}

func TestValidateMinutes(t *testing.T) {
	assert.NoError(t, ValidateMinutes("5"))
	assert.NoError(t, ValidateMinutes("180"))
	assert.Error(t, ValidateMinutes(""))
	assert.Error(t, ValidateMinutes("0"))
}

func TestNew(t *testing.T) {
	v := FromDraft(task.Draft{Title: "prefilled", TimeAllocation: 25})
	form := New(v)
	require.NotNil(t, form)
	assert.Equal(t, "prefilled", v.Title, "form binds to the values it was given")
}
