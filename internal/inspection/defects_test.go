package inspection

import (
	"testing"

	"fleetworks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(day, no int, desc string, status models.ItemStatus, comment string) models.InspectionItem {
	return models.InspectionItem{
		Day:         day,
		ItemNo:      no,
		Description: desc,
		Status:      status,
		Comment:     comment,
	}
}

func TestDayRangeLabel(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want string
	}{
		{"single day", []int{1}, "Mon"},
		{"contiguous run", []int{1, 2, 3}, "Mon-Wed"},
		{"contiguous unsorted", []int{3, 1, 2}, "Mon-Wed"},
		{"full week", []int{1, 2, 3, 4, 5, 6, 7}, "Mon-Sun"},
		{"gap", []int{1, 4}, "Mon, Thu"},
		{"duplicates collapse", []int{2, 2, 3}, "Tue-Wed"},
		{"sunday only", []int{7}, "Sun"},
		{"empty", nil, ""},
		{"out of range ignored", []int{0, 8, 5}, "Fri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayRangeLabel(tt.days))
		})
	}
}

func TestGenerateTasks_GroupsDaysIntoOneTask(t *testing.T) {
	insp := &models.Inspection{VehicleID: 5, EmployeeID: 9}
	insp.ID = 11

	items := []models.InspectionItem{
		item(1, 3, "Brakes", models.ItemAttention, ""),
		item(2, 3, "Brakes", models.ItemAttention, "spongy pedal"),
		item(3, 3, "Brakes", models.ItemAttention, "worse today"),
	}

	tasks := GenerateTasks(insp, "AB12 CDE", items)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, models.SourceInspection, task.Source)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, uint(5), task.VehicleID)
	assert.Equal(t, "AB12 CDE - Brakes", task.Title)
	assert.Contains(t, task.Description, "Mon-Wed")
	assert.Contains(t, task.Description, "spongy pedal", "first non-empty comment wins")
	assert.NotContains(t, task.Description, "worse today")
	assert.Equal(t, 3, task.ItemNo)
	assert.Equal(t, "Brakes", task.ItemDescription)
	require.NotNil(t, task.InspectionID)
	assert.Equal(t, uint(11), *task.InspectionID)
	assert.Equal(t, uint(9), task.CreatedByID)
}

func TestGenerateTasks_DistinctItemsDistinctTasks(t *testing.T) {
	insp := &models.Inspection{VehicleID: 5, EmployeeID: 9}
	insp.ID = 11

	items := []models.InspectionItem{
		item(1, 3, "Brakes", models.ItemAttention, "pedal"),
		item(1, 7, "Lights", models.ItemAttention, "nearside dead"),
		item(2, 3, "Brakes", models.ItemOK, ""),
		// same number, different description: separate defect
		item(4, 3, "Brake lines", models.ItemAttention, "corroded"),
	}

	tasks := GenerateTasks(insp, "AB12 CDE", items)
	require.Len(t, tasks, 3)
	assert.Equal(t, "AB12 CDE - Brakes", tasks[0].Title)
	assert.Equal(t, "AB12 CDE - Lights", tasks[1].Title)
	assert.Equal(t, "AB12 CDE - Brake lines", tasks[2].Title)
	assert.Contains(t, tasks[0].Description, "Mon")
}

func TestGenerateTasks_NoDefectsNoTasks(t *testing.T) {
	insp := &models.Inspection{VehicleID: 5}
	items := []models.InspectionItem{
		item(1, 1, "Tyres", models.ItemOK, ""),
		item(2, 2, "Mirrors", models.ItemOK, ""),
	}
	assert.Empty(t, GenerateTasks(insp, "AB12 CDE", items))
}
