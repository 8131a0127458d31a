// Package inspection holds the checklist rules: defect-to-task generation,
// the one-inspection-per-week duplicate guard and the carried-defect
// resolution requirement.
package inspection

import (
	"fmt"
	"sort"
	"strings"

	"fleetworks/internal/models"
)

// ItemKey identifies a checklist item across days and across weeks.
// Matching is by item number plus description text, so renaming an item
// breaks the link to its open task.
type ItemKey struct {
	No          int
	Description string
}

func keyOf(it models.InspectionItem) ItemKey {
	return ItemKey{No: it.ItemNo, Description: strings.TrimSpace(it.Description)}
}

var dayNames = [8]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayRangeLabel renders a set of day numbers (1 = Monday) as a short
// human-readable label: "Mon" for one day, "Mon-Wed" for a contiguous run,
// "Mon, Thu" otherwise.
func DayRangeLabel(days []int) string {
	uniq := map[int]bool{}
	var ds []int
	for _, d := range days {
		if d < 1 || d > 7 || uniq[d] {
			continue
		}
		uniq[d] = true
		ds = append(ds, d)
	}
	if len(ds) == 0 {
		return ""
	}
	sort.Ints(ds)

	if len(ds) == 1 {
		return dayNames[ds[0]]
	}
	if ds[len(ds)-1]-ds[0] == len(ds)-1 {
		return dayNames[ds[0]] + "-" + dayNames[ds[len(ds)-1]]
	}

	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = dayNames[d]
	}
	return strings.Join(names, ", ")
}

// GenerateTasks derives pending workshop tasks from a submitted
// inspection's failed items. Items are grouped by (item number,
// description) so a defect reported on several days becomes one task; the
// first non-empty comment in the group becomes part of the description.
func GenerateTasks(insp *models.Inspection, vehicleReg string, items []models.InspectionItem) []models.WorkshopTask {
	type group struct {
		key     ItemKey
		days    []int
		comment string
	}

	var order []ItemKey
	groups := map[ItemKey]*group{}

	for _, it := range items {
		if it.Status != models.ItemAttention {
			continue
		}
		k := keyOf(it)
		g, ok := groups[k]
		if !ok {
			g = &group{key: k}
			groups[k] = g
			order = append(order, k)
		}
		g.days = append(g.days, it.Day)
		if g.comment == "" {
			g.comment = strings.TrimSpace(it.Comment)
		}
	}

	tasks := make([]models.WorkshopTask, 0, len(order))
	for _, k := range order {
		g := groups[k]

		desc := fmt.Sprintf("Defect reported (%s) on the weekly inspection.", DayRangeLabel(g.days))
		if g.comment != "" {
			desc += " " + g.comment
		}

		inspID := insp.ID
		tasks = append(tasks, models.WorkshopTask{
			Source:          models.SourceInspection,
			VehicleID:       insp.VehicleID,
			Title:           fmt.Sprintf("%s - %s", vehicleReg, g.key.Description),
			Description:     desc,
			Status:          models.TaskPending,
			InspectionID:    &inspID,
			ItemNo:          g.key.No,
			ItemDescription: g.key.Description,
			CreatedByID:     insp.EmployeeID,
		})
	}
	return tasks
}
