package inspection

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetworks/internal/models"
)

var (
	ErrWeekEndingNotSunday = errors.New("week-ending date must be a Sunday")
	ErrInvalidMileage      = errors.New("mileage must be a positive number")
)

// DuplicateError blocks a save when a (vehicle, week-ending) inspection
// already exists; it surfaces the existing record's status.
type DuplicateError struct {
	InspectionID uint
	Status       models.InspectionStatus
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("an inspection for this vehicle and week already exists (status: %s)", e.Status)
}

// CheckDuplicate returns a DuplicateError when existing is a prior
// inspection for the same (vehicle, week-ending). A draft being continued
// is not a duplicate of itself.
func CheckDuplicate(existing *models.Inspection, continuingID uint) error {
	if existing == nil || existing.ID == 0 {
		return nil
	}
	if continuingID != 0 && existing.ID == continuingID {
		return nil
	}
	return &DuplicateError{InspectionID: existing.ID, Status: existing.Status}
}

func ValidateWeekEnding(d time.Time) error {
	if d.Weekday() != time.Sunday {
		return ErrWeekEndingNotSunday
	}
	return nil
}

func ValidateMileage(mileage int64) error {
	if mileage <= 0 {
		return ErrInvalidMileage
	}
	return nil
}

// CarriedDefects extracts the items that were marked attention on a prior
// inspection's checklist, keyed for matching against the new week.
func CarriedDefects(prevItems []models.InspectionItem) map[ItemKey]bool {
	defects := map[ItemKey]bool{}
	for _, it := range prevItems {
		if it.Status == models.ItemAttention {
			defects[keyOf(it)] = true
		}
	}
	return defects
}

// ValidateItems enforces the per-item rules: attention requires a comment,
// and marking an item ok that was a defect on the most recent prior
// submitted inspection requires a resolution comment.
func ValidateItems(items []models.InspectionItem, carried map[ItemKey]bool) error {
	for _, it := range items {
		if it.Day < 1 || it.Day > 7 {
			return fmt.Errorf("item %d: day %d is out of range", it.ItemNo, it.Day)
		}
		switch it.Status {
		case models.ItemAttention:
			if strings.TrimSpace(it.Comment) == "" {
				return fmt.Errorf("item %d (%s): a comment is required when marked attention", it.ItemNo, it.Description)
			}
		case models.ItemOK:
			if carried[keyOf(it)] && strings.TrimSpace(it.ResolutionComment) == "" {
				return fmt.Errorf("item %d (%s): a resolution comment is required to clear last week's defect", it.ItemNo, it.Description)
			}
		default:
			return fmt.Errorf("item %d: unknown status %q", it.ItemNo, it.Status)
		}
	}
	return nil
}

// Resolutions collects the resolution comments of items that clear a
// carried defect, keyed for matching back to the open workshop task.
func Resolutions(items []models.InspectionItem, carried map[ItemKey]bool) map[ItemKey]string {
	out := map[ItemKey]string{}
	for _, it := range items {
		if it.Status != models.ItemOK {
			continue
		}
		k := keyOf(it)
		if carried[k] && strings.TrimSpace(it.ResolutionComment) != "" {
			if _, ok := out[k]; !ok {
				out[k] = strings.TrimSpace(it.ResolutionComment)
			}
		}
	}
	return out
}
