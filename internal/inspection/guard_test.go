package inspection

import (
	"testing"
	"time"

	"fleetworks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWeekEnding(t *testing.T) {
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateWeekEnding(sunday))

	monday := sunday.AddDate(0, 0, 1)
	assert.ErrorIs(t, ValidateWeekEnding(monday), ErrWeekEndingNotSunday)
}

func TestValidateMileage(t *testing.T) {
	assert.NoError(t, ValidateMileage(120345))
	assert.ErrorIs(t, ValidateMileage(0), ErrInvalidMileage)
	assert.ErrorIs(t, ValidateMileage(-5), ErrInvalidMileage)
}

func TestCheckDuplicate(t *testing.T) {
	assert.NoError(t, CheckDuplicate(nil, 0))
	assert.NoError(t, CheckDuplicate(&models.Inspection{}, 0), "zero ID means no existing row")

	existing := &models.Inspection{Status: models.InspectionSubmitted}
	existing.ID = 31

	err := CheckDuplicate(existing, 0)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, uint(31), dup.InspectionID)
	assert.Equal(t, models.InspectionSubmitted, dup.Status)
	assert.Contains(t, dup.Error(), "submitted")

	// continuing one's own draft is not a duplicate
	assert.NoError(t, CheckDuplicate(existing, 31))
	assert.Error(t, CheckDuplicate(existing, 99))
}

func TestValidateItems_AttentionRequiresComment(t *testing.T) {
	items := []models.InspectionItem{
		item(1, 3, "Brakes", models.ItemAttention, ""),
	}
	err := ValidateItems(items, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comment is required")

	items[0].Comment = "soft pedal"
	assert.NoError(t, ValidateItems(items, nil))
}

func TestValidateItems_CarriedDefectNeedsResolution(t *testing.T) {
	prev := []models.InspectionItem{
		item(2, 3, "Brakes", models.ItemAttention, "soft pedal"),
		item(2, 5, "Horn", models.ItemOK, ""),
	}
	carried := CarriedDefects(prev)
	require.Len(t, carried, 1)
	assert.True(t, carried[ItemKey{No: 3, Description: "Brakes"}])

	// clearing last week's defect without an explanation is rejected and
	// the item keeps whatever status the caller set
	items := []models.InspectionItem{
		item(1, 3, "Brakes", models.ItemOK, ""),
	}
	err := ValidateItems(items, carried)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolution comment")
	assert.Equal(t, models.ItemOK, items[0].Status)

	items[0].ResolutionComment = "pads replaced by workshop"
	assert.NoError(t, ValidateItems(items, carried))

	// an item that was fine last week needs no resolution
	assert.NoError(t, ValidateItems([]models.InspectionItem{
		item(1, 5, "Horn", models.ItemOK, ""),
	}, carried))
}

func TestValidateItems_DayRange(t *testing.T) {
	err := ValidateItems([]models.InspectionItem{item(0, 1, "Tyres", models.ItemOK, "")}, nil)
	assert.Error(t, err)
	err = ValidateItems([]models.InspectionItem{item(8, 1, "Tyres", models.ItemOK, "")}, nil)
	assert.Error(t, err)
}

func TestResolutions(t *testing.T) {
	carried := map[ItemKey]bool{
		{No: 3, Description: "Brakes"}: true,
	}

	items := []models.InspectionItem{
		{Day: 1, ItemNo: 3, Description: "Brakes", Status: models.ItemOK, ResolutionComment: "pads replaced"},
		{Day: 2, ItemNo: 3, Description: "Brakes", Status: models.ItemOK, ResolutionComment: "second comment ignored"},
		{Day: 1, ItemNo: 5, Description: "Horn", Status: models.ItemOK, ResolutionComment: "not carried, ignored"},
	}

	res := Resolutions(items, carried)
	require.Len(t, res, 1)
	assert.Equal(t, "pads replaced", res[ItemKey{No: 3, Description: "Brakes"}])
}
