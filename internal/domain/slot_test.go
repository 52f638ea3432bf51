package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logoped-app/appointment-service/pkg/types"
)

func TestNewSlotCatalog(t *testing.T) {
	catalog, err := NewSlotCatalog("09:00", "18:00", 30)
	require.NoError(t, err)

	slots := catalog.Slots()
	assert.Equal(t, 18, catalog.Size())
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])

	// Слоты строго возрастают
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]))
	}
}

func TestNewSlotCatalog_LastSlotMustFit(t *testing.T) {
	// 09:00-10:15 с шагом 30 минут: слот 10:00 не помещается до закрытия
	catalog, err := NewSlotCatalog("09:00", "10:15", 30)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, catalog.Slots())
}

func TestNewSlotCatalog_Invalid(t *testing.T) {
	_, err := NewSlotCatalog("18:00", "09:00", 30)
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = NewSlotCatalog("09:00", "18:00", 0)
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = NewSlotCatalog("bad", "18:00", 30)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestSlotCatalog_Contains(t *testing.T) {
	catalog := MustDefaultSlotCatalog()

	assert.True(t, catalog.Contains("09:00"))
	assert.True(t, catalog.Contains("17:30"))
	assert.False(t, catalog.Contains("18:00"))
	assert.False(t, catalog.Contains("09:15"))
	assert.False(t, catalog.Contains("08:30"))
}

func TestSlotCatalog_SlotsReturnsCopy(t *testing.T) {
	catalog := MustDefaultSlotCatalog()

	slots := catalog.Slots()
	slots[0] = "00:00"

	assert.Equal(t, types.TimeString("09:00"), catalog.Slots()[0])
}
