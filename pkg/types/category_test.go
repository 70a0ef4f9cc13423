package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_OrderAndAdvancedLast(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 10)
	assert.Equal(t, CategorySystem, cats[0])
	assert.Equal(t, CategoryAdvanced, cats[len(cats)-1])

	// Returned slice is a copy; mutating it must not leak into the order.
	cats[0] = CategoryGPU
	assert.Equal(t, CategorySystem, Categories()[0])
}

func TestHardwareCategories_ExcludesAdvanced(t *testing.T) {
	for _, c := range HardwareCategories() {
		assert.NotEqual(t, CategoryAdvanced, c)
	}
	assert.Len(t, HardwareCategories(), len(Categories())-1)
}

func TestCategory_IsMultiInstance(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryDisk, true},
		{CategoryNetwork, true},
		{CategoryMonitor, true},
		{CategoryGPU, true},
		{CategorySystem, false},
		{CategoryBIOS, false},
		{CategoryChassis, false},
		{CategoryAdvanced, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.IsMultiInstance())
		})
	}
}

func TestCategory_IdentityKey(t *testing.T) {
	assert.Equal(t, "SerialNumber", CategoryDisk.IdentityKey())
	assert.Equal(t, "MACAddress", CategoryNetwork.IdentityKey())
	assert.Equal(t, "SerialNumber", CategoryMonitor.IdentityKey())
	assert.Equal(t, "GUID", CategoryGPU.IdentityKey())
	assert.Empty(t, CategoryBIOS.IdentityKey())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{"bios", CategoryBIOS, true},
		{"BIOS", CategoryBIOS, true},
		{"disk", CategoryDisk, true},
		{"Disk", CategoryDisk, true},
		{"advanced", CategoryAdvanced, true},
		{"floppy", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCategory(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Valid(t *testing.T) {
	assert.True(t, CategoryMonitor.Valid())
	assert.True(t, CategoryAdvanced.Valid())
	assert.False(t, Category("floppy").Valid())
}
