package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwdrift/hwdrift/pkg/types"
)

func exportSnapshot() *types.Snapshot {
	return &types.Snapshot{
		ID:        "snap-1",
		Hostname:  "workstation-7",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Fields: []types.Field{
			{Category: types.CategorySystem, Key: "Manufacturer", Value: "Dell Inc.", Present: true},
			{Category: types.CategorySystem, Key: "SerialNumber", Value: "ABC123", Present: true},
			{Category: types.CategoryBIOS, Key: "Vendor", Value: "Dell Inc.", Present: true},
			{Category: types.CategoryBIOS, Key: "SecureBoot", Present: false, Err: "registry key not found"},
			{Category: types.CategoryDisk, Instance: 0, Key: "SerialNumber", Value: "S1XF123", Present: true},
			{Category: types.CategoryDisk, Instance: 0, Key: "Model", Value: "Samsung SSD 990", Present: true},
			{Category: types.CategoryDisk, Instance: 1, Key: "SerialNumber", Value: "S1XF456", Present: true},
		},
	}
}

func TestEncode_Layout(t *testing.T) {
	data := Encode(exportSnapshot())

	lines := strings.Split(data, "\n")
	require.Equal(t, "# hwdrift baseline v1", lines[0])
	assert.Equal(t, "# generated: 2025-06-01T12:00:00Z", lines[1])
	assert.Equal(t, "# hostname: workstation-7", lines[2])

	// Sections follow category order; keys are sorted within instances.
	sysIdx := strings.Index(data, "[System]")
	biosIdx := strings.Index(data, "[BIOS]")
	disk0Idx := strings.Index(data, "[Disk/0]")
	disk1Idx := strings.Index(data, "[Disk/1]")
	require.True(t, sysIdx >= 0 && biosIdx >= 0 && disk0Idx >= 0 && disk1Idx >= 0)
	assert.Less(t, sysIdx, biosIdx)
	assert.Less(t, biosIdx, disk0Idx)
	assert.Less(t, disk0Idx, disk1Idx)

	disk0 := data[disk0Idx:disk1Idx]
	assert.Less(t, strings.Index(disk0, "Model ="), strings.Index(disk0, "SerialNumber ="))

	// Absent fields never reach the file.
	assert.NotContains(t, data, "SecureBoot")
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serials_export.txt")
	snap := exportSnapshot()

	require.NoError(t, Write(snap, path))

	rec, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, snap.Timestamp, rec.GeneratedAt)
	assert.Equal(t, "workstation-7", rec.Hostname)

	v, ok := rec.Lookup(types.FieldKey{Category: types.CategorySystem, Key: "SerialNumber"})
	require.True(t, ok)
	assert.Equal(t, "ABC123", v)

	v, ok = rec.Lookup(types.FieldKey{Category: types.CategoryDisk, Instance: 1, Key: "SerialNumber"})
	require.True(t, ok)
	assert.Equal(t, "S1XF456", v)

	assert.Equal(t, 2, rec.InstanceCount(types.CategoryDisk))

	// The absent field was omitted, so it must not resurface on read.
	_, ok = rec.Lookup(types.FieldKey{Category: types.CategoryBIOS, Key: "SecureBoot"})
	assert.False(t, ok)
}

func TestWriteRead_PreservesValueWhitespace(t *testing.T) {
	// WMI routinely space-pads serials. Padding is part of the value, and
	// a baseline that loses it would diff as Changed against identical
	// hardware forever.
	path := filepath.Join(t.TempDir(), "serials_export.txt")
	snap := &types.Snapshot{
		ID:        "snap-1",
		Hostname:  "workstation-7",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Fields: []types.Field{
			{Category: types.CategoryChassis, Key: "SerialNumber", Value: "  ABC123  ", Present: true},
			{Category: types.CategorySystem, Key: "SKU", Value: " ", Present: true},
			{Category: types.CategoryBaseboard, Key: "AssetTag", Value: "", Present: true},
		},
	}
	require.NoError(t, Write(snap, path))

	rec, err := Read(path)
	require.NoError(t, err)

	v, ok := rec.Lookup(types.FieldKey{Category: types.CategoryChassis, Key: "SerialNumber"})
	require.True(t, ok)
	assert.Equal(t, "  ABC123  ", v)

	v, ok = rec.Lookup(types.FieldKey{Category: types.CategorySystem, Key: "SKU"})
	require.True(t, ok)
	assert.Equal(t, " ", v)

	v, ok = rec.Lookup(types.FieldKey{Category: types.CategoryBaseboard, Key: "AssetTag"})
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestWrite_RejectsLineBreakValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serials_export.txt")
	snap := exportSnapshot()
	snap.Fields[0].Value = "Dell\nInc."

	err := Write(snap, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line break")

	// The failed export must not leave a baseline behind.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWrite_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serials_export.txt")
	snap := exportSnapshot()
	require.NoError(t, Write(snap, path))

	snap.Fields[1].Value = "XYZ999"
	require.NoError(t, Write(snap, path))

	rec, err := Read(path)
	require.NoError(t, err)
	v, _ := rec.Lookup(types.FieldKey{Category: types.CategorySystem, Key: "SerialNumber"})
	assert.Equal(t, "XYZ999", v)

	// No temp residue left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRead_NoBaseline(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "never_exported.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoBaseline)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"missing header", "[System]\nSerialNumber = ABC123\n"},
		{"wrong header", "# some other file\n"},
		{"unterminated section", "# hwdrift baseline v1\n[System\n"},
		{"field outside section", "# hwdrift baseline v1\nSerialNumber = ABC123\n"},
		{"empty key", "# hwdrift baseline v1\n[System]\n = ABC123\n"},
		{"unparseable line", "# hwdrift baseline v1\n[System]\njust some words\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecode_UnknownSectionSkipped(t *testing.T) {
	rec, err := Decode("# hwdrift baseline v1\n[Floppy]\nSerialNumber = F123\n\n[System]\nSerialNumber = ABC123\n")
	require.NoError(t, err)
	require.Len(t, rec.Fields, 1)
	assert.Equal(t, types.CategorySystem, rec.Fields[0].Category)
}

func TestDecode_ValueMayContainEquals(t *testing.T) {
	rec, err := Decode("# hwdrift baseline v1\n[System]\nSKU = A=B=C\n")
	require.NoError(t, err)
	v, ok := rec.Lookup(types.FieldKey{Category: types.CategorySystem, Key: "SKU"})
	require.True(t, ok)
	assert.Equal(t, "A=B=C", v)
}
