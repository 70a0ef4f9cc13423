package lockstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwdrift/hwdrift/pkg/types"
)

func lockSnapshot(fields ...types.Field) *types.Snapshot {
	return &types.Snapshot{
		ID:        "snap-1",
		Hostname:  "workstation-7",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Fields:    fields,
	}
}

func field(cat types.Category, key, value string) types.Field {
	return types.Field{Category: cat, Key: key, Value: value, Present: true}
}

func TestEvaluate_AllChecksAlwaysPresent(t *testing.T) {
	report := Evaluate(lockSnapshot())
	require.Len(t, report.Conclusions, 4)
	for _, name := range []string{CheckOEMLock, CheckSecureBoot, CheckTPM, CheckBIOSWriteProtect} {
		_, ok := report.Get(name)
		assert.True(t, ok, "missing conclusion for %s", name)
	}
}

func TestEvaluate_OEMLock(t *testing.T) {
	tests := []struct {
		name         string
		manufacturer string
		want         TriState
	}{
		{"dell locked", "Dell Inc.", True},
		{"hp locked", "HP", True},
		{"hewlett-packard locked", "Hewlett-Packard", True},
		{"lenovo locked", "LENOVO", True},
		{"asus unlocked", "ASUSTeK COMPUTER INC.", False},
		{"gigabyte unlocked", "Gigabyte Technology Co., Ltd.", False},
		{"unrecognized vendor", "Framework", False},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Evaluate(lockSnapshot(field(types.CategorySystem, "Manufacturer", tt.manufacturer)))
			c, ok := report.Get(CheckOEMLock)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Result)
		})
	}
}

func TestEvaluate_OEMLockFallsBackToBaseboard(t *testing.T) {
	snap := lockSnapshot(
		types.Field{Category: types.CategorySystem, Key: "Manufacturer", Present: false},
		field(types.CategoryBaseboard, "Manufacturer", "ASRock"),
	)
	c, ok := Evaluate(snap).Get(CheckOEMLock)
	require.True(t, ok)
	assert.Equal(t, False, c.Result)
}

func TestEvaluate_NoManufacturerIsUnknown(t *testing.T) {
	c, ok := Evaluate(lockSnapshot()).Get(CheckOEMLock)
	require.True(t, ok)
	assert.Equal(t, Unknown, c.Result)
	assert.NotEmpty(t, c.Reason)
}

func TestEvaluate_BoolChecks(t *testing.T) {
	tests := []struct {
		value string
		want  TriState
	}{
		{"Enabled", True},
		{"1", True},
		{"true", True},
		{"Disabled", False},
		{"0", False},
		{"off", False},
		{"maybe", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			report := Evaluate(lockSnapshot(field(types.CategoryBIOS, "SecureBoot", tt.value)))
			c, ok := report.Get(CheckSecureBoot)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Result)
		})
	}
}

func TestEvaluate_AbsentFieldIsUnknown(t *testing.T) {
	// SecureBoot collected but unretrievable is the same as never seen.
	snap := lockSnapshot(types.Field{Category: types.CategoryBIOS, Key: "SecureBoot", Present: false})
	c, ok := Evaluate(snap).Get(CheckSecureBoot)
	require.True(t, ok)
	assert.Equal(t, Unknown, c.Result)
}

func TestEvaluate_OverallLocked(t *testing.T) {
	tests := []struct {
		name   string
		fields []types.Field
		want   bool
	}{
		{
			"secure boot locks",
			[]types.Field{field(types.CategoryBIOS, "SecureBoot", "Enabled")},
			true,
		},
		{
			"dell oem locks",
			[]types.Field{field(types.CategorySystem, "Manufacturer", "Dell Inc.")},
			true,
		},
		{
			"tpm alone does not lock",
			[]types.Field{field(types.CategoryBIOS, "TPMEnabled", "Enabled")},
			false,
		},
		{
			"everything unknown",
			nil,
			false,
		},
		{
			"all checks false",
			[]types.Field{
				field(types.CategorySystem, "Manufacturer", "Framework"),
				field(types.CategoryBIOS, "SecureBoot", "Disabled"),
				field(types.CategoryBIOS, "TPMEnabled", "Disabled"),
				field(types.CategoryBIOS, "WriteProtect", "0"),
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Evaluate(lockSnapshot(tt.fields...))
			assert.Equal(t, tt.want, report.OverallLocked)
			if tt.want {
				assert.NotEmpty(t, report.LockReasons)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	snap := lockSnapshot(
		field(types.CategorySystem, "Manufacturer", "Lenovo"),
		field(types.CategoryBIOS, "SecureBoot", "Enabled"),
		field(types.CategoryBIOS, "TPMEnabled", "Enabled"),
	)
	first := Evaluate(snap)
	second := Evaluate(snap)
	assert.Equal(t, first, second)
}
