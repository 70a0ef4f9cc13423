package types

// Category identifies one group of hardware identifiers.
type Category string

const (
	CategorySystem    Category = "system"
	CategoryBIOS      Category = "bios"
	CategoryBaseboard Category = "baseboard"
	CategoryDisk      Category = "disk"
	CategoryProcessor Category = "processor"
	CategoryChassis   Category = "chassis"
	CategoryNetwork   Category = "network"
	CategoryMonitor   Category = "monitor"
	CategoryGPU       Category = "gpu"

	// CategoryAdvanced is the synthetic tab for derived conclusions
	// (baseline comparison and lock-state). It never holds Fields.
	CategoryAdvanced Category = "advanced"
)

// categoryOrder is the fixed cyclic order used for collection, export
// grouping, and tab navigation.
var categoryOrder = []Category{
	CategorySystem,
	CategoryBIOS,
	CategoryBaseboard,
	CategoryDisk,
	CategoryProcessor,
	CategoryChassis,
	CategoryNetwork,
	CategoryMonitor,
	CategoryGPU,
	CategoryAdvanced,
}

// multiInstance marks categories whose hardware can occur more than once.
var multiInstance = map[Category]bool{
	CategoryDisk:    true,
	CategoryNetwork: true,
	CategoryMonitor: true,
	CategoryGPU:     true,
}

// identityKeys maps each multi-instance category to the attribute used to
// match instances across snapshots when both sides report it.
var identityKeys = map[Category]string{
	CategoryDisk:    "SerialNumber",
	CategoryNetwork: "MACAddress",
	CategoryMonitor: "SerialNumber",
	CategoryGPU:     "GUID",
}

// Categories returns all categories in their fixed cyclic order,
// Advanced last.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// HardwareCategories returns the categories that carry collected Fields,
// i.e. everything except Advanced.
func HardwareCategories() []Category {
	out := make([]Category, 0, len(categoryOrder)-1)
	for _, c := range categoryOrder {
		if c != CategoryAdvanced {
			out = append(out, c)
		}
	}
	return out
}

// IsMultiInstance reports whether the category is represented as an ordered
// sequence of instances rather than a singleton.
func (c Category) IsMultiInstance() bool {
	return multiInstance[c]
}

// IdentityKey returns the attribute key that identifies an instance of this
// category across snapshots, or "" when the category has none.
func (c Category) IdentityKey() string {
	return identityKeys[c]
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable tab label for the category.
func (c Category) Label() string {
	switch c {
	case CategorySystem:
		return "System"
	case CategoryBIOS:
		return "BIOS"
	case CategoryBaseboard:
		return "Baseboard"
	case CategoryDisk:
		return "Disk"
	case CategoryProcessor:
		return "Processor"
	case CategoryChassis:
		return "Chassis"
	case CategoryNetwork:
		return "Network"
	case CategoryMonitor:
		return "Monitor"
	case CategoryGPU:
		return "GPU"
	case CategoryAdvanced:
		return "Advanced"
	}
	return string(c)
}

// ParseCategory resolves a category from its wire or label form.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categoryOrder {
		if string(c) == s || c.Label() == s {
			return c, true
		}
	}
	return "", false
}
