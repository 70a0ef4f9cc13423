package inventory

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hwdrift/hwdrift/internal/hardware"
	"github.com/hwdrift/hwdrift/internal/logger"
	"github.com/hwdrift/hwdrift/pkg/types"
)

// Builder assembles a Snapshot from the hardware provider. Collection never
// fails as a whole: a provider error for one category degrades that
// category's fields, and the remaining categories are still collected.
type Builder struct {
	provider hardware.Provider
	log      logger.Logger
}

func NewBuilder(provider hardware.Provider, log logger.Logger) *Builder {
	if log == nil {
		log = logger.NewSimple()
	}
	return &Builder{provider: provider, log: log}
}

// Build queries the provider once per category and assembles the snapshot.
// The capture timestamp is set once, after all collection completes.
func (b *Builder) Build(ctx context.Context) *types.Snapshot {
	hostname, _ := os.Hostname()

	snap := &types.Snapshot{
		ID:       uuid.NewString(),
		Hostname: hostname,
		Fields:   []types.Field{},
	}

	for _, cat := range types.HardwareCategories() {
		instances, err := b.provider.Collect(ctx, cat)
		if err != nil {
			b.log.WithFields(map[string]interface{}{
				"category": string(cat),
				"error":    err.Error(),
			}).Warn("category collection degraded")
			snap.Fields = append(snap.Fields, degradedFields(cat, err)...)
			continue
		}
		for idx, inst := range instances {
			for _, raw := range inst.Fields {
				snap.Fields = append(snap.Fields, types.Field{
					Category: cat,
					Instance: idx,
					Key:      raw.Key,
					Value:    raw.Value,
					Present:  raw.Present,
					Err:      raw.Err,
				})
			}
		}
	}

	snap.Timestamp = time.Now().UTC()
	b.log.WithFields(map[string]interface{}{
		"fields":   snap.FieldCount(),
		"snapshot": snap.ID,
	}).Info("hardware inventory collected")
	return snap
}

// degradedFields produces absent placeholder fields for a category whose
// query failed outright, so the view keeps a stable shape. Multi-instance
// categories degrade to an empty instance sequence instead.
func degradedFields(cat types.Category, err error) []types.Field {
	if cat.IsMultiInstance() {
		return nil
	}
	var out []types.Field
	for _, key := range singletonKeys(cat) {
		out = append(out, types.Field{
			Category: cat,
			Instance: 0,
			Key:      key,
			Present:  false,
			Err:      err.Error(),
		})
	}
	return out
}

// singletonKeys lists the attributes every snapshot carries for a singleton
// category, present or not.
func singletonKeys(cat types.Category) []string {
	switch cat {
	case types.CategorySystem:
		return []string{"Manufacturer", "ProductName", "Version", "SerialNumber", "UUID", "Family", "SKU"}
	case types.CategoryBIOS:
		return []string{"Vendor", "Version", "ReleaseDate", "SecureBoot", "TPMEnabled", "WriteProtect"}
	case types.CategoryBaseboard:
		return []string{"Manufacturer", "ProductName", "Version", "SerialNumber", "AssetTag"}
	case types.CategoryProcessor:
		return []string{"Manufacturer", "Name", "ProcessorID", "SerialNumber", "PartNumber", "Socket", "CoreCount", "ThreadCount"}
	case types.CategoryChassis:
		return []string{"Manufacturer", "ChassisType", "Version", "SerialNumber", "AssetTag", "SKU"}
	}
	return nil
}
