//go:build windows

package hardware

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yusufpapurcu/wmi"

	"github.com/hwdrift/hwdrift/pkg/types"
)

// WMIProvider queries the Windows management interface (WMI plus a handful
// of registry keys) for hardware identifiers.
type WMIProvider struct{}

func NewWMIProvider() *WMIProvider {
	return &WMIProvider{}
}

// Ping runs a trivial WMI query to confirm the management interface is
// reachable. Total unavailability here is the only fatal startup condition.
func (p *WMIProvider) Ping(ctx context.Context) error {
	var rows []win32OperatingSystem
	if err := wmi.Query("SELECT Caption FROM Win32_OperatingSystem", &rows); err != nil {
		return fmt.Errorf("wmi unreachable: %w", err)
	}
	return nil
}

func (p *WMIProvider) Collect(ctx context.Context, cat types.Category) ([]Instance, error) {
	switch cat {
	case types.CategorySystem:
		return p.collectSystem()
	case types.CategoryBIOS:
		return p.collectBIOS()
	case types.CategoryBaseboard:
		return p.collectBaseboard()
	case types.CategoryDisk:
		return p.collectDisks()
	case types.CategoryProcessor:
		return p.collectProcessor()
	case types.CategoryChassis:
		return p.collectChassis()
	case types.CategoryNetwork:
		return p.collectNetwork()
	case types.CategoryMonitor:
		return p.collectMonitors()
	case types.CategoryGPU:
		return p.collectGPUs()
	}
	return nil, fmt.Errorf("unknown category %q", cat)
}

// Nullable WMI properties are mapped to pointers so a missing value is
// distinguishable from an empty string.

type win32OperatingSystem struct {
	Caption string
}

type win32ComputerSystemProduct struct {
	Vendor            *string
	Name              *string
	Version           *string
	IdentifyingNumber *string
	UUID              *string
	SKUNumber         *string
}

type win32ComputerSystem struct {
	Manufacturer    *string
	Model           *string
	SystemFamily    *string
	SystemSKUNumber *string
}

func (p *WMIProvider) collectSystem() ([]Instance, error) {
	var products []win32ComputerSystemProduct
	err := wmi.Query("SELECT Vendor, Name, Version, IdentifyingNumber, UUID, SKUNumber FROM Win32_ComputerSystemProduct", &products)
	if err != nil {
		return nil, fmt.Errorf("Win32_ComputerSystemProduct: %w", err)
	}

	var systems []win32ComputerSystem
	// Family and SKU live on Win32_ComputerSystem; a failure here only
	// degrades those two fields.
	csErr := wmi.Query("SELECT Manufacturer, Model, SystemFamily, SystemSKUNumber FROM Win32_ComputerSystem", &systems)

	var prod win32ComputerSystemProduct
	if len(products) > 0 {
		prod = products[0]
	}

	inst := Instance{Fields: []RawField{
		optional("Manufacturer", prod.Vendor),
		optional("ProductName", prod.Name),
		optional("Version", prod.Version),
		optional("SerialNumber", prod.IdentifyingNumber),
		optional("UUID", prod.UUID),
	}}
	if csErr == nil && len(systems) > 0 {
		inst.Fields = append(inst.Fields,
			optional("Family", systems[0].SystemFamily),
			optional("SKU", firstPresent(prod.SKUNumber, systems[0].SystemSKUNumber)),
		)
	} else {
		reason := "not reported"
		if csErr != nil {
			reason = csErr.Error()
		}
		inst.Fields = append(inst.Fields,
			absent("Family", reason),
			optional("SKU", prod.SKUNumber),
		)
	}
	return []Instance{inst}, nil
}

type win32BIOS struct {
	Manufacturer      *string
	SMBIOSBIOSVersion *string
	ReleaseDate       *string
}

func (p *WMIProvider) collectBIOS() ([]Instance, error) {
	var rows []win32BIOS
	if err := wmi.Query("SELECT Manufacturer, SMBIOSBIOSVersion, ReleaseDate FROM Win32_BIOS", &rows); err != nil {
		return nil, fmt.Errorf("Win32_BIOS: %w", err)
	}

	var b win32BIOS
	if len(rows) > 0 {
		b = rows[0]
	}

	inst := Instance{Fields: []RawField{
		optional("Vendor", b.Manufacturer),
		optional("Version", b.SMBIOSBIOSVersion),
		optional("ReleaseDate", b.ReleaseDate),
	}}

	// Firmware restriction signals come from the registry, not WMI. Each
	// read degrades independently.
	inst.Fields = append(inst.Fields,
		readSecureBoot(),
		readTPMEnabled(),
		readBIOSWriteProtect(),
	)
	return []Instance{inst}, nil
}

type win32BaseBoard struct {
	Manufacturer *string
	Product      *string
	Version      *string
	SerialNumber *string
	Tag          *string
}

func (p *WMIProvider) collectBaseboard() ([]Instance, error) {
	var rows []win32BaseBoard
	if err := wmi.Query("SELECT Manufacturer, Product, Version, SerialNumber, Tag FROM Win32_BaseBoard", &rows); err != nil {
		return nil, fmt.Errorf("Win32_BaseBoard: %w", err)
	}

	var b win32BaseBoard
	if len(rows) > 0 {
		b = rows[0]
	}
	return []Instance{{Fields: []RawField{
		optional("Manufacturer", b.Manufacturer),
		optional("ProductName", b.Product),
		optional("Version", b.Version),
		optional("SerialNumber", b.SerialNumber),
		optional("AssetTag", b.Tag),
	}}}, nil
}

type win32DiskDrive struct {
	Model            *string
	SerialNumber     *string
	InterfaceType    *string
	FirmwareRevision *string
	PNPDeviceID      *string
}

func (p *WMIProvider) collectDisks() ([]Instance, error) {
	var rows []win32DiskDrive
	q := "SELECT Model, SerialNumber, InterfaceType, FirmwareRevision, PNPDeviceID FROM Win32_DiskDrive"
	if err := wmi.Query(q, &rows); err != nil {
		return nil, fmt.Errorf("Win32_DiskDrive: %w", err)
	}

	out := make([]Instance, 0, len(rows))
	for _, d := range rows {
		serial := d.SerialNumber
		if serial != nil {
			trimmed := strings.TrimSpace(*serial)
			serial = &trimmed
		}
		out = append(out, Instance{Fields: []RawField{
			optional("Model", d.Model),
			optional("SerialNumber", serial),
			optional("InterfaceType", d.InterfaceType),
			optional("FirmwareRevision", d.FirmwareRevision),
			optional("PNPDeviceID", d.PNPDeviceID),
		}})
	}
	return out, nil
}

type win32Processor struct {
	Manufacturer              *string
	Name                      *string
	ProcessorId               *string
	SerialNumber              *string
	PartNumber                *string
	SocketDesignation         *string
	NumberOfCores             *uint32
	NumberOfLogicalProcessors *uint32
}

func (p *WMIProvider) collectProcessor() ([]Instance, error) {
	var rows []win32Processor
	q := "SELECT Manufacturer, Name, ProcessorId, SerialNumber, PartNumber, SocketDesignation, NumberOfCores, NumberOfLogicalProcessors FROM Win32_Processor"
	if err := wmi.Query(q, &rows); err != nil {
		return nil, fmt.Errorf("Win32_Processor: %w", err)
	}

	var c win32Processor
	if len(rows) > 0 {
		c = rows[0]
	}
	return []Instance{{Fields: []RawField{
		optional("Manufacturer", c.Manufacturer),
		optional("Name", c.Name),
		optional("ProcessorID", c.ProcessorId),
		optional("SerialNumber", c.SerialNumber),
		optional("PartNumber", c.PartNumber),
		optional("Socket", c.SocketDesignation),
		optionalUint32("CoreCount", c.NumberOfCores),
		optionalUint32("ThreadCount", c.NumberOfLogicalProcessors),
	}}}, nil
}

type win32SystemEnclosure struct {
	Manufacturer   *string
	ChassisTypes   []uint16
	Version        *string
	SerialNumber   *string
	SMBIOSAssetTag *string
	SKU            *string
}

func (p *WMIProvider) collectChassis() ([]Instance, error) {
	var rows []win32SystemEnclosure
	q := "SELECT Manufacturer, ChassisTypes, Version, SerialNumber, SMBIOSAssetTag, SKU FROM Win32_SystemEnclosure"
	if err := wmi.Query(q, &rows); err != nil {
		return nil, fmt.Errorf("Win32_SystemEnclosure: %w", err)
	}

	var e win32SystemEnclosure
	if len(rows) > 0 {
		e = rows[0]
	}

	chassisType := absent("ChassisType", "not reported")
	if len(e.ChassisTypes) > 0 {
		chassisType = value("ChassisType", chassisTypeName(e.ChassisTypes[0]))
	}
	return []Instance{{Fields: []RawField{
		optional("Manufacturer", e.Manufacturer),
		chassisType,
		optional("Version", e.Version),
		optional("SerialNumber", e.SerialNumber),
		optional("AssetTag", e.SMBIOSAssetTag),
		optional("SKU", e.SKU),
	}}}, nil
}

type win32NetworkAdapter struct {
	Name            *string
	MACAddress      *string
	AdapterType     *string
	PhysicalAdapter bool
}

func (p *WMIProvider) collectNetwork() ([]Instance, error) {
	var rows []win32NetworkAdapter
	q := "SELECT Name, MACAddress, AdapterType, PhysicalAdapter FROM Win32_NetworkAdapter WHERE PhysicalAdapter = TRUE"
	if err := wmi.Query(q, &rows); err != nil {
		return nil, fmt.Errorf("Win32_NetworkAdapter: %w", err)
	}

	out := make([]Instance, 0, len(rows))
	for _, a := range rows {
		if a.MACAddress == nil {
			// Adapters without a MAC (tunnels, filters) are noise for
			// identifier tracking.
			continue
		}
		out = append(out, Instance{Fields: []RawField{
			optional("Name", a.Name),
			optional("MACAddress", a.MACAddress),
			optional("AdapterType", a.AdapterType),
		}})
	}
	return out, nil
}

type wmiMonitorID struct {
	ManufacturerName []uint16
	ProductCodeID    []uint16
	SerialNumberID   []uint16
	UserFriendlyName []uint16
}

func (p *WMIProvider) collectMonitors() ([]Instance, error) {
	var rows []wmiMonitorID
	q := "SELECT ManufacturerName, ProductCodeID, SerialNumberID, UserFriendlyName FROM WmiMonitorID"
	if err := wmi.QueryNamespace(q, &rows, `root\wmi`); err != nil {
		return nil, fmt.Errorf("WmiMonitorID: %w", err)
	}

	out := make([]Instance, 0, len(rows))
	for _, m := range rows {
		out = append(out, Instance{Fields: []RawField{
			utf16Field("DisplayName", m.UserFriendlyName),
			utf16Field("Manufacturer", m.ManufacturerName),
			utf16Field("Model", m.ProductCodeID),
			utf16Field("SerialNumber", m.SerialNumberID),
		}})
	}
	return out, nil
}

type win32VideoController struct {
	Name                 *string
	AdapterCompatibility *string
	PNPDeviceID          *string
	DriverVersion        *string
	AdapterRAM           *uint64
}

func (p *WMIProvider) collectGPUs() ([]Instance, error) {
	var rows []win32VideoController
	q := "SELECT Name, AdapterCompatibility, PNPDeviceID, DriverVersion, AdapterRAM FROM Win32_VideoController"
	if err := wmi.Query(q, &rows); err != nil {
		return nil, fmt.Errorf("Win32_VideoController: %w", err)
	}

	out := make([]Instance, 0, len(rows))
	for _, g := range rows {
		guid := absent("GUID", "no PNP device path")
		pci := absent("PCIDevice", "no PNP device path")
		if g.PNPDeviceID != nil {
			// PNPDeviceID is PCI\VEN_xxxx&DEV_xxxx...\<instance GUID-ish id>.
			pci = value("PCIDevice", *g.PNPDeviceID)
			if idx := strings.LastIndex(*g.PNPDeviceID, `\`); idx >= 0 && idx+1 < len(*g.PNPDeviceID) {
				guid = value("GUID", (*g.PNPDeviceID)[idx+1:])
			}
		}
		out = append(out, Instance{Fields: []RawField{
			optional("Name", g.Name),
			optional("Vendor", g.AdapterCompatibility),
			guid,
			pci,
			optional("DriverVersion", g.DriverVersion),
			optionalUint64("VRAM", g.AdapterRAM),
		}})
	}
	return out, nil
}

func optionalUint32(key string, v *uint32) RawField {
	if v == nil {
		return absent(key, "not reported")
	}
	return value(key, strconv.FormatUint(uint64(*v), 10))
}

func optionalUint64(key string, v *uint64) RawField {
	if v == nil {
		return absent(key, "not reported")
	}
	return value(key, strconv.FormatUint(*v, 10))
}

func firstPresent(vals ...*string) *string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

// utf16Field decodes the uint16-array strings WmiMonitorID reports.
func utf16Field(key string, codes []uint16) RawField {
	if len(codes) == 0 {
		return absent(key, "not reported")
	}
	var sb strings.Builder
	for _, c := range codes {
		if c == 0 {
			break
		}
		sb.WriteRune(rune(c))
	}
	return value(key, sb.String())
}

// chassisTypeName maps SMBIOS enclosure type codes to names. Unknown codes
// keep their numeric form so nothing is lost.
func chassisTypeName(code uint16) string {
	names := map[uint16]string{
		3:  "Desktop",
		4:  "Low Profile Desktop",
		6:  "Mini Tower",
		7:  "Tower",
		8:  "Portable",
		9:  "Laptop",
		10: "Notebook",
		13: "All in One",
		14: "Sub Notebook",
		23: "Rack Mount Chassis",
		30: "Tablet",
		31: "Convertible",
		32: "Detachable",
	}
	if name, ok := names[code]; ok {
		return name
	}
	return strconv.FormatUint(uint64(code), 10)
}
