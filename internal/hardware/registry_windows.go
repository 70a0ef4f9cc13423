//go:build windows

package hardware

import (
	"golang.org/x/sys/windows/registry"
)

// Firmware restriction signals are exposed through registry keys rather than
// WMI classes. Each reader degrades to an absent field on any failure; the
// keys simply do not exist on many machines.

// readSecureBoot reads the UEFI Secure Boot state flag.
func readSecureBoot() RawField {
	v, err := readDWORD(
		`SYSTEM\CurrentControlSet\Control\SecureBoot\State`,
		"UEFISecureBootEnabled",
	)
	if err != nil {
		return absent("SecureBoot", err.Error())
	}
	if v == 1 {
		return value("SecureBoot", "Enabled")
	}
	return value("SecureBoot", "Disabled")
}

// readTPMEnabled infers TPM availability from the TPM service start type.
// Start type 4 means the service is disabled.
func readTPMEnabled() RawField {
	start, err := readDWORD(`SYSTEM\CurrentControlSet\Services\TPM`, "Start")
	if err != nil {
		return absent("TPMEnabled", err.Error())
	}
	if start != 4 {
		return value("TPMEnabled", "Enabled")
	}
	return value("TPMEnabled", "Disabled")
}

// readBIOSWriteProtect reports firmware write protection from the
// virtualization-based security and hypervisor code integrity flags.
func readBIOSWriteProtect() RawField {
	vbs, vbsErr := readDWORD(
		`SYSTEM\CurrentControlSet\Control\DeviceGuard`,
		"EnableVirtualizationBasedSecurity",
	)
	hvci, hvciErr := readDWORD(
		`SYSTEM\CurrentControlSet\Control\DeviceGuard\Scenarios\HypervisorEnforcedCodeIntegrity`,
		"Enabled",
	)
	if vbsErr != nil && hvciErr != nil {
		return absent("WriteProtect", vbsErr.Error())
	}
	if (vbsErr == nil && vbs == 1) || (hvciErr == nil && hvci == 1) {
		return value("WriteProtect", "Enabled")
	}
	return value("WriteProtect", "Disabled")
}

func readDWORD(path, name string) (uint64, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return 0, err
	}
	defer key.Close()

	v, _, err := key.GetIntegerValue(name)
	if err != nil {
		return 0, err
	}
	return v, nil
}
