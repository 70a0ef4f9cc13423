package lockstate

import (
	"fmt"
	"strings"

	"github.com/hwdrift/hwdrift/pkg/types"
)

// TriState is the result of one firmware restriction check. Firmware
// reporting is inherently inconsistent across vendors, so every check
// degrades to Unknown instead of failing.
type TriState string

const (
	True    TriState = "true"
	False   TriState = "false"
	Unknown TriState = "unknown"
)

// Check names, fixed vocabulary.
const (
	CheckOEMLock          = "oem-lock"
	CheckSecureBoot       = "secure-boot"
	CheckTPM              = "tpm"
	CheckBIOSWriteProtect = "bios-write-protect"
)

// Conclusion is the outcome of one check.
type Conclusion struct {
	Check  string   `json:"check"`
	Result TriState `json:"result"`
	Reason string   `json:"reason,omitempty"`
}

// Report holds every check's conclusion in evaluation order, plus the
// derived overall verdict.
type Report struct {
	Conclusions   []Conclusion `json:"conclusions"`
	OverallLocked bool         `json:"overall_locked"`
	LockReasons   []string     `json:"lock_reasons,omitempty"`
}

// Get returns the conclusion for a check name.
func (r Report) Get(check string) (Conclusion, bool) {
	for _, c := range r.Conclusions {
		if c.Check == check {
			return c, true
		}
	}
	return Conclusion{}, false
}

// check is one independent predicate over the snapshot.
type check struct {
	name string
	eval func(*types.Snapshot) Conclusion
}

// checks run in this order. Each is independent: one Unknown never affects
// another's result.
var checks = []check{
	{CheckOEMLock, evalOEMLock},
	{CheckSecureBoot, boolFieldCheck(CheckSecureBoot, "SecureBoot", "Secure Boot enabled, EFI modifications restricted")},
	{CheckTPM, boolFieldCheck(CheckTPM, "TPMEnabled", "TPM active, hardware attestation can detect changes")},
	{CheckBIOSWriteProtect, boolFieldCheck(CheckBIOSWriteProtect, "WriteProtect", "firmware write protection active")},
}

// oemVendors maps manufacturer substrings to canonical vendor names.
// lockProne marks the vendors whose consumer firmware ships locked down.
var (
	oemVendors = []struct {
		pattern string
		vendor  string
	}{
		{"dell", "Dell"},
		{"hewlett", "HP"},
		{"hp", "HP"},
		{"lenovo", "Lenovo"},
		{"asus", "ASUS"},
		{"acer", "Acer"},
		{"msi", "MSI"},
		{"gigabyte", "Gigabyte"},
		{"asrock", "ASRock"},
	}
	lockProne = map[string]bool{"Dell": true, "HP": true, "Lenovo": true}
)

// Evaluate runs every check over the snapshot. It is a pure function:
// identical snapshots yield identical reports, and no check ever errors.
func Evaluate(snapshot *types.Snapshot) Report {
	report := Report{Conclusions: make([]Conclusion, 0, len(checks))}
	for _, c := range checks {
		conclusion := c.eval(snapshot)
		report.Conclusions = append(report.Conclusions, conclusion)

		if conclusion.Result == True {
			// TPM alone does not lock a board; it only witnesses changes.
			if c.name != CheckTPM {
				report.OverallLocked = true
			}
			if conclusion.Reason != "" {
				report.LockReasons = append(report.LockReasons, conclusion.Reason)
			}
		}
	}
	return report
}

// evalOEMLock matches the manufacturer string against the known OEM table,
// case-insensitive substring. The system manufacturer wins; the baseboard
// manufacturer is the fallback.
func evalOEMLock(snapshot *types.Snapshot) Conclusion {
	manufacturer, ok := snapshot.Get(types.CategorySystem, 0, "Manufacturer")
	if !ok {
		manufacturer, ok = snapshot.Get(types.CategoryBaseboard, 0, "Manufacturer")
	}
	if !ok {
		return Conclusion{Check: CheckOEMLock, Result: Unknown, Reason: "manufacturer not reported"}
	}

	lower := strings.ToLower(manufacturer)
	for _, v := range oemVendors {
		if strings.Contains(lower, v.pattern) {
			if lockProne[v.vendor] {
				return Conclusion{
					Check:  CheckOEMLock,
					Result: True,
					Reason: fmt.Sprintf("%s OEM system, firmware typically locked", v.vendor),
				}
			}
			return Conclusion{
				Check:  CheckOEMLock,
				Result: False,
				Reason: fmt.Sprintf("%s system, firmware typically unlocked", v.vendor),
			}
		}
	}
	return Conclusion{Check: CheckOEMLock, Result: False, Reason: "no known OEM pattern matched"}
}

// boolFieldCheck builds a check over one boolean-like BIOS field. Raw
// provider forms map to the tri-state; anything unparseable is Unknown.
func boolFieldCheck(name, key, trueReason string) func(*types.Snapshot) Conclusion {
	return func(snapshot *types.Snapshot) Conclusion {
		raw, ok := snapshot.Get(types.CategoryBIOS, 0, key)
		if !ok {
			return Conclusion{Check: name, Result: Unknown, Reason: key + " not reported"}
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "enabled", "1", "true", "yes", "on":
			return Conclusion{Check: name, Result: True, Reason: trueReason}
		case "disabled", "0", "false", "no", "off":
			return Conclusion{Check: name, Result: False}
		default:
			return Conclusion{Check: name, Result: Unknown, Reason: fmt.Sprintf("unrecognized value %q", raw)}
		}
	}
}
