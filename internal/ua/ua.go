// internal/ua/ua.go
//
// User-Agent classification for telemetry reports.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the rest of the codebase never sees its enums or structs.  The desktop
// Songify client, the web overlay, and assorted chat bots all report
// telemetry; the OS/device pair ends up in the usage row and tells us which
// platforms are worth supporting.
package ua

import (
	"strings"

	surfer "github.com/avct/uasurfer"
)

// Info carries the two attributes the usage table stores.
//
// Device will be one of: "Desktop", "Mobile", "Tablet", or "Other".
type Info struct {
	OS     string
	Device string
}

// Parse classifies a raw User-Agent header.  An empty header yields an
// empty Info, which the telemetry store writes as NULLs.
func Parse(raw string) Info {
	if raw == "" {
		return Info{}
	}

	ua := surfer.Parse(raw)

	// Enum names stringify as OSWindows, OSMacOSX, …; strip the prefix and
	// blank out unknowns so the store writes NULL instead of "Unknown".
	osName := strings.TrimPrefix(ua.OS.Name.String(), "OS")
	if osName == "Unknown" {
		osName = ""
	}

	info := Info{OS: osName}
	switch ua.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}
	return info
}
