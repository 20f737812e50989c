package utils

import (
	"log/slog"

	"github.com/notargets/gocca"
)

// TestBackends lists the OCCA device modes tried by CreateTestDevice, in order
var TestBackends = []string{
	`{"mode": "OpenMP"}`,
	`{"mode": "CUDA", "device_id": 0}`,
	`{"mode": "Serial"}`,
}

// CreateTestDevice creates a Device for testing, preferring parallel backends
func CreateTestDevice() *gocca.OCCADevice {
	for _, props := range TestBackends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			slog.Debug("created test device", "mode", device.Mode())
			return device
		}
		slog.Debug("test device unavailable", "props", props, "err", err)
	}

	// Serial is always available
	panic("Failed to create any Device")
}
