package pose

import (
	"context"
	"log"
)

// PermissionState governs whether orientation samples are trusted.
type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionGranted
	PermissionDenied
	PermissionUnsupported
)

func (p PermissionState) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	case PermissionUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// negotiatePermission resolves the orientation permission for the platform.
// An absent API is unsupported, an ungated API is implicitly granted, and a gated
// API yields the gate's answer or denied when the request fails.
func negotiatePermission(ctx context.Context, api SensorAPI) PermissionState {
	if !api.Available {
		return PermissionUnsupported
	}
	if api.Gate == nil {
		return PermissionGranted
	}
	state, err := api.Gate.RequestPermission(ctx)
	if err != nil {
		log.Printf("[Pose] orientation permission request failed: %v", err)
		return PermissionDenied
	}
	if state != PermissionGranted {
		return PermissionDenied
	}
	return PermissionGranted
}
