package gpu

type uploaderConfig struct {
	label                string
	forceFallbackAdapter bool
}

// PoseUploaderOption is a functional option for NewPoseUploader.
type PoseUploaderOption func(*uploaderConfig)

// WithLabel sets the debug label prefix of the device and buffer.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - PoseUploaderOption: option function to apply
func WithLabel(label string) PoseUploaderOption {
	return func(c *uploaderConfig) {
		if label != "" {
			c.label = label
		}
	}
}

// WithFallbackAdapter forces the software fallback adapter.
//
// Parameters:
//   - force: true to request the fallback adapter
//
// Returns:
//   - PoseUploaderOption: option function to apply
func WithFallbackAdapter(force bool) PoseUploaderOption {
	return func(c *uploaderConfig) {
		c.forceFallbackAdapter = force
	}
}
