package core

import "testing"

func TestSprayConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*SprayConfig)
		expectError bool
	}{
		{"defaults are valid", func(c *SprayConfig) {}, false},
		{"zero wall width", func(c *SprayConfig) { c.WallWidth = 0 }, true},
		{"negative wall height", func(c *SprayConfig) { c.WallHeight = -3 }, true},
		{"zero resolution", func(c *SprayConfig) { c.Resolution = 0 }, true},
		{"zero density", func(c *SprayConfig) { c.SprayDensity = 0 }, true},
		{"negative fan angle", func(c *SprayConfig) { c.FanAngle = -1 }, true},
		{"negative spread radius", func(c *SprayConfig) { c.SpreadRadius = -1 }, true},
		{"zero sub-steps", func(c *SprayConfig) { c.SubSteps = 0 }, true},
		{"zero fan angle is valid", func(c *SprayConfig) { c.FanAngle = 0 }, false},
		{"zero spread radius is valid", func(c *SprayConfig) { c.SpreadRadius = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultSprayConfig()
			tt.mutate(&config)
			err := config.Validate()

			if tt.expectError && err == nil {
				t.Errorf("Expected validation error, got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}
