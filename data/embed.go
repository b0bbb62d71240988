package data

import (
	_ "embed"
)

// DemoFixture is the snapshot served when no fixture path is configured
//
//go:embed fixtures/demo.yaml
var DemoFixture []byte
