//go:build tools

// Linters run against this module, pinned here so go.mod tracks their versions.

package bootcheck

import (
	_ "github.com/client9/misspell/cmd/misspell"
	_ "github.com/gordonklaus/ineffassign"
	_ "github.com/mdempsky/unconvert"
	_ "honnef.co/go/tools/cmd/staticcheck"
	_ "mvdan.cc/unparam"
)
