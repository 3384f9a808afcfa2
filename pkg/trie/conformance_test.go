package trie

import (
	"testing"

	"github.com/yndnr/triemap/pkg/ordmap"
	"github.com/yndnr/triemap/pkg/ordmap/maptest"
)

func TestConformance(t *testing.T) {
	maptest.Run(t, func() ordmap.Map { return New() })
}

func TestConformance_FixedSeed(t *testing.T) {
	maptest.Run(t, func() ordmap.Map { return New() }, maptest.WithSeed(42))
}
