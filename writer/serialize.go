package writer

import (
	"fmt"

	"github.com/dekarrin/rezi"

	"github.com/coldbrew-labs/yacgo/grammar"
	"github.com/coldbrew-labs/yacgo/table"
)

// Serialize encodes tabs into a binary form suitable for caching between
// runs, or for handing to a downstream code generator, via rezi's
// reflective binary encoding of table.Snapshot.
func Serialize(tabs *table.Tables) []byte {
	return rezi.EncBinary(tabs.Snapshot())
}

// Deserialize decodes data previously produced by Serialize back into
// usable Tables, against grammar g (which must match the grammar that
// produced the original Tables).
func Deserialize(data []byte, g *grammar.Grammar) (*table.Tables, error) {
	var snap table.Snapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return nil, fmt.Errorf("decoding table snapshot: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("decoded %d/%d bytes; trailing data after table snapshot", n, len(data))
	}
	return table.FromSnapshot(g, &snap), nil
}
