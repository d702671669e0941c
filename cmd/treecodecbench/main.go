// Command treecodecbench builds a synthetic payload of RGBA color records
// and reports the size of each codec's output relative to the Basic
// codec. It exists to exercise the codecs end-to-end and is not part of
// the library's tested public contract.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scigolib/treecodec"
	"github.com/scigolib/treecodec/internal/dict"
)

var (
	recordCount int
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "treecodecbench",
	Short: "Benchmark the leaf-tree codecs against a synthetic color payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			dict.SetLogger(zerolog.New(os.Stderr).With().Timestamp().Logger())
		}
		return runBench(cmd.OutOrStdout(), recordCount)
	},
}

func init() {
	rootCmd.Flags().IntVar(&recordCount, "records", 400, "number of RGBA color records in the synthetic payload")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "trace dictionary hit/miss decisions to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runBench(out io.Writer, n int) error {
	payload := syntheticColorPayload(n)

	basic, err := treecodec.Basic.Encode(treecodec.TypeViewer(payload))
	if err != nil {
		return fmt.Errorf("basic encode: %w", err)
	}
	prefix, err := treecodec.Prefix.Encode(treecodec.TypeViewer(payload))
	if err != nil {
		return fmt.Errorf("prefix encode: %w", err)
	}
	compressed, err := treecodec.PrefixCompressed.Encode(treecodec.TypeViewer(payload))
	if err != nil {
		return fmt.Errorf("prefix-compressed encode: %w", err)
	}

	fmt.Fprintf(out, "records: %d\n", n)
	fmt.Fprintf(out, "basic:             %8d bytes (1.00x)\n", len(basic))
	fmt.Fprintf(out, "prefix:            %8d bytes (%.2fx)\n", len(prefix), ratio(len(prefix), len(basic)))
	fmt.Fprintf(out, "prefix_compressed: %8d bytes (%.2fx)\n", len(compressed), ratio(len(compressed), len(basic)))
	return nil
}

func ratio(n, basis int) float64 {
	if basis == 0 {
		return 0
	}
	return float64(n) / float64(basis)
}

// colorTypeID and colorFieldR/G/B/A are fixed 128-bit identifiers for the
// synthetic RGBA record type, analogous to spec.md's fixed Color/TestData
// sample payload.
var (
	colorTypeID = treecodec.NewTypeID(1, 0)
	fieldR      = treecodec.NewFieldID(1, 0)
	fieldG      = treecodec.NewFieldID(2, 0)
	fieldB      = treecodec.NewFieldID(3, 0)
	fieldA      = treecodec.NewFieldID(4, 0)
	byteTypeID  = treecodec.NewTypeID(2, 0)
)

// syntheticColorPayload builds a list of n RGBA color records, each a
// struct with four single-byte fields. Field values cycle through a small
// range so that many records share an identical byte pattern, giving the
// compressed codec real structural repetition to exploit.
func syntheticColorPayload(n int) *treecodec.ConcreteTypedValueTree {
	records := make([]treecodec.ConcreteMapEntry, 0, n)
	for i := 0; i < n; i++ {
		r, g, b, a := byte(i%4), byte((i/4)%4), byte((i/16)%4), byte(255)
		record := treecodec.NewStructNode(colorTypeID,
			treecodec.ConcreteMapEntry{FieldID: fieldR, Children: []*treecodec.ConcreteTypedValueTree{byteLeaf(r)}},
			treecodec.ConcreteMapEntry{FieldID: fieldG, Children: []*treecodec.ConcreteTypedValueTree{byteLeaf(g)}},
			treecodec.ConcreteMapEntry{FieldID: fieldB, Children: []*treecodec.ConcreteTypedValueTree{byteLeaf(b)}},
			treecodec.ConcreteMapEntry{FieldID: fieldA, Children: []*treecodec.ConcreteTypedValueTree{byteLeaf(a)}},
		)
		records = append(records, treecodec.ConcreteMapEntry{
			FieldID:  treecodec.NewFieldID(uint64(i), 0),
			Children: []*treecodec.ConcreteTypedValueTree{record},
		})
	}
	return treecodec.NewStructNode(colorTypeID, records...)
}

func byteLeaf(b byte) *treecodec.ConcreteTypedValueTree {
	return treecodec.NewLeafNode(byteTypeID, []byte{b})
}
