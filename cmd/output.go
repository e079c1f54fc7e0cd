package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/CraigKelly/carnet/sampler"
)

// chainFileName gives the output file for chain c. A single chain writes to
// base unchanged; more chains get a -chainN suffix before the extension.
func chainFileName(base string, c int, chains int) string {
	if chains < 2 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-chain%d%s", base[:len(base)-len(ext)], c, ext)
}

// writeChainCSV writes the chain table with a header row
func writeChainCSV(w io.Writer, ch *sampler.Chain) error {
	cw := csv.NewWriter(w)

	cols, tab := ch.Table()
	if err := cw.Write(cols); err != nil {
		return errors.Wrap(err, "Could not write chain header")
	}

	if tab != nil {
		r, _ := tab.Dims()
		rec := make([]string, len(cols))
		for i := 0; i < r; i++ {
			for c, v := range tab.RawRowView(i) {
				rec[c] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if err := cw.Write(rec); err != nil {
				return errors.Wrapf(err, "Could not write chain row %d", i)
			}
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "Could not write chain")
}

func writeChainFile(filename string, ch *sampler.Chain) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Could not create chain file %s", filename)
	}
	defer f.Close()

	if err = writeChainCSV(f, ch); err != nil {
		return err
	}
	return f.Close()
}

// inclusionTotals reads a chain CSV and returns the per-edge sum of the
// Gamma columns plus the number of rows. Edge ids are 1-based.
func inclusionTotals(r io.Reader) (map[int]float64, int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, 0, errors.Wrap(err, "Could not read chain header")
	}

	gammaCols := make(map[int]int) // column -> edge id
	for c, name := range header {
		if !strings.HasPrefix(name, sampler.ParamGamma+"[") || !strings.HasSuffix(name, "]") {
			continue
		}
		k, err := strconv.Atoi(name[len(sampler.ParamGamma)+1 : len(name)-1])
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Invalid column name %s", name)
		}
		gammaCols[c] = k
	}
	if len(gammaCols) < 1 {
		return nil, 0, errors.Errorf("Chain does not contain any %s columns", sampler.ParamGamma)
	}

	totals := make(map[int]float64)
	rows := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Could not read chain row %d", rows+1)
		}
		for c, k := range gammaCols {
			v, err := strconv.ParseFloat(rec[c], 64)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "Invalid value in row %d column %s", rows+1, header[c])
			}
			totals[k] += v
		}
		rows++
	}

	return totals, rows, nil
}
