package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/LTLA/tatami/mtxio"
	"github.com/LTLA/tatami/rowreduce"
	"github.com/golang/glog"
)

var (
	input   = flag.String("input_file", "", "Matrix Market file to load (plain text or gzip-compressed)")
	layered = flag.Bool("layered", false, "partition rows by value magnitude before reducing")
	workers = flag.Int("workers", 0, "number of row-reduction workers (0 = GOMAXPROCS; with -layered, 0 = one per category)")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if *input == "" {
		glog.Exit("input_file is required")
	}

	f, err := os.Open(*input)
	if err != nil {
		glog.Exitf("opening %s: %v", *input, err)
	}
	defer f.Close()

	r, err := mtxio.Open(f)
	if err != nil {
		glog.Exitf("detecting compression on %s: %v", *input, err)
	}

	var sums []float64
	var nrow, ncol int
	if *layered {
		out, err := mtxio.LoadLayered(r)
		if err != nil {
			glog.Exitf("loading %s: %v", *input, err)
		}
		nrow, ncol = out.Matrix.Shape()
		sums, err = rowreduce.CategorySums(context.Background(), out, *workers)
		if err != nil {
			glog.Exitf("reducing %s: %v", *input, err)
		}
		unpermuted := make([]float64, nrow)
		for i, p := range out.Permutation {
			unpermuted[i] = sums[p]
		}
		sums = unpermuted
	} else {
		m, err := mtxio.LoadSimple(r)
		if err != nil {
			glog.Exitf("loading %s: %v", *input, err)
		}
		nrow, ncol = m.Shape()
		sums, err = rowreduce.SparseRowSums[float64, int](context.Background(), m, *workers)
		if err != nil {
			glog.Exitf("reducing %s: %v", *input, err)
		}
	}

	glog.Infof("loaded %dx%d matrix from %s", nrow, ncol, *input)
	for i, s := range sums {
		fmt.Printf("%d\t%g\n", i, s)
	}
}
