package lut

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/fxnet/pkg/fx"
)

// Angle constants as raw fixed-point, truncated from float64.
const (
	PiRaw       = 823549
	DegToRadRaw = 4575
	RadToDegRaw = 15019744
)

// Table names, also used as keys in the table data file.
const (
	SqrtName = "sqrt"
	CosName  = "cos"
	AsinName = "asin"
	AtanName = "atan"
)

// Reference sampling parameters.
const (
	SqrtSize = 1000
	CosSize  = 1500
	AsinSize = 1000
	AtanSize = 1000
)

// Tables is the complete set consumed by fxmath.
//
// Sqrt covers [0, 4], Cos covers [0, pi/2], Asin and Atan cover [0, 1].
type Tables struct {
	Sqrt *Table
	Cos  *Table
	Asin *Table
	Atan *Table
}

var defaultTables = Generate()

// Default returns the tables built at package initialisation.
func Default() *Tables { return defaultTables }

// Generate builds the reference tables from the float64 math package.
func Generate() *Tables {
	return &Tables{
		Sqrt: Build(SqrtName, fx.FromInt(4), SqrtSize, math.Sqrt),
		Cos:  Build(CosName, fx.FromRaw(PiRaw/2), CosSize, math.Cos),
		Asin: Build(AsinName, fx.One, AsinSize, math.Asin),
		Atan: Build(AtanName, fx.One, AtanSize, math.Atan),
	}
}

// All returns the tables in their canonical order.
func (ts *Tables) All() []*Table {
	return []*Table{ts.Sqrt, ts.Cos, ts.Asin, ts.Atan}
}

// Fingerprint hashes every table's parameters and samples. Two peers with
// equal fingerprints evaluate every transcendental function identically.
func (ts *Tables) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, t := range ts.All() {
		_, _ = d.WriteString(t.name)
		binary.LittleEndian.PutUint64(buf[:], uint64(t.shift))
		_, _ = d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(t.rangeRaw))
		_, _ = d.Write(buf[:])
		for _, s := range t.samples {
			binary.LittleEndian.PutUint64(buf[:], uint64(s))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}
