package models

// ColumnSchema describes the horizontal layout of one statement rendering:
// six ordered x-coordinate boundaries used to classify tokens into semantic
// fields, plus the vertical tolerance for merging a wrapped continuation line
// into its dated anchor line.
//
// A token belongs to the first field whose boundary its x is less than;
// tokens past ChargeMax map to the balance field.
type ColumnSchema struct {
	DateMax    float64
	TypeMax    float64
	DetailsMax float64
	OutMax     float64
	InMax      float64
	ChargeMax  float64

	// MergeTolerance is the maximum y distance, in page units, between a
	// dated line and an undated continuation line for them to form one
	// logical row.
	MergeTolerance int
}

// DefaultColumnSchema returns the boundaries calibrated against the
// mobile-money statement rendering this engine was built for. Other
// renderings need their own schema; these values are configuration, not
// derived from font metrics.
func DefaultColumnSchema() ColumnSchema {
	return ColumnSchema{
		DateMax:        80,
		TypeMax:        160,
		DetailsMax:     300,
		OutMax:         380,
		InMax:          460,
		ChargeMax:      510,
		MergeTolerance: 20,
	}
}
