// Inspection tool for ASD spectral files
package main

import (
	"fmt"
	"os"

	"github.com/robert-malhotra/go-asd/asd"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: asdinfo <file.asd> [more files...]")
		os.Exit(1)
	}

	failures := 0
	for _, path := range os.Args[1:] {
		if !describe(path) {
			failures++
		}
	}
	if failures > 0 {
		fmt.Printf("\n%d of %d files could not be read\n", failures, len(os.Args)-1)
		os.Exit(1)
	}
}

// describe prints a summary of one file. A bad file is reported and the
// remaining files still get processed.
func describe(path string) bool {
	fmt.Printf("=== %s ===\n", path)

	f, err := asd.Open(path)
	if f == nil {
		fmt.Printf("ERROR: %v\n\n", err)
		return false
	}
	if err != nil {
		fmt.Printf("WARNING: %v\n", err)
	}

	h := f.Header()
	fmt.Printf("Format revision:  %d\n", f.Version())
	fmt.Printf("Instrument:       %s (#%d)\n", h.Instrument, h.InstrumentNum)
	fmt.Printf("Acquired:         %s\n", h.SavedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Channels:         %d (%.1f nm + %.1f nm steps)\n", h.Channels, h.WavelengthStart, h.WavelengthStep)
	fmt.Printf("Integration time: %d ms\n", h.IntegrationTime)
	if h.Comments != "" {
		fmt.Printf("Comments:         %s\n", h.Comments)
	}
	if h.GPS.Latitude != 0 || h.GPS.Longitude != 0 {
		fmt.Printf("GPS:              %.5f, %.5f (alt %.1f m)\n", h.GPS.Latitude, h.GPS.Longitude, h.GPS.Altitude)
	}
	if h.Flags.Tec1Alarm() || h.Flags.Tec2Alarm() {
		fmt.Println("WARNING: TEC alarm flagged during acquisition")
	}
	if h.Flags.VNIRSaturated() || h.Flags.SWIR1Saturated() || h.Flags.SWIR2Saturated() {
		fmt.Println("WARNING: detector saturation flagged during acquisition")
	}

	fmt.Printf("Blocks:           %s\n", blockSummary(f))

	if refl, err := f.Reflectance(); err == nil {
		valid := 0
		for i := range refl.Values {
			if refl.Valid(i) {
				valid++
			}
		}
		fmt.Printf("Reflectance:      %d/%d channels valid\n", valid, len(refl.Values))
		for _, fault := range refl.Faults {
			fmt.Printf("  channel %d: %s undefined\n", fault.Channel, fault.Op)
		}
	}

	if log, ok := f.Audit(); ok && len(log.Entries) > 0 {
		fmt.Printf("Audit log:        %d entries\n", len(log.Entries))
	}

	fmt.Println()
	return true
}

func blockSummary(f *asd.ASDFile) string {
	s := "header, spectrum"
	if _, _, ok := f.Reference(); ok {
		s += ", reference"
	}
	if _, ok := f.Classifier(); ok {
		s += ", classifier"
	}
	if _, ok := f.Dependents(); ok {
		s += ", dependents"
	}
	if cal, ok := f.Calibration(); ok {
		s += fmt.Sprintf(", calibration(%d)", len(cal.Buffers))
	}
	if _, ok := f.Audit(); ok {
		s += ", audit"
	}
	if _, ok := f.Signature(); ok {
		s += ", signature"
	}
	return s
}
