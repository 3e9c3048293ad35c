package block

import (
	"fmt"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

// DependentVariables holds the auxiliary scalar fields tied to the spectrum
// (revision 6+): one float32 value per labelled variable.
type DependentVariables struct {
	Save   bool
	Labels []string
	Values []float32
}

// ReadDependentVariables decodes the dependent-variables block.
func ReadDependentVariables(r *binary.Reader, v Version) (*DependentVariables, error) {
	if v < V6 {
		return nil, fmt.Errorf("dependents: block not defined before revision 6")
	}

	d := &DependentVariables{}

	flag, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("dependents.saveFlag: %w", err)
	}
	d.Save = flag != 0

	count, err := r.ReadInt16()
	if err != nil {
		return nil, fmt.Errorf("dependents.count: %w", err)
	}
	if count < 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("negative dependent variable count %d", count)}
	}

	d.Labels = make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		label, err := r.ReadPrefixedString()
		if err != nil {
			return nil, fmt.Errorf("dependents.label[%d]: %w", i, err)
		}
		d.Labels = append(d.Labels, label)
	}

	d.Values = make([]float32, 0, count)
	for i := 0; i < int(count); i++ {
		val, err := r.ReadFloat32()
		if err != nil {
			return nil, fmt.Errorf("dependents.value[%d]: %w", i, err)
		}
		d.Values = append(d.Values, val)
	}
	return d, nil
}
