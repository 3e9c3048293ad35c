package block

import (
	"fmt"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

// Constituent is one chemometric model result embedded in the classifier
// block.
type Constituent struct {
	Name               string
	PassFail           string
	MDistance          float64
	MDistanceLimit     float64
	Concentration      float64
	ConcentrationLimit float64
	FRatio             float64
	Residual           float64
	ResidualLimit      float64
	Scores             float64
	ModelType          int32
}

// ClassifierData is the optional spectral-classification metadata block
// (revision 6+). All text fields are 16-bit length-prefixed strings.
type ClassifierData struct {
	YCode      uint8
	YModelType uint8

	Title        string
	Subtitle     string
	ProductName  string
	Vendor       string
	LotNumber    string
	Sample       string
	ModelName    string
	Operator     string
	DateTime     string
	Instrument   string
	SerialNumber string
	DisplayMode  string
	Comments     string
	Units        string
	Filename     string
	Username     string
	Reserved     [4]string

	Constituents []Constituent
}

// ReadClassifier decodes the classifier block.
func ReadClassifier(r *binary.Reader, v Version) (*ClassifierData, error) {
	if v < V6 {
		return nil, fmt.Errorf("classifier: block not defined before revision 6")
	}

	c := &ClassifierData{}

	var err error
	if c.YCode, err = r.ReadUint8(); err != nil {
		return nil, fmt.Errorf("classifier.yCode: %w", err)
	}
	if c.YModelType, err = r.ReadUint8(); err != nil {
		return nil, fmt.Errorf("classifier.yModelType: %w", err)
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"title", &c.Title},
		{"subtitle", &c.Subtitle},
		{"productName", &c.ProductName},
		{"vendor", &c.Vendor},
		{"lotNumber", &c.LotNumber},
		{"sample", &c.Sample},
		{"modelName", &c.ModelName},
		{"operator", &c.Operator},
		{"dateTime", &c.DateTime},
		{"instrument", &c.Instrument},
		{"serialNumber", &c.SerialNumber},
		{"displayMode", &c.DisplayMode},
		{"comments", &c.Comments},
		{"units", &c.Units},
		{"filename", &c.Filename},
		{"username", &c.Username},
		{"reserved1", &c.Reserved[0]},
		{"reserved2", &c.Reserved[1]},
		{"reserved3", &c.Reserved[2]},
		{"reserved4", &c.Reserved[3]},
	}
	for _, s := range strs {
		if *s.dst, err = r.ReadPrefixedString(); err != nil {
			return nil, fmt.Errorf("classifier.%s: %w", s.name, err)
		}
	}

	count, err := r.ReadInt16()
	if err != nil {
		return nil, fmt.Errorf("classifier.constituentCount: %w", err)
	}
	if count < 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("negative constituent count %d", count)}
	}

	c.Constituents = make([]Constituent, 0, count)
	for i := 0; i < int(count); i++ {
		con, err := readConstituent(r)
		if err != nil {
			return nil, fmt.Errorf("classifier.constituent[%d]: %w", i, err)
		}
		c.Constituents = append(c.Constituents, con)
	}
	return c, nil
}

func readConstituent(r *binary.Reader) (Constituent, error) {
	var con Constituent
	var err error

	if con.Name, err = r.ReadPrefixedString(); err != nil {
		return con, err
	}
	if con.PassFail, err = r.ReadPrefixedString(); err != nil {
		return con, err
	}
	for _, dst := range []*float64{
		&con.MDistance, &con.MDistanceLimit,
		&con.Concentration, &con.ConcentrationLimit,
		&con.FRatio, &con.Residual, &con.ResidualLimit, &con.Scores,
	} {
		if *dst, err = r.ReadFloat64(); err != nil {
			return con, err
		}
	}
	if con.ModelType, err = r.ReadInt32(); err != nil {
		return con, err
	}
	return con, nil
}
