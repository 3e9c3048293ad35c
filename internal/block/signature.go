package block

import (
	"fmt"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

// SignatureSize is the fixed size of the raw signature bytes.
const SignatureSize = 128

// Signature is the optional digital-signature block of revision 8 files.
type Signature struct {
	Signed bool
	Raw    []byte
	Signer string
}

// ReadSignature decodes the signature block.
func ReadSignature(r *binary.Reader, v Version) (*Signature, error) {
	if v < V8 {
		return nil, fmt.Errorf("signature: block not defined before revision 8")
	}

	s := &Signature{}

	flag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("signature.signedFlag: %w", err)
	}
	s.Signed = flag != 0

	raw, err := r.ReadBytes(SignatureSize)
	if err != nil {
		return nil, fmt.Errorf("signature.bytes: %w", err)
	}
	s.Raw = append([]byte(nil), raw...)

	if s.Signer, err = r.ReadPrefixedString(); err != nil {
		return nil, fmt.Errorf("signature.signer: %w", err)
	}
	return s, nil
}
