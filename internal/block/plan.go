package block

import (
	"fmt"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

// Field is one row of a decode plan: a named field, the revision that
// introduced it, and its decoder. Width is the field's fixed byte width;
// fields a file's revision predates are skipped but still advance the cursor
// by Width, because the vendor keeps one fixed layout across revisions and
// older files simply leave late fields unused. A negative Width marks a
// variable-width field whose decoder determines its own extent; such fields
// consume nothing when skipped.
type Field struct {
	Name         string
	IntroducedIn Version
	Width        int
	Decode       func(r *binary.Reader) error
}

// Plan is an ordered decode table for one block. The reader walks the table
// exactly once per parse.
type Plan struct {
	Block  string
	Fields []Field
}

// Run walks the plan against r for a file of revision v. The first failing
// field aborts the walk; the error names the block and field.
func (p Plan) Run(r *binary.Reader, v Version) error {
	for _, f := range p.Fields {
		if v < f.IntroducedIn {
			if f.Width > 0 {
				r.Skip(int64(f.Width))
			}
			continue
		}
		if f.Decode == nil {
			// Reserved or padding field: consume without decoding.
			if f.Width > 0 {
				r.Skip(int64(f.Width))
			}
			continue
		}
		if err := f.Decode(r); err != nil {
			return fmt.Errorf("%s.%s: %w", p.Block, f.Name, err)
		}
	}
	return nil
}
