// Package xcsp3 parses XCSP3 instance documents, driving a
// callback.Bank with the declared variables, constraints, objectives,
// and annotations in document order (spec §5, §6).
package xcsp3

import (
	"io"

	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/xmldriver"
	"github.com/xcsp3go/xcsp3/internal/xmlevents"
)

// Parse streams r as an XCSP3 instance, reporting every declaration and
// constraint to bank as its closing tag is processed. opts configures
// the dispatcher's primitive-recognition and normalisation passes (§4.4).
func Parse(r io.Reader, bank callback.Bank, opts ...callback.Option) error {
	d := xmldriver.New(callback.NewOptions(opts...), bank)
	return xmlevents.Run(r, d)
}
