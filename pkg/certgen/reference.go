package certgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
)

// ReferenceNumber builds a certificate reference such as
// COMPLETION_PYTH_B12SMITH_2024_1A2B3C4D from the record's course and batch,
// the issue year and the first eight hex digits of id.
func ReferenceNumber(rec models.Record, issued time.Time, id string) string {
	course := alnumUpper(rec.Domain)
	if len(course) > 4 {
		course = course[:4]
	}
	if course == "" {
		course = "GEN"
	}
	batch := alnumUpper(rec.Batch)
	if batch == "" {
		batch = "GEN"
	}
	suffix := alnumUpper(id)
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("COMPLETION_%s_%s_%d_%s", course, batch, issued.Year(), suffix)
}

// alnumUpper keeps the ASCII letters and digits of s, upper-cased.
func alnumUpper(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		}
	}
	return b.String()
}
