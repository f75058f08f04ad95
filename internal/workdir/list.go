package workdir

import (
	"fmt"
	"os"

	"github.com/starford/zugzug/internal/apperr"
	"github.com/starford/zugzug/internal/models"
)

// Listing is the result of scanning buckets. Problems holds one error per
// unreadable bucket or malformed entry; neither stops the scan.
type Listing struct {
	Entries  []models.Entry
	Problems []error
}

// List enumerates the immediate entries of every bucket's base directory,
// in bucket order and then directory order.
func List(buckets []models.Bucket) Listing {
	var out Listing
	for _, b := range buckets {
		dirents, err := os.ReadDir(b.Path)
		if err != nil {
			out.Problems = append(out.Problems,
				fmt.Errorf("%w: bucket %s: %w", apperr.ErrDirectoryRead, b.Name, err))
			continue
		}
		for _, d := range dirents {
			e, err := NewEntry(b, d.Name())
			if err != nil {
				out.Problems = append(out.Problems, err)
				continue
			}
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}
