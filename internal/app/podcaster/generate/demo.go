package generate

import (
	"context"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"podcaster/internal/app/podcaster/upload"
)

// DemoGenerator pretends to generate, never touches network or payload
type DemoGenerator struct {
	AudioURL string
}

// Generate returns canned summary and the sample track
func (d *DemoGenerator) Generate(ctx context.Context, file upload.StagedFile) Outcome {
	if err := ctx.Err(); err != nil {
		return Failure(&TransportError{Reason: ReasonUnavailable, Cause: err})
	}
	log.Printf("[DEBUG] demo generation for %s", file.Name)
	return Success(fmt.Sprintf("Demo summary of %s", file.Name), d.AudioURL)
}
