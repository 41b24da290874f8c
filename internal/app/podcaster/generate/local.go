package generate

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/go-pkgz/lgr"

	"podcaster/internal/app/podcaster/proc"
	"podcaster/internal/app/podcaster/upload"
)

// Pipeline is the in-process generation, implemented by proc.Processor
type Pipeline interface {
	Generate(ctx context.Context, name string, data []byte) (*proc.Result, error)
}

// LocalGenerator runs pipeline in-process, no network involved
type LocalGenerator struct {
	Pipeline Pipeline
	MaxSize  int64
}

// Generate reads staged payload and feeds it to pipeline
func (l *LocalGenerator) Generate(ctx context.Context, file upload.StagedFile) Outcome {
	src, err := file.Open()
	if err != nil {
		return Failure(&TransportError{Reason: ReasonUnreadable, Cause: err})
	}
	defer src.Close() // nolint

	var r io.Reader = src
	if l.MaxSize > 0 {
		r = io.LimitReader(src, l.MaxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Failure(&TransportError{Reason: ReasonUnreadable, Cause: err})
	}
	if l.MaxSize > 0 && int64(len(data)) > l.MaxSize {
		return Failure(&RejectedError{Message: fmt.Sprintf("file is too large, limit is %d bytes", l.MaxSize)})
	}

	res, err := l.Pipeline.Generate(ctx, file.Name, data)
	if err != nil {
		log.Printf("[WARN] local generation for %s failed, %v", file.Name, err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Failure(&TransportError{Reason: ReasonUnavailable, Cause: err})
		}
		return Failure(&RejectedError{Message: err.Error()})
	}
	return Success(res.Summary, res.AudioURL)
}
