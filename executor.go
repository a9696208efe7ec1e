package bookstat

import (
	"context"

	"github.com/bcongdon/bookstat/internal/pkg/bookfs"
)

type executor interface {
	RunFile(ctx context.Context, job *job, file bookfs.FileInfo) error
}

type localExecutor struct{}

func (localExecutor) RunFile(ctx context.Context, job *job, file bookfs.FileInfo) error {
	return job.processFile(ctx, file)
}
