package out

import (
	"context"

	"chalk/internal/modules/assistant/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Answer(ctx context.Context, manifest domain.Manifest, question domain.Question) (domain.Answer, error)
}
