package platform

import (
	"github.com/aretw0/timeline/pkg/dateparse"
	"github.com/aretw0/timeline/pkg/pipeline"
)

// New wires a timeline service over the vault at uri.
//
//	svc, err := timeline.New("./vault", timeline.WithLogger(logger))
//
// The uri argument is adapter-specific (a directory for "fs").
func New(uri string, opts ...Option) (*pipeline.Service, error) {
	o := applyOptions(opts)

	repo, err := open(uri, o)
	if err != nil {
		return nil, err
	}

	settings, err := loadSettings(uri, o)
	if err != nil {
		return nil, err
	}

	var parser dateparse.Parser = dateparse.New()
	if o.cacheSize > 0 {
		cached, err := dateparse.NewCached(parser, o.cacheSize)
		if err != nil {
			return nil, err
		}
		parser = cached
	}

	svcOpts := []pipeline.Option{pipeline.WithLogger(o.logger)}
	if o.notifier != nil {
		svcOpts = append(svcOpts, pipeline.WithNotifier(o.notifier))
	}
	if o.clock != nil {
		svcOpts = append(svcOpts, pipeline.WithClock(o.clock))
	}
	if o.eventBuffer > 0 {
		svcOpts = append(svcOpts, pipeline.WithEventBuffer(o.eventBuffer))
	}

	return pipeline.NewService(repo, parser, settings, svcOpts...), nil
}
