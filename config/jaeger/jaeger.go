package jaeger

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type Options struct {
	ServiceName string
	AgentAddr   string
	SampleRate  float64
}

// Init builds a jaeger tracer and installs it as the global opentracing tracer,
// which the gorm tracing plugin and the request middleware report to.
func Init(opts Options) (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: opts.ServiceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "probabilistic",
			Param: opts.SampleRate,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: opts.AgentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer")
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer reporting to %s as %s", opts.AgentAddr, opts.ServiceName)
	return closer, nil
}
