package tracing

import "go.opentelemetry.io/otel/attribute"

// Span names.
const (
	SpanClassify = "classify.submit"
	SpanAcquire  = "source.acquire"
	SpanSubmit   = "workflow.submit"
)

// Attribute keys.
const (
	AttrPhotoID     = attribute.Key("petsense.photo.id")
	AttrPhotoType   = attribute.Key("petsense.photo.content_type")
	AttrEndpoint    = attribute.Key("petsense.classifier.endpoint")
	AttrLabel       = attribute.Key("petsense.result.label")
	AttrProbability = attribute.Key("petsense.result.probability")
	AttrFailure     = attribute.Key("petsense.failure.kind")
	AttrCacheHit    = attribute.Key("petsense.cache.hit")
	AttrSource      = attribute.Key("petsense.source")
	AttrGeneration  = attribute.Key("petsense.workflow.generation")
)
