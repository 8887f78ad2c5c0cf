package detection

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/voicecheck/audio"
	"github.com/kbukum/voicecheck/classifier"
	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/logger"
	"github.com/kbukum/voicecheck/observability"
	"github.com/kbukum/voicecheck/resilience"
)

// Decoder turns the base64 payload into a clip.
type Decoder interface {
	Decode(payload string) (*audio.Clip, error)
}

// Service runs the detection pipeline. It is safe for concurrent use.
type Service struct {
	decoder    Decoder
	classifier classifier.Classifier
	bulkhead   *resilience.Bulkhead
	timeout    time.Duration
	policy     Policy
	service    string
	metrics    *observability.Metrics
	log        *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records pipeline metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPolicy sets the request parsing policy.
func WithPolicy(p Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithServiceName sets the service name put on spans.
func WithServiceName(name string) Option {
	return func(s *Service) { s.service = name }
}

// WithLogger replaces the component logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService builds the pipeline. cfg supplies the classify timeout and the
// concurrency bulkhead.
func NewService(dec Decoder, c classifier.Classifier, cfg classifier.Config, opts ...Option) *Service {
	cfg.ApplyDefaults()
	s := &Service{
		decoder:    dec,
		classifier: c,
		timeout:    cfg.Timeout,
		service:    "voicecheck",
		log:        logger.WithComponent("detection"),
	}
	s.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          "classifier",
		MaxConcurrent: cfg.MaxConcurrent,
		MaxWait:       cfg.MaxWait,
		OnReject: func(name string, err error) {
			s.log.Warn("classifier bulkhead rejected request", logger.MergeWithError(logger.Fields("bulkhead", name), err))
		},
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classifier returns the backend in use.
func (s *Service) Classifier() classifier.Classifier { return s.classifier }

// Handle parses body and runs the pipeline on it.
func (s *Service) Handle(ctx context.Context, body []byte) (*Result, error) {
	req, err := ParseRequest(body, s.policy)
	if err != nil {
		s.recordError(ctx, err, "validate")
		return nil, err
	}
	return s.Detect(ctx, req)
}

// Detect decodes and classifies a validated request.
func (s *Service) Detect(ctx context.Context, req *Request) (*Result, error) {
	oc := observability.NewOperationContext(s.service, logger.RequestIDFromContext(ctx), req.Language, s.metrics)
	ctx, span := oc.Start(ctx)

	result, err := s.detect(ctx, req)
	outcome := StatusSuccess
	if err != nil {
		outcome = string(codeOf(err))
	}
	oc.End(ctx, span, outcome, err)
	return result, err
}

func (s *Service) detect(ctx context.Context, req *Request) (*Result, error) {
	// The audio format is settled before any bytes are decoded.
	if req.AudioFormat != AudioFormatMP3 {
		return nil, unsupported("audioFormat", errUnsupportedFormat)
	}

	clip, err := s.decode(ctx, req.AudioBase64)
	if err != nil {
		s.recordError(ctx, err, "decode")
		return nil, err
	}

	verdict, err := s.classify(ctx, classifier.Input{Audio: clip, Language: req.Language})
	if err != nil {
		s.recordError(ctx, err, "classify")
		return nil, err
	}

	s.log.WithContext(ctx).Info("clip classified", logger.Fields(
		logger.FieldLanguage, req.Language,
		logger.FieldBackend, s.classifier.Name(),
		logger.FieldClassification, string(verdict.Label),
		logger.FieldScore, verdict.Score,
		logger.FieldAudioBytes, len(clip.Data),
		logger.FieldAudioDuration, clip.Duration.Milliseconds(),
	))

	return &Result{
		Status:          StatusSuccess,
		Language:        req.Language,
		Classification:  verdict.Label,
		ConfidenceScore: verdict.Score,
		Explanation:     verdict.Explanation,
	}, nil
}

func (s *Service) decode(ctx context.Context, payload string) (clip *audio.Clip, err error) {
	_, span := observability.StartSpan(ctx, observability.SpanDetectionDecode)
	defer func() { observability.EndSpan(span, err) }()

	clip, err = s.decoder.Decode(payload)
	if err != nil {
		if _, ok := errors.AsAppError(err); !ok {
			err = errors.DecodeFailed(err.Error()).WithCause(err)
		}
		return nil, err
	}
	span.SetAttributes(
		attribute.Int(observability.AttrAudioBytes, len(clip.Data)),
		attribute.Int64(observability.AttrAudioDuration, clip.Duration.Milliseconds()),
	)
	return clip, nil
}

// classify calls the backend under the timeout and bulkhead and checks
// that the verdict can be returned as is.
func (s *Service) classify(ctx context.Context, in classifier.Input) (verdict *classifier.Result, err error) {
	backend := s.classifier.Name()
	ctx, span := observability.StartSpan(ctx, observability.SpanDetectionClassify)
	span.SetAttributes(attribute.String(observability.AttrBackend, backend))
	defer func() { observability.EndSpan(span, err) }()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	verdict, err = resilience.ExecuteWithResult(s.bulkhead, callCtx, func() (*classifier.Result, error) {
		return s.callBounded(callCtx, in)
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return nil, errors.ClassifierTimeout(backend).WithCause(err)
		}
		// The backend could not read the audio: the client's payload is at fault.
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeDecode {
			return nil, appErr
		}
		return nil, errors.ClassifierFailed(backend, err)
	}
	if err := verdict.Check(); err != nil {
		return nil, errors.ClassifierFailed(backend, err)
	}

	verdict.Score = roundScore(verdict.Score)
	span.SetAttributes(
		attribute.String(observability.AttrClassification, string(verdict.Label)),
		attribute.Float64(observability.AttrScore, verdict.Score),
	)
	if s.metrics != nil {
		s.metrics.RecordScore(ctx, backend, string(verdict.Label), verdict.Score)
	}
	return verdict, nil
}

// callBounded returns when the classifier does or when ctx ends, whichever
// comes first. A backend that ignores ctx keeps running in the background
// but its answer is dropped.
func (s *Service) callBounded(ctx context.Context, in classifier.Input) (*classifier.Result, error) {
	type answer struct {
		verdict *classifier.Result
		err     error
	}
	done := make(chan answer, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- answer{err: fmt.Errorf("classifier panic: %v", r)}
			}
		}()
		v, err := s.classifier.Classify(ctx, in)
		done <- answer{v, err}
	}()

	select {
	case a := <-done:
		return a.verdict, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) recordError(ctx context.Context, err error, stage string) {
	if s.metrics != nil {
		s.metrics.RecordError(ctx, string(codeOf(err)), stage)
	}
}

func codeOf(err error) errors.ErrorCode {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Code
	}
	return errors.ErrCodeInternal
}

// roundScore rounds to two decimals.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
