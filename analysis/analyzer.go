package analysis

import (
	"context"
	"fmt"

	"github.com/RyanBlaney/sonido-atlas/algorithms/rhythm"
	"github.com/RyanBlaney/sonido-atlas/logging"
)

// DefaultDegenerateRMSThreshold flags near-silent input in the logs.
const DefaultDegenerateRMSThreshold = 1e-6

// Options configures an Analyzer.
type Options struct {
	Logger logging.Logger

	// DegenerateRMSThreshold is the RMS level below which the input is
	// logged as effectively silent. Analysis still runs and yields the
	// documented defaults.
	DegenerateRMSThreshold float64
}

// Analyzer runs the full descriptor pipeline over a PCM buffer. The
// stage functions are fields so individual stages can be replaced in
// tests.
type Analyzer struct {
	logger        logging.Logger
	degenerateRMS float64

	featuresFn        func(pcm []float64, sampleRate int) *FeatureSet
	keyFn             func(chroma []float64) string
	loudnessFn        func(pcm []float64, sampleRate int) float64
	acousticnessFn    func(fs *FeatureSet) float64
	instrumentalFn    func(fs *FeatureSet) float64
	speechinessFn     func(fs *FeatureSet) float64
	livenessFn        func(fs *FeatureSet) float64
	energyFn          func(fs *FeatureSet) float64
	danceabilityFn    func(fs *FeatureSet) float64
	valenceFn         func(fs *FeatureSet) float64
	modeFn            func(chroma []float64) string
	timeSignatureFn   func(beats rhythm.Beats) int
	characteristicsFn func(fs *FeatureSet, liveness float64) []string
	subgenresFn       func(r *Result) []string
	eraFn             func(r *Result, fs *FeatureSet) string
	culturalFn        func(r *Result) string
	moodFn            func(energy, valence float64) string
	occasionsFn       func(bpm, energy float64) []string
	hammsFn           func(fs *FeatureSet) HAMMSVector
	confidenceFn      func(fs *FeatureSet, r *Result) float64
}

// NewAnalyzer builds an Analyzer with the standard stage pipeline.
func NewAnalyzer(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	threshold := opts.DegenerateRMSThreshold
	if threshold <= 0 {
		threshold = DefaultDegenerateRMSThreshold
	}

	return &Analyzer{
		logger:            logger,
		degenerateRMS:     threshold,
		featuresFn:        NewFeatureSet,
		keyFn:             detectKey,
		loudnessFn:        measureLoudness,
		acousticnessFn:    measureAcousticness,
		instrumentalFn:    measureInstrumentalness,
		speechinessFn:     measureSpeechiness,
		livenessFn:        measureLiveness,
		energyFn:          measureEnergy,
		danceabilityFn:    measureDanceability,
		valenceFn:         measureValence,
		modeFn:            detectMode,
		timeSignatureFn:   detectTimeSignature,
		characteristicsFn: extractCharacteristics,
		subgenresFn:       classifySubgenres,
		eraFn:             classifyEra,
		culturalFn:        analyzeCulturalContext,
		moodFn:            analyzeMood,
		occasionsFn:       analyzeOccasions,
		hammsFn:           computeHAMMS,
		confidenceFn:      calculateConfidence,
	}
}

// AnalyzeTrack runs every descriptor stage over the buffer. Invalid
// input is the only error condition; degenerate but valid signals
// produce the documented default values. A panicking stage keeps its
// default, the remaining stages still run, and the result is marked
// unanalyzed with zero confidence. A panic during feature extraction
// returns the all-default result, also marked unanalyzed.
func (a *Analyzer) AnalyzeTrack(ctx context.Context, pcm []float64, sampleRate int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateInput(pcm, sampleRate); err != nil {
		return nil, err
	}

	r := &Result{
		Analyzed:      true,
		Key:           "C major",
		BPM:           rhythm.DefaultBPM,
		Loudness:      silenceLUFS,
		TimeSignature: 4,
	}

	failed := false

	var fs *FeatureSet
	a.runStage("features", &failed, func() { fs = a.featuresFn(pcm, sampleRate) })
	if fs == nil {
		r.Analyzed = false
		r.Confidence = 0
		return r, nil
	}

	if fs.RMS < a.degenerateRMS {
		a.logger.Warn("input is effectively silent, descriptors fall back to defaults", logging.Fields{
			"rms":       fs.RMS,
			"threshold": a.degenerateRMS,
		})
	}

	r.BPM = fs.BPM

	a.runStage("key", &failed, func() { r.Key = a.keyFn(fs.Chroma) })
	a.runStage("loudness", &failed, func() { r.Loudness = a.loudnessFn(fs.PCM, fs.SampleRate) })
	a.runStage("acousticness", &failed, func() { r.Acousticness = a.acousticnessFn(fs) })
	a.runStage("instrumentalness", &failed, func() { r.Instrumentalness = a.instrumentalFn(fs) })
	a.runStage("speechiness", &failed, func() { r.Speechiness = a.speechinessFn(fs) })
	a.runStage("liveness", &failed, func() { r.Liveness = a.livenessFn(fs) })
	a.runStage("energy", &failed, func() { r.Energy = a.energyFn(fs) })
	a.runStage("danceability", &failed, func() { r.Danceability = a.danceabilityFn(fs) })
	a.runStage("valence", &failed, func() { r.Valence = a.valenceFn(fs) })
	a.runStage("mode", &failed, func() { r.Mode = a.modeFn(fs.Chroma) })
	a.runStage("time_signature", &failed, func() { r.TimeSignature = a.timeSignatureFn(fs.Beats) })
	a.runStage("characteristics", &failed, func() { r.Characteristics = a.characteristicsFn(fs, r.Liveness) })
	a.runStage("subgenres", &failed, func() { r.Subgenres = a.subgenresFn(r) })
	a.runStage("era", &failed, func() { r.Era = a.eraFn(r, fs) })
	a.runStage("cultural_context", &failed, func() { r.CulturalContext = a.culturalFn(r) })
	a.runStage("mood", &failed, func() { r.Mood = a.moodFn(r.Energy, r.Valence) })
	a.runStage("occasions", &failed, func() { r.Occasions = a.occasionsFn(r.BPM, r.Energy) })
	a.runStage("hamms", &failed, func() { r.HAMMS = a.hammsFn(fs) })
	a.runStage("confidence", &failed, func() { r.Confidence = a.confidenceFn(fs, r) })

	if failed {
		r.Analyzed = false
		r.Confidence = 0
	}

	a.logger.Debug("track analysis complete", logging.Fields{
		"bpm":        r.BPM,
		"key":        r.Key,
		"confidence": fmt.Sprintf("%.3f", r.Confidence),
		"analyzed":   r.Analyzed,
	})

	return r, nil
}

// runStage recovers a panicking stage so the pipeline always produces
// a complete Result.
func (a *Analyzer) runStage(name string, failed *bool, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Error(fmt.Errorf("stage panic: %v", rec), "analysis stage failed, keeping default value", logging.Fields{
				"stage": name,
			})
			*failed = true
		}
	}()
	fn()
}
