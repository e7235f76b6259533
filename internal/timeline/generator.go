// Package timeline synthesizes a session's interaction events. At each
// activity peak of the session every unordered participant pair is
// evaluated against the probability model; firing pairs materialize one
// interaction event each. All randomness flows from an injected RNG so a
// fixed seed reproduces a fixed session.
package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/kwatanabe/classnet/internal/config"
	"github.com/kwatanabe/classnet/internal/graph"
	"github.com/kwatanabe/classnet/internal/logging"
	"github.com/kwatanabe/classnet/internal/models"
	"github.com/kwatanabe/classnet/internal/probability"
	"github.com/kwatanabe/classnet/internal/roster"
)

// Session duration and roster bounds accepted by Generate.
const (
	MinDurationMinutes = 10
	MaxDurationMinutes = 300
	MinParticipants    = 2
	MaxParticipants    = 100
)

// startOffsetMinutes is the half-width of the uniform jitter applied to
// event start times around their activity peak.
const startOffsetMinutes = 10

// Params describes one session to generate.
type Params struct {
	CourseID        string             `json:"course_id" yaml:"course_id"`
	SessionType     models.SessionType `json:"session_type" yaml:"session_type"`
	DurationMinutes int                `json:"duration_minutes" yaml:"duration_minutes"`
	ParticipantIDs  []string           `json:"participant_ids" yaml:"participant_ids"`

	// Overrides optionally replaces probability-model defaults per call.
	Overrides *Overrides `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Overrides adjusts probability-model constants for a single session.
// Nil fields keep the configured defaults.
type Overrides struct {
	// InteractionProbability replaces the base probability; range [0, 1].
	InteractionProbability *float64 `json:"interaction_probability,omitempty" yaml:"interaction_probability,omitempty"`

	// ExtrovertBonus replaces the extrovert personality factor; range [0.5, 3].
	ExtrovertBonus *float64 `json:"extrovert_bonus,omitempty" yaml:"extrovert_bonus,omitempty"`

	// AcademicCorrelation sets the GPA-similarity bonus to 1+value; range [0, 1].
	AcademicCorrelation *float64 `json:"academic_correlation,omitempty" yaml:"academic_correlation,omitempty"`
}

// Generator orchestrates session synthesis.
type Generator struct {
	cfg         *config.SimConfig
	provisioner *roster.Provisioner
	rng         *rand.Rand
	now         func() time.Time
	log         *slog.Logger
}

// rngReader adapts the injected RNG to io.Reader so identifiers are
// reproducible under a fixed seed.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint64())
	}
	return len(p), nil
}

// newID mints a UUID from the generator's RNG.
func (g *Generator) newID() string {
	id, err := uuid.NewRandomFromReader(rngReader{rng: g.rng})
	if err != nil {
		// The reader never fails; keep the zero UUID unreachable.
		panic(err)
	}
	return id.String()
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock injects the time source used for session and metric
// timestamps. The default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger attaches an operational logger. Pair-evaluation decisions
// are logged at trace level.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// New creates a Generator. A nil cfg uses config.Default(); rng is the
// sole randomness source and must not be shared with concurrent callers.
func New(cfg *config.SimConfig, source roster.ProfileSource, rng *rand.Rand, opts ...Option) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Generator{
		cfg:         cfg,
		provisioner: roster.NewProvisioner(source),
		rng:         rng,
		now:         time.Now,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate synthesizes one complete session: resolved roster, interaction
// events for every activity peak, and the graph-metrics snapshot. The
// returned record is a value; nothing mutates it afterwards.
func (g *Generator) Generate(p Params) (*models.SessionRecord, error) {
	if p.DurationMinutes < MinDurationMinutes || p.DurationMinutes > MaxDurationMinutes {
		return nil, fmt.Errorf("%w: %d minutes outside [%d, %d]",
			models.ErrInvalidDuration, p.DurationMinutes, MinDurationMinutes, MaxDurationMinutes)
	}
	if len(p.ParticipantIDs) < MinParticipants {
		return nil, fmt.Errorf("%w: got %d, need at least %d",
			models.ErrInsufficientParticipants, len(p.ParticipantIDs), MinParticipants)
	}
	if len(p.ParticipantIDs) > MaxParticipants {
		return nil, fmt.Errorf("%w: roster size %d exceeds %d",
			models.ErrInvalidParameter, len(p.ParticipantIDs), MaxParticipants)
	}

	cfg, err := applyOverrides(g.cfg, p.Overrides)
	if err != nil {
		return nil, err
	}

	participants, err := g.provisioner.Provision(p.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	sessionID := g.newID()
	start := g.now()
	model := probability.New(cfg)

	peaks, known := cfg.PeaksFor(p.SessionType)
	if !known {
		g.log.Debug("unknown session type, using fallback schedule",
			"session_type", string(p.SessionType), "peaks", peaks)
	}

	// Peaks in schedule order, pairs in roster order: event output is
	// stable for a fixed seed.
	var events []models.InteractionEvent
	for _, peak := range peaks {
		peakMinute := int(float64(p.DurationMinutes) * peak)
		for i := 0; i < len(participants); i++ {
			for j := i + 1; j < len(participants); j++ {
				a, b := participants[i], participants[j]
				prob := model.Probability(a, b, p.SessionType)
				fired := g.rng.Float64() < prob
				g.log.Log(context.Background(), logging.LevelTrace, "pair evaluated",
					"peak", peak, "p1", a.ID, "p2", b.ID,
					"probability", prob, "fired", fired)
				if fired {
					events = append(events, g.synthesizeEvent(cfg, sessionID, a, b, peakMinute, start, p.SessionType))
				}
			}
		}
	}

	metrics := graph.Compute(events, p.ParticipantIDs, start)

	return &models.SessionRecord{
		ID:              sessionID,
		CourseID:        p.CourseID,
		Date:            start,
		DurationMinutes: p.DurationMinutes,
		SessionType:     p.SessionType,
		Participants:    participants,
		Interactions:    events,
		Metrics:         metrics,
	}, nil
}

// synthesizeEvent materializes one firing pair as an interaction event
// near the given peak minute.
func (g *Generator) synthesizeEvent(cfg *config.SimConfig, sessionID string, a, b models.Participant, peakMinute int, sessionStart time.Time, st models.SessionType) models.InteractionEvent {
	offset := g.rng.IntN(2*startOffsetMinutes+1) - startOffsetMinutes
	startMinute := peakMinute + offset
	if startMinute < 0 {
		startMinute = 0
	}

	base := cfg.DurationBaseFor(st)
	duration := base + (g.rng.Float64()-0.5)*base // +/-50%
	if duration < cfg.MinEventDuration {
		duration = cfg.MinEventDuration
	}

	startTime := sessionStart.Add(time.Duration(startMinute) * time.Minute)
	endTime := startTime.Add(time.Duration(duration * float64(time.Second)))

	types := cfg.TypesFor(st)

	return models.InteractionEvent{
		ID:                 g.newID(),
		SessionID:          sessionID,
		Participant1:       a.ID,
		Participant2:       b.ID,
		StartTime:          startTime,
		EndTime:            endTime,
		Duration:           endTime.Sub(startTime).Seconds(),
		AvgDistance:        0.8 + g.rng.Float64()*0.7,
		AvgOrientationDiff: g.rng.Float64() * 45,
		Confidence:         0.7 + g.rng.Float64()*0.3,
		Type:               types[g.rng.IntN(len(types))],
		Context:            st,
	}
}

// applyOverrides clones cfg with per-call parameter overrides applied,
// rejecting out-of-range values.
func applyOverrides(cfg *config.SimConfig, o *Overrides) (*config.SimConfig, error) {
	if o == nil {
		return cfg, nil
	}
	clone := *cfg
	clone.PersonalityFactors = make(map[models.PersonalityType]float64, len(cfg.PersonalityFactors))
	for k, v := range cfg.PersonalityFactors {
		clone.PersonalityFactors[k] = v
	}

	if o.InteractionProbability != nil {
		v := *o.InteractionProbability
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: interaction probability %.3f outside [0, 1]", models.ErrInvalidParameter, v)
		}
		clone.BaseProbability = v
	}
	if o.ExtrovertBonus != nil {
		v := *o.ExtrovertBonus
		if v < 0.5 || v > 3.0 {
			return nil, fmt.Errorf("%w: extrovert bonus %.3f outside [0.5, 3.0]", models.ErrInvalidParameter, v)
		}
		clone.PersonalityFactors[models.PersonalityExtrovert] = v
	}
	if o.AcademicCorrelation != nil {
		v := *o.AcademicCorrelation
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: academic correlation %.3f outside [0, 1]", models.ErrInvalidParameter, v)
		}
		clone.GPASimilarityBonus = 1 + v
	}
	return &clone, nil
}
