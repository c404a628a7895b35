// Package session runs one round at a time: it owns the entity world and
// drives the tornado, spawner, resolver and elf once per Advance.
package session

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"gift-tornado/internal/component"
	"gift-tornado/internal/config"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/factory"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
	"gift-tornado/internal/system"
)

// State is the lifecycle state. There is no pause.
type State uint8

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Reason says why a round ended.
type Reason uint8

const (
	ReasonTimeout Reason = iota
	ReasonPlayerDefeated
	ReasonAborted // the player quit or disconnected
)

func (r Reason) String() string {
	switch r {
	case ReasonTimeout:
		return "timeout"
	case ReasonPlayerDefeated:
		return "defeated"
	case ReasonAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Decide maps a stop reason and the final scores to the outcome shown.
// A defeat is always "eaten"; otherwise ties go to the player.
func Decide(r Reason, playerScore, elfScore int) present.Outcome {
	switch {
	case r == ReasonPlayerDefeated:
		return present.OutcomeEaten
	case playerScore >= elfScore:
		return present.OutcomeWin
	default:
		return present.OutcomeLose
	}
}

// Result is the record of a finished round.
type Result struct {
	Seed        int64           `msgpack:"seed"`
	Difficulty  string          `msgpack:"difficulty"`
	Reason      Reason          `msgpack:"reason"`
	Outcome     present.Outcome `msgpack:"outcome"`
	PlayerScore int             `msgpack:"player_score"`
	ElfScore    int             `msgpack:"elf_score"`
	Health      int             `msgpack:"health"`
	Elapsed     time.Duration   `msgpack:"elapsed"`
	Ticks       int             `msgpack:"ticks"`
	Spawned     int             `msgpack:"spawned"`
	RNGCalls    uint64          `msgpack:"rng_calls"`
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	State       State
	Difficulty  string
	Settings    config.Difficulty
	Seed        int64
	Elapsed     time.Duration
	Progress    float64
	Scale       float64
	PlayerY     float64
	ElfY        float64
	Health      int
	PlayerScore int
	ElfScore    int
	Gifts       int
	Enemies     int
	NextGift    int
	NextEnemy   int
	Outcome     present.Outcome
}

// Session is one game instance. It is not safe for concurrent use; a
// single goroutine calls Start, Advance, SetPointer and Stop.
type Session struct {
	// Seed fixes the random stream of every round. Zero picks a fresh seed
	// per round.
	Seed int64
	// OnFinish is called at the end of every round, after the outcome is
	// shown. It may call Start, except while Start is ending the previous
	// round; that nested call is ignored.
	OnFinish func(Result)

	cfg  config.Config
	view present.Gateway
	log  *slog.Logger

	world   *ecs.World
	env     system.Env
	spawner *system.Spawner
	tornado *system.Tornado

	state    State
	busy     bool
	starting bool
	round    int
	name     string
	seed     int64
	elapsed  time.Duration
	ticks    int
	spawned  int
	player   ecs.EntityID
	elf      ecs.EntityID
	outcome  present.Outcome
	last     Result
}

// New creates an idle session drawing through view. A nil logger discards.
func New(view present.Gateway, cfg config.Config, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{
		cfg:     cfg,
		view:    view,
		log:     log,
		world:   ecs.NewWorld(),
		spawner: system.NewSpawner(),
		tornado: system.NewTornado(cfg.Tuning),
	}
}

// Start begins a round with the named preset, stopping any round in
// progress first. Unknown names play with the default difficulty.
func (s *Session) Start(name string) {
	if s.starting {
		return
	}
	s.starting = true
	defer func() { s.starting = false }()
	s.Stop(ReasonTimeout)

	diff, ok := s.cfg.Lookup(name)
	if !ok {
		s.log.Warn("unknown difficulty, using defaults", "difficulty", name)
	}
	tune := s.cfg.Tuning

	s.round++
	s.seed = s.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.world.Reset()
	s.spawner.Reset()
	s.name = name
	s.elapsed, s.ticks, s.spawned = 0, 0, 0
	s.outcome = present.OutcomeNone
	s.env = system.Env{
		World: s.world,
		View:  s.view,
		RNG:   system.NewRNG(s.seed),
		Diff:  diff,
		Tune:  tune,
		Scale: 1,
	}

	pY := s.centred(present.ActorPlayer)
	eY := s.centred(present.ActorElf)
	s.player = factory.NewPlayer(s.world, pY, tune.InitialHealth)
	s.elf = factory.NewElf(s.world, eY)

	s.view.ShowOutcome(present.OutcomeNone)
	s.view.SetActorPosition(present.ActorPlayer, pY)
	s.view.SetActorPosition(present.ActorElf, eY)
	s.view.SetHealthDisplay(tune.InitialHealth)
	s.view.SetScoreDisplay(present.SidePlayer, 0, false)
	s.view.SetScoreDisplay(present.SideElf, 0, false)
	s.view.SetClockDisplay(FormatClock(tune.MaxDuration))

	s.state = StateRunning
	s.tornado = system.NewTornado(tune)
	s.tornado.Start(s.env.RNG, s.env.Scale)
	s.view.SetSourceRotation(s.tornado.Rotation())
	s.view.SetSourceScale(s.tornado.Scale())
	s.view.PlayCue(present.CueMusic)
	s.view.SetMusicTempo(musicTempo(diff, 0))

	s.log.Info("round started", "difficulty", name, "seed", s.seed)
}

// Stop ends the running round. It is a no-op when idle.
func (s *Session) Stop(reason Reason) {
	if s.state != StateRunning {
		return
	}
	s.state = StateIdle
	s.tornado.Stop()
	s.view.PlayCue(present.CueMusicStop)
	cleared := system.ClearObjects(s.world, s.view)

	ps, es := s.score(s.player), s.score(s.elf)
	s.outcome = Decide(reason, ps, es)
	s.view.ShowOutcome(s.outcome)

	s.last = Result{
		Seed:        s.seed,
		Difficulty:  s.name,
		Reason:      reason,
		Outcome:     s.outcome,
		PlayerScore: ps,
		ElfScore:    es,
		Health:      s.health(),
		Elapsed:     s.elapsed,
		Ticks:       s.ticks,
		Spawned:     s.spawned,
		RNGCalls:    s.env.RNG.Calls(),
	}
	s.log.Info("round finished",
		"difficulty", s.name,
		"reason", reason.String(),
		"outcome", string(s.outcome),
		"player_score", ps,
		"elf_score", es,
		"cleared", cleared,
	)
	if s.OnFinish != nil {
		s.OnFinish(s.last)
	}
}

// Advance runs one simulation step covering dt of round time. Calls made
// while idle or from inside another Advance are ignored.
func (s *Session) Advance(dt time.Duration) {
	if s.state != StateRunning || s.busy {
		return
	}
	s.busy = true
	defer func() { s.busy = false }()
	round := s.round

	s.elapsed += dt
	s.ticks++
	p := s.Progress()
	s.env.Scale = 1 + s.env.Diff.VelocityGrowth*p

	q := s.tornado.Advance(dt, s.env.RNG, s.env.Scale)
	s.view.SetSourceRotation(s.tornado.Rotation())
	s.view.SetSourceScale(s.tornado.Scale())

	id, err := s.spawner.Spawn(&s.env, q)
	if err != nil {
		s.log.Warn("spawn skipped", "err", err)
	} else if id != ecs.NilEntity {
		s.spawned++
	}

	ev := system.Resolve(&s.env, s.player, s.elf)
	if !s.current(round) {
		return
	}
	if ev.Defeated {
		s.Stop(ReasonPlayerDefeated)
		return
	}

	system.PursueNearestGift(&s.env, s.elf)
	s.view.SetMusicTempo(musicTempo(s.env.Diff, p))
	s.view.SetClockDisplay(FormatClock(s.Remaining()))
	if !s.current(round) {
		return
	}
	if p >= 1 {
		s.Stop(ReasonTimeout)
	}
}

// current reports whether the round that began as round is still running.
// Presentation callbacks may have stopped or restarted it.
func (s *Session) current(round int) bool {
	return s.state == StateRunning && s.round == round
}

// SetPointer moves the player so its centre follows pointer height y.
// Ignored while idle.
func (s *Session) SetPointer(y float64) {
	if s.state != StateRunning {
		return
	}
	field := s.view.FieldBox()
	h := s.actorHeight(present.ActorPlayer)
	top := geom.Clamp(y-h/2, field.Top(), field.Bottom()-h)

	act, _ := s.world.Get(s.player, component.CActor).(component.Actor)
	act.Y = top
	s.world.Add(s.player, act)
	s.view.SetActorPosition(present.ActorPlayer, top)
}

// Nudge moves the player's pointer by dy from where it is now.
func (s *Session) Nudge(dy float64) {
	if s.state != StateRunning {
		return
	}
	s.SetPointer(s.Pointer() + dy)
}

// Pointer is the pointer height that places the player where it is now.
func (s *Session) Pointer() float64 {
	return s.actorY(s.player) + s.actorHeight(present.ActorPlayer)/2
}

func (s *Session) State() State               { return s.state }
func (s *Session) Running() bool              { return s.state == StateRunning }
func (s *Session) Outcome() present.Outcome   { return s.outcome }
func (s *Session) Config() config.Config      { return s.cfg }
func (s *Session) Difficulty() string         { return s.name }
func (s *Session) LastResult() (Result, bool) { return s.last, s.round > 0 && s.state == StateIdle }

// Progress is elapsed over maximum round time, clamped to 1.
func (s *Session) Progress() float64 {
	limit := s.cfg.Tuning.MaxDuration
	if limit <= 0 {
		return 1
	}
	return math.Min(float64(s.elapsed)/float64(limit), 1)
}

// Remaining is the countdown shown on the clock.
func (s *Session) Remaining() time.Duration {
	return time.Duration(float64(s.cfg.Tuning.MaxDuration) * (1 - s.Progress()))
}

// Snapshot returns the current state for display and tests.
func (s *Session) Snapshot() Snapshot {
	gifts, enemies := system.CountObjects(s.world)
	nextGift, nextEnemy := s.spawner.Cursors()
	return Snapshot{
		State:       s.state,
		Difficulty:  s.name,
		Settings:    s.env.Diff,
		Seed:        s.seed,
		Elapsed:     s.elapsed,
		Progress:    s.Progress(),
		Scale:       s.env.Scale,
		PlayerY:     s.actorY(s.player),
		ElfY:        s.actorY(s.elf),
		Health:      s.health(),
		PlayerScore: s.score(s.player),
		ElfScore:    s.score(s.elf),
		Gifts:       gifts,
		Enemies:     enemies,
		NextGift:    nextGift,
		NextEnemy:   nextEnemy,
		Outcome:     s.outcome,
	}
}

func (s *Session) score(id ecs.EntityID) int {
	sc, _ := s.world.Get(id, component.CScore).(component.Score)
	return sc.Points
}

func (s *Session) health() int {
	hp, _ := s.world.Get(s.player, component.CHealth).(component.Health)
	return hp.Current
}

func (s *Session) actorY(id ecs.EntityID) float64 {
	act, _ := s.world.Get(id, component.CActor).(component.Actor)
	return act.Y
}

func (s *Session) actorHeight(a present.Actor) float64 {
	if box, ok := s.view.ActorBox(a); ok {
		return box.Height()
	}
	return 0
}

// centred is the sprite top that puts actor a at mid field.
func (s *Session) centred(a present.Actor) float64 {
	field := s.view.FieldBox()
	return field.Top() + (field.Height()-s.actorHeight(a))/2
}

func musicTempo(d config.Difficulty, p float64) float64 {
	return 0.8 + 0.2*d.VelocityGrowth*p
}

// FormatClock renders d as m:ss, rounding down.
func FormatClock(d time.Duration) string {
	secs := int(math.Floor(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
