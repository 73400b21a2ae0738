package runner

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// maxPhysicsStep bounds a single physics integration so long ticks cannot
// tunnel bodies through the ground.
const maxPhysicsStep = time.Second / 60

// Overlay is the game-over overlay.
type Overlay struct {
	Visible bool
	Retry   bool // the retry button is shown
}

// SessionOptions are the collaborators a session is built from.
type SessionOptions struct {
	Config     config.RunnerConfig
	Assets     *Assets
	Animations *AnimationSet // shared across restarts; created if nil
	Rand       *rand.Rand
	Logger     *log.Logger
}

// Session owns the state of one runner: its world, physics, timers and score.
// It is driven by Dispatch and is not safe for concurrent use.
type Session struct {
	cfg     config.RunnerConfig
	assets  *Assets
	anims   *AnimationSet
	rng     *rand.Rand
	logger  *log.Logger
	diff    *config.DifficultyManager
	ground  Image
	enemyAn *Animation

	world   donburi.World
	physics *Physics
	clock   *core.Scheduler
	player  donburi.Entity

	spawnTimer *core.Timer
	scoreTimer *core.Timer

	score      int
	finalScore int
	gameOver   bool
	overlay    Overlay
	jump       bool
	played     time.Duration
	runs       int
	sounds     []core.Sound
}

// NewSession runs setup and the first initialize.
func NewSession(opts SessionOptions) (*Session, error) {
	if opts.Assets == nil {
		return nil, fmt.Errorf("runner: session needs assets")
	}
	s := &Session{
		cfg:    opts.Config,
		assets: opts.Assets,
		anims:  opts.Animations,
		rng:    opts.Rand,
		logger: opts.Logger,
	}
	if s.anims == nil {
		s.anims = NewAnimationSet()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// initialize builds a fresh world and wires every callback.
func (s *Session) initialize() error {
	for _, def := range s.assets.Animations() {
		if _, err := s.anims.Ensure(def, s.assets); err != nil {
			return err
		}
	}
	playerWalk, err := s.anims.Get(AnimPlayer)
	if err != nil {
		return err
	}
	enemyWalk, err := s.anims.Get(AnimEnemy)
	if err != nil {
		return err
	}
	ground, err := s.assets.Image(ImageGround)
	if err != nil {
		return err
	}
	if _, err := s.assets.Image(ImageSky); err != nil {
		return err
	}

	s.ground = ground
	s.enemyAn = enemyWalk
	s.diff = config.NewDifficultyManager(s.cfg.Difficulty)
	s.world = donburi.NewWorld()
	s.physics = NewPhysics(s.cfg.World.Gravity, s.cfg.Player.RestSpeed)
	s.clock = core.NewScheduler()

	s.score = 0
	s.finalScore = 0
	s.gameOver = false
	s.overlay = Overlay{}
	s.jump = false
	s.played = 0
	s.runs++

	groundH := max(s.cfg.World.Height-s.cfg.Ground.Y, 1) + 32
	ge := s.world.Entry(s.world.Create(Body, Sprite, GroundTag))
	Body.SetValue(ge, BodyData{
		X:      s.cfg.World.Width / 2,
		Y:      s.cfg.Ground.Y + groundH/2,
		W:      s.cfg.World.Width,
		H:      groundH,
		Static: true,
	})
	Sprite.SetValue(ge, SpriteData{Image: ImageGround})

	p := s.cfg.Player
	s.player = s.world.Create(Body, Sprite, PlayerTag)
	pe := s.world.Entry(s.player)
	Body.SetValue(pe, BodyData{X: p.X, Y: p.Y, W: p.Width, H: p.Height, Bounce: p.Bounce})
	sprite := SpriteData{Sheet: playerWalk.Sheet, FlipX: true}
	sprite.Anim.Play(playerWalk)
	Sprite.SetValue(pe, sprite)

	s.physics.Collide(playerQuery, groundQuery)
	s.physics.Collide(enemyQuery, groundQuery)
	s.physics.Overlap(playerQuery, enemyQuery, func(_ donburi.World, _, enemy *donburi.Entry) {
		s.Dispatch(EnemyOverlap{Enemy: enemy.Entity()})
	})

	s.spawnTimer = s.clock.Every(s.cfg.Spawn.InitialDelay(), s.spawn)
	s.scoreTimer = s.clock.Every(s.cfg.Score.Interval(), s.addScore)

	s.logger.Debug("session initialized", "run", s.runs)
	return nil
}

// Dispatch applies an event to the session. Only a restart can fail.
func (s *Session) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case JumpRequested:
		if !s.gameOver {
			s.jump = true
		}
	case RestartRequested:
		return s.restart()
	case Tick:
		s.tick(ev.Dt)
	case EnemyOverlap:
		s.hit(ev.Enemy)
	}
	return nil
}

func (s *Session) tick(dt time.Duration) {
	if dt <= 0 {
		return
	}

	for left := dt; left > 0 && !s.physics.Paused(); left -= maxPhysicsStep {
		s.physics.Step(s.world, min(left, maxPhysicsStep).Seconds())
	}

	s.clock.Advance(dt)

	if !s.gameOver {
		s.played += dt
		if s.jump {
			s.tryJump()
		}
		s.pruneEnemies()
	}
	s.jump = false

	spriteQuery.Each(s.world, func(e *donburi.Entry) {
		Sprite.Get(e).Anim.Advance(dt)
	})
}

func (s *Session) tryJump() {
	b := Body.Get(s.world.Entry(s.player))
	if !b.Grounded {
		return
	}
	b.VY = s.cfg.Player.JumpVelocity
	b.Grounded = false
	s.play(SoundJump)
}

func (s *Session) pruneEnemies() {
	var gone []donburi.Entity
	enemyQuery.Each(s.world, func(e *donburi.Entry) {
		if Body.Get(e).X <= s.cfg.Enemy.DespawnX {
			gone = append(gone, e.Entity())
		}
	})
	for _, e := range gone {
		s.world.Remove(e)
	}
}

// spawn creates an enemy and draws the delay until the next one.
func (s *Session) spawn() {
	en := s.cfg.Enemy
	e := s.world.Entry(s.world.Create(Body, Sprite, EnemyTag))
	Body.SetValue(e, BodyData{
		X:  en.SpawnX,
		Y:  en.SpawnY,
		W:  en.Width,
		H:  en.Height,
		VX: s.diff.Speed(en.VelocityX, s.score, s.played),
	})
	sprite := SpriteData{Sheet: s.enemyAn.Sheet}
	sprite.Anim.Play(s.enemyAn)
	Sprite.SetValue(e, sprite)

	next := s.nextSpawnDelay()
	s.spawnTimer.SetDelay(next)
	s.logger.Debug("enemy spawned", "entity", e.Entity(), "next", next)
}

// nextSpawnDelay draws a whole number of milliseconds in [min, max].
func (s *Session) nextSpawnDelay() time.Duration {
	lo := time.Duration(s.cfg.Spawn.MinDelayMS) * time.Millisecond
	hi := s.diff.MaxDelay(time.Duration(s.cfg.Spawn.MaxDelayMS)*time.Millisecond, lo, s.score, s.played)
	span := int64((hi - lo) / time.Millisecond)
	if span <= 0 {
		return lo
	}
	return lo + time.Duration(s.rng.Int63n(span+1))*time.Millisecond
}

func (s *Session) addScore() {
	s.score++
}

// hit ends the run. Further overlaps before a restart are ignored.
func (s *Session) hit(enemy donburi.Entity) {
	if s.gameOver {
		return
	}
	s.physics.Pause()
	s.gameOver = true
	s.finalScore = s.score
	s.score = 0

	sprite := Sprite.Get(s.world.Entry(s.player))
	sprite.Tint = core.ColorBrightRed
	sprite.Anim.Stop()

	s.spawnTimer.Remove()
	s.scoreTimer.Remove()

	s.overlay = Overlay{Visible: true, Retry: s.cfg.Restart.Trigger == config.RestartButton}
	s.play(SoundGameOver)
	s.logger.Debug("game over", "score", s.finalScore, "enemy", enemy)
}

func (s *Session) restart() error {
	if !s.gameOver {
		return nil
	}
	s.logger.Debug("restart", "previous", s.finalScore)
	return s.initialize()
}

// Retune applies a new configuration to the running session. Bodies that
// already exist keep their velocity; new enemies use the new one. World,
// ground, player and enemy geometry stay as built until the next Reset.
func (s *Session) Retune(cfg config.RunnerConfig) {
	cfg.World.Width, cfg.World.Height = s.cfg.World.Width, s.cfg.World.Height
	cfg.Ground = s.cfg.Ground
	p := &cfg.Player
	p.X, p.Y, p.Width, p.Height = s.cfg.Player.X, s.cfg.Player.Y, s.cfg.Player.Width, s.cfg.Player.Height
	e := &cfg.Enemy
	e.SpawnX, e.SpawnY, e.Width, e.Height, e.DespawnX = s.cfg.Enemy.SpawnX, s.cfg.Enemy.SpawnY, s.cfg.Enemy.Width, s.cfg.Enemy.Height, s.cfg.Enemy.DespawnX

	s.cfg = cfg
	s.physics.Gravity = cfg.World.Gravity
	s.physics.RestSpeed = cfg.Player.RestSpeed
	s.diff = config.NewDifficultyManager(cfg.Difficulty)
	if s.scoreTimer.Active() {
		s.scoreTimer.SetDelay(cfg.Score.Interval())
	}
	s.logger.Debug("retuned", "gravity", cfg.World.Gravity, "jump", cfg.Player.JumpVelocity)
}

func (s *Session) play(key core.Sound) {
	if !s.assets.HasAudio(key) {
		s.logger.Warn("sound not loaded", "key", key)
		return
	}
	s.sounds = append(s.sounds, key)
}

// DrainSounds returns the sounds raised since the last call.
func (s *Session) DrainSounds() []core.Sound {
	out := s.sounds
	s.sounds = nil
	return out
}

// Score returns the running score.
func (s *Session) Score() int { return s.score }

// FinalScore returns the score of the last finished run.
func (s *Session) FinalScore() int { return s.finalScore }

// GameOver reports whether the run has ended.
func (s *Session) GameOver() bool { return s.gameOver }

// Overlay returns the game-over overlay state.
func (s *Session) Overlay() Overlay { return s.overlay }

// Config returns the configuration in use.
func (s *Session) Config() config.RunnerConfig { return s.cfg }

// SpawnTimer returns the enemy spawn timer.
func (s *Session) SpawnTimer() *core.Timer { return s.spawnTimer }

// ScoreTimer returns the score timer.
func (s *Session) ScoreTimer() *core.Timer { return s.scoreTimer }

// Physics returns the physics system.
func (s *Session) Physics() *Physics { return s.physics }

// World returns the entity world.
func (s *Session) World() donburi.World { return s.world }

// Player returns the player entity.
func (s *Session) Player() donburi.Entity { return s.player }

// PlayerBody returns a copy of the player's body.
func (s *Session) PlayerBody() BodyData {
	return *Body.Get(s.world.Entry(s.player))
}

// PlayerSprite returns a copy of the player's sprite.
func (s *Session) PlayerSprite() SpriteData {
	return *Sprite.Get(s.world.Entry(s.player))
}

// EnemyCount returns the number of live enemies.
func (s *Session) EnemyCount() int {
	return enemyQuery.Count(s.world)
}

// Enemies returns the live enemy entities.
func (s *Session) Enemies() []donburi.Entity {
	var out []donburi.Entity
	enemyQuery.Each(s.world, func(e *donburi.Entry) {
		out = append(out, e.Entity())
	})
	return out
}

// RetryButton returns the bounds of the retry button in world pixels. It is
// centered on the world.
func (s *Session) RetryButton() core.RectF {
	w, h := s.cfg.World.Width, s.cfg.World.Height
	return core.RectFromCenter(w/2, h/2, w*0.15, h*0.14)
}

// RetryHit reports whether a normalized pointer position lands on the
// visible retry button.
func (s *Session) RetryHit(p core.PointerPos) bool {
	if !s.overlay.Visible || !s.overlay.Retry {
		return false
	}
	return s.RetryButton().Contains(p.X*s.cfg.World.Width, p.Y*s.cfg.World.Height)
}
