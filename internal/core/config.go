package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // screen width in characters
	ScreenH  int   // screen height in characters
	TickRate int   // ticks per second
	Seed     int64 // 0 means the platform picks one from the clock
}

// DefaultConfig returns the default runtime config.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int
	Level    int
	GameOver bool
	Won      bool
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	// Busy is true while the game is playing back an animation.
	Busy bool
}

// Game is implemented by anything the platform can run.
// Games hold pure logic; the platform owns input mapping, timing and output.
type Game interface {
	// ID is used for score storage and CLI arguments.
	ID() string
	Title() string

	// Reset starts or restarts the game.
	Reset(cfg RuntimeConfig)

	// Step advances one tick with the input collected since the last one.
	Step(in InputFrame) StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *Screen)

	State() GameState
}
