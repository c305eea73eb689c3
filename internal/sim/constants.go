package sim

import "time"

// World geometry
const (
	TileSize         = 64.0
	MachineSize      = TileSize * 2
	PlayerSize       = TileSize * 2
	InteractionRange = TileSize * 1.5
	WorldWidth       = 800.0
	WorldHeight      = 600.0
)

// Player motion
const (
	PlayerMaxSpeed     = 4.0
	PlayerAcceleration = 0.5
	PlayerFriction     = 0.85

	// ArrivalEpsilon is how close auto-walk must get to its target to stop.
	ArrivalEpsilon = 1.0
	// RestEpsilon is the speed below which friction decay snaps an axis to zero.
	RestEpsilon = 0.01
)

// Effects
const (
	DefaultParticleCount = 20
	UpgradeParticleCount = 30

	// ParticleSpeedSpread is the width of the symmetric velocity range per axis.
	ParticleSpeedSpread  = 3.0
	ParticleMinRadius    = 2.0
	ParticleRadiusSpread = 3.0
	ParticleLifeDecay    = 0.01
	ParticleShrink       = 0.99

	NotificationLife      = 1.0
	NotificationLifeDecay = 0.01
	NotificationDrift     = 0.3

	// NotificationLift is how far above a machine feedback text appears.
	NotificationLift = 20.0
)

// Economy
const (
	DefaultCooldown          = 10 * time.Second
	SecondUnitCostMultiplier = 4
	LowResourcesThreshold    = 20.0
	IncubatorRewardStep      = 100.0
	IncubatorRewardCap       = 10
)

// Feedback colors
const (
	ColorSuccess = "#4CAF50"
	ColorError   = "#ff4444"
	ColorGold    = "#FFD700"
	ColorCatNips = "#ffa500"
	ColorWallet  = "#FF5722"
	ColorNeutral = "#ffffff"
)
