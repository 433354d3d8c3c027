package parameter

import "time"

// Genetic Algorithm - Population Configuration
const (
	// GAPoolSize is the number of candidates in each population
	GAPoolSize = 100

	// GAElitePercentage is the fraction of best performers cloned into the next generation
	GAElitePercentage = 0.12

	// GAMutationRate is the per-gene probability of resampling (0.0-1.0)
	GAMutationRate = 0.01

	// GAMaxTurns is the genome length, one gene per simulated turn
	GAMaxTurns = 180

	// GAParallelism for fan-out evaluation of a generation
	GAParallelism = 4
)

// Genome sampling strategies
const (
	// GASamplingIndependent draws every gene independently
	GASamplingIndependent = "independent"

	// GASamplingWalk draws each gene relative to the previous turn's gene
	GASamplingWalk = "walk"
)

// Search Budget
const (
	// SearchBudget is the default wall-clock budget when none is given
	SearchBudget = 1000 * time.Millisecond
)

// Genetic Algorithm - Fitness Tiers
const (
	// FitnessEscape is the floor score for candidates leaving the map
	FitnessEscape = 1.0

	// FitnessCrashFloor/Ceil bound crashes outside the landing zone
	FitnessCrashFloor = 0.0
	FitnessCrashCeil  = 100.0

	// FitnessZoneFloor/Ceil bound landings inside the zone that break a limit
	FitnessZoneFloor = 100.0
	FitnessZoneCeil  = 200.0

	// FitnessSolutionFloor/Ceil bound valid landings, ranked by fuel left
	FitnessSolutionFloor = 200.0
	FitnessSolutionCeil  = 300.0

	// FitnessCrashSpeedLimit is the combined speed above which crashes are penalised
	FitnessCrashSpeedLimit = 100.0

	// FitnessCrashSpeedPenalty is the penalty per unit of combined speed
	FitnessCrashSpeedPenalty = 0.1

	// FitnessSpeedWorst is the speed magnitude scoring zero in the zone tier
	FitnessSpeedWorst = 500.0
)
