package rostergen

// HTTP status code constants.
const (
	StatusOK      = 200
	StatusCreated = 201
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
)
