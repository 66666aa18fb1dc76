package common

const (
	ScreenWidth    = 800
	ScreenHeight   = 600
	TicksPerSecond = 60
)
